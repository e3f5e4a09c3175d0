package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"ugc-studio/internal/config"
	"ugc-studio/internal/model"
	"ugc-studio/internal/prompts"
	"ugc-studio/internal/repository"
	"ugc-studio/internal/service"
	"ugc-studio/pkg/ai"
)

func newIdeasCmd() *cobra.Command {
	var (
		brandFile string
		count     int
		viral     bool
		ideaType  string
	)
	cmd := &cobra.Command{
		Use:   "ideas",
		Short: "Generate video ideas with the configured AI provider",
		Long: `Generate video ideas with the configured AI provider (AI_PROVIDER, AI_API_KEY, AI_MODEL).
The brand profile is read from a YAML file with the same keys as the brand API, e.g.:

  brand_name: Glowly
  uvp: Vitamin C serum that fades dark spots in 4 weeks
  audience: Women 25-35`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var brand *model.Brand
			if brandFile != "" {
				b, err := loadBrandFile(brandFile)
				if err != nil {
					return err
				}
				brand = b
			}

			cfg, err := config.LoadAI()
			if err != nil {
				return err
			}
			log := cliLogger()
			defer func() { _ = log.Sync() }()

			client, err := ai.NewClient(cmd.Context(), cfg.ClientConfig(), log)
			if err != nil {
				return err
			}
			generator := service.NewGenerator(client, cfg.RetryPolicy(), cfg.GenerationParams(), log)
			ideas := service.NewIdeaService(repository.NewMemoryStore(), generator, log)

			result, err := ideas.GenerateForBrand(cmd.Context(), brand, prompts.IdeaOptions{
				Count:         count,
				ViralResearch: viral,
				Type:          model.IdeaType(strings.ToUpper(ideaType)),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVarP(&brandFile, "brand-file", "b", "", "YAML brand profile")
	cmd.Flags().IntVarP(&count, "count", "n", prompts.DefaultIdeaCount, "number of ideas")
	cmd.Flags().BoolVar(&viral, "viral", false, "base the ideas on recent viral trends")
	cmd.Flags().StringVar(&ideaType, "type", "", "idea type: GENERAL or UGC")
	return cmd
}

func loadBrandFile(path string) (*model.Brand, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read brand file: %w", err)
	}
	var brand model.Brand
	if err := yaml.Unmarshal(data, &brand); err != nil {
		return nil, fmt.Errorf("failed to parse brand file %s: %w", path, err)
	}
	if strings.TrimSpace(brand.Name) == "" {
		return nil, fmt.Errorf("%w: brand_name is required in %s", model.ErrInvalidInput, path)
	}
	return &brand, nil
}

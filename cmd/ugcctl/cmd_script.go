package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ugc-studio/internal/prompts"
	"ugc-studio/internal/repository"
	"ugc-studio/internal/service"
)

func newScriptCmd() *cobra.Command {
	var (
		template string
		seed     int64
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "script [concept]",
		Short: "Draft a video script offline, from a concept or a template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := service.DraftScriptRequest{Template: template}
			if len(args) == 1 {
				req.Concept = args[0]
			}
			if cmd.Flags().Changed("seed") {
				req.Seed = &seed
			}

			scripts := service.NewScriptService(repository.NewMemoryStore(), nil, nil, cliLogger())
			script, err := scripts.Draft(cmd.Context(), req)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), script)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), script.Content)
			return err
		},
	}
	cmd.Flags().StringVarP(&template, "template", "t", "", "template name, with or without the ' Template' suffix (see 'ugcctl templates')")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for the random details, for reproducible drafts")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the whole script record as JSON")
	return cmd
}

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the script templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, t := range prompts.Templates {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", t.Name, t.Concept); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

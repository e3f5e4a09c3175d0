package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ugc-studio/internal/breakdown"
)

func newBreakdownCmd() *cobra.Command {
	var minShot int
	cmd := &cobra.Command{
		Use:   "breakdown [file|-]",
		Short: "Split a script's video prompt into shots and print them as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			var opts []breakdown.Option
			if minShot > 0 {
				opts = append(opts, breakdown.WithMinShotLength(minShot))
			}
			result := breakdown.New(opts...).Extract(text)
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().IntVar(&minShot, "min-shot-length", 0, "drop shots shorter than this many characters")
	return cmd
}

// readInput reads the named file, or stdin for "-" or no argument.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}

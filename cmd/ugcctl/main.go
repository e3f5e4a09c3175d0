// Command ugcctl runs the content tools locally: shot breakdown, offline
// script drafts and idea generation against the configured AI provider.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ugc-studio/internal/logger"
)

var (
	logLevel string
	verbose  bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ugcctl",
		Short:         "UGC studio tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "shortcut for --log-level=debug")

	root.AddCommand(newBreakdownCmd(), newScriptCmd(), newIdeasCmd(), newTemplatesCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// cliLogger writes console logs to stderr so stdout stays parseable.
func cliLogger() *zap.Logger {
	level := logLevel
	if verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Config{Level: level, Encoding: "console", OutputPath: "stderr", Service: "ugcctl"})
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Package cmd implements the rill CLI, built with github.com/spf13/cobra:
// one file per subcommand, a shared rootCmd with PersistentFlags, RunE
// handlers. "fmt"/"compile" (bytecode, units, OOP-specific) have no Rill
// analogue and are not present here.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Version information, set by build flags.
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose    bool
	jsonLogs   bool
	configPath string
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rill",
	Short: "Rill pipe-chain scripting engine",
	Long: `rill runs Rill programs: a small, pipe-centric scripting language where a
value flows through a chain of stages (map, filter, fold, host calls, and
dict/list access) rather than being named at every step.`,
	Version:           Version,
	PersistentPreRunE: setupLogger,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "emit structured JSON diagnostics instead of text")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a .rill.yaml config file (defaults to searching upward from the cwd)")
}

// setupLogger builds the process-level slog.Logger used for CLI
// diagnostics (startup, flag errors, extension-mount failures). Rill's
// evaluation core never logs itself, it only raises typed errors and
// callback events; the CLI is the one place a text/JSON diagnostic
// stream makes sense.
func setupLogger(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: level}
	if jsonLogs {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger = slog.New(handler)
	return nil
}

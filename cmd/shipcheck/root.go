package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/shipcheck/internal/adapters/logging"
	"github.com/felixgeelhaar/shipcheck/internal/domain/checklist"
	"github.com/felixgeelhaar/shipcheck/internal/ports"
)

var (
	// Global flags
	verbose bool
	logJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "shipcheck",
	Short: "A deployment readiness checker",
	Long: `Shipcheck evaluates a deployment checklist against a snapshot of an
environment and reports which steps are ready.

It never performs a deployment action: every step is judged by its
preconditions alone, so a check is safe to run anywhere, any time:
  Checklist + Snapshot → Evaluate → Report`,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "write logs as JSON")

	rootCmd.AddCommand(versionCmd)
}

// commandContext returns the context commands run under, carrying a
// logger configured from the global flags. Logs go to stderr so stdout
// stays clean for reports.
func commandContext() context.Context {
	opts := []logging.ConsoleLoggerOption{}
	if verbose {
		opts = append(opts, logging.WithLevel(ports.LevelDebug))
	}
	if logJSON {
		opts = append(opts, logging.WithJSONFormat(true))
	}

	return ports.ContextWithLogger(context.Background(), logging.NewConsoleLogger(opts...))
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	if parseErr := checklist.GetParseError(err); parseErr != nil {
		msg := parseErr.Message
		if parseErr.Context != "" {
			msg += fmt.Sprintf(" (at %s)", parseErr.Context)
		}
		if parseErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", parseErr.Suggestion)
		}
		if verbose && parseErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", parseErr.Underlying)
		}
		return msg
	}
	return err.Error()
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}

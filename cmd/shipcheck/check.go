package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/shipcheck/internal/app"
	"github.com/felixgeelhaar/shipcheck/internal/domain/checklist"
	"github.com/felixgeelhaar/shipcheck/internal/domain/evaluation"
	"github.com/felixgeelhaar/shipcheck/internal/domain/snapshot"
	"github.com/felixgeelhaar/shipcheck/internal/tui"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate a checklist against an environment snapshot",
	Long: `Check loads a deployment checklist and an environment snapshot and
reports which steps are ready.

This command:
1. Loads and validates the checklist document
2. Loads a snapshot file, or captures one from the project directory
3. Evaluates every step's preconditions against the snapshot
4. Renders the ordered pass/fail report (without running any actions)

The command exits non-zero when the environment is not ready, so it
can gate a deployment from CI.`,
	RunE: runCheck,
}

var (
	checkChecklistPath string
	checkSnapshotPath  string
	checkProjectDir    string
	checkOverrides     []string
	checkJSON          bool
	checkInteractive   bool
)

// shipcheckClient is the app surface the commands drive. It exists so
// command tests can substitute a fake.
type shipcheckClient interface {
	Check(ctx context.Context, opts app.CheckOptions) (*checklist.Checklist, *evaluation.Report, error)
	Validate(ctx context.Context, opts app.ValidateOptions) (*app.ValidationResult, error)
	LoadChecklist(ctx context.Context, path string) (*checklist.Checklist, error)
	LoadSnapshot(ctx context.Context, path string) (snapshot.Snapshot, error)
	Capture(ctx context.Context, dir string) (snapshot.Snapshot, error)
	PrintReport(list *checklist.Checklist, report *evaluation.Report)
	WriteReportJSON(report *evaluation.Report) error
	PrintSteps(list *checklist.Checklist)
	PrintSnapshot(snap snapshot.Snapshot)
}

var newShipcheck = func(out io.Writer) shipcheckClient {
	return app.New(out).WithVersion(version)
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkChecklistPath, "checklist", "c", "shipcheck.yaml", "Path to the checklist document")
	checkCmd.Flags().StringVarP(&checkSnapshotPath, "snapshot", "s", "", "Path to an environment snapshot file")
	checkCmd.Flags().StringVar(&checkProjectDir, "project", "", "Project directory to capture a snapshot from (default \".\")")
	checkCmd.Flags().StringArrayVar(&checkOverrides, "set", nil, "Override a snapshot fact (key=value, repeatable)")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output the report as JSON")
	checkCmd.Flags().BoolVar(&checkInteractive, "interactive", false, "Review the report in an interactive UI")
}

func runCheck(_ *cobra.Command, _ []string) error {
	ctx := commandContext()

	overrides, err := parseOverrides(checkOverrides)
	if err != nil {
		return err
	}

	client := newShipcheck(os.Stdout)

	list, report, err := client.Check(ctx, app.CheckOptions{
		ChecklistPath: checkChecklistPath,
		SnapshotPath:  checkSnapshotPath,
		ProjectDir:    checkProjectDir,
		Overrides:     overrides,
	})
	if err != nil {
		return err
	}

	switch {
	case checkInteractive:
		if err := tui.RunReportReview(ctx, list, report); err != nil {
			return err
		}
	case checkJSON:
		if err := client.WriteReportJSON(report); err != nil {
			return err
		}
	default:
		client.PrintReport(list, report)
	}

	if !report.OK() {
		os.Exit(1)
	}

	return nil
}

// parseOverrides turns repeated --set key=value flags into facts.
func parseOverrides(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	overrides := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", pair)
		}
		overrides[key] = value
	}
	return overrides, nil
}

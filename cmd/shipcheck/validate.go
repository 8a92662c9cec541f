package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/shipcheck/internal/app"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a checklist without evaluating it",
	Long: `Validate checks a checklist document for problems without evaluating
any step.

This command is designed for CI/CD pipelines and editors to catch
checklist mistakes early: parse errors, missing fields, duplicate or
malformed step IDs, unknown operators, and preconditions that can
never pass. With a snapshot it also warns about facts the checklist
compares but the snapshot does not carry.

Exit codes:
  0 - Checklist is valid
  1 - Validation errors found (or warnings with --strict)

Examples:
  shipcheck validate
  shipcheck validate --checklist deploy.yaml
  shipcheck validate --snapshot host.yaml
  shipcheck validate --json --strict`,
	RunE: runValidate,
}

var (
	validateChecklistPath string
	validateSnapshotPath  string
	validateJSON          bool
	validateStrict        bool
)

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateChecklistPath, "checklist", "c", "shipcheck.yaml", "Path to the checklist document")
	validateCmd.Flags().StringVarP(&validateSnapshotPath, "snapshot", "s", "", "Snapshot file to cross-check fact keys against")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output results as JSON")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Treat warnings as errors")
}

func runValidate(_ *cobra.Command, _ []string) error {
	ctx := commandContext()

	client := newShipcheck(os.Stdout)

	result, err := client.Validate(ctx, app.ValidateOptions{
		ChecklistPath: validateChecklistPath,
		SnapshotPath:  validateSnapshotPath,
	})
	if err != nil {
		return err
	}

	failed := len(result.Errors) > 0 || (validateStrict && len(result.Warnings) > 0)

	if validateJSON {
		outputValidationJSON(result)
	} else {
		outputValidationText(result)
	}

	if failed {
		os.Exit(1)
	}

	return nil
}

func outputValidationJSON(result *app.ValidationResult) {
	output := struct {
		Valid    bool     `json:"valid"`
		Errors   []string `json:"errors,omitempty"`
		Warnings []string `json:"warnings,omitempty"`
		Info     []string `json:"info,omitempty"`
	}{
		Valid:    result.Valid(),
		Errors:   result.Errors,
		Warnings: result.Warnings,
		Info:     result.Info,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(output)
}

func outputValidationText(result *app.ValidationResult) {
	hasIssues := len(result.Errors) > 0 || len(result.Warnings) > 0

	if !hasIssues {
		fmt.Println("✓ Checklist is valid")
		for _, info := range result.Info {
			fmt.Printf("  • %s\n", info)
		}
		return
	}

	if len(result.Errors) > 0 {
		fmt.Println("✗ Validation errors:")
		for _, e := range result.Errors {
			fmt.Printf("  ✗ %s\n", e)
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Println("⚠ Warnings:")
		for _, w := range result.Warnings {
			fmt.Printf("  ⚠ %s\n", w)
		}
	}

	if len(result.Info) > 0 {
		fmt.Println("ℹ Info:")
		for _, i := range result.Info {
			fmt.Printf("  • %s\n", i)
		}
	}
}

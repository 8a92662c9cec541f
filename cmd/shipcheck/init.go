package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/shipcheck/internal/templates"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a starter checklist and example snapshot",
	Long: `Init writes a starter deployment checklist (shipcheck.yaml) and an
example snapshot (host.example.yaml) into a directory.

The starter checklist walks a Django deployment on a shared cPanel
host: pinned dependencies, ALLOWED_HOSTS, the Passenger WSGI entry
point, migrations and static files. Adjust it to your project.

Examples:
  shipcheck init
  shipcheck init --project mysite --domain mysite.example.com
  shipcheck init --dir deploy --force`,
	RunE: runInit,
}

var (
	initDir     string
	initForce   bool
	initProject string
	initDomain  string
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initDir, "dir", ".", "Directory to write the files into")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
	initCmd.Flags().StringVar(&initProject, "project", "", "Project name used in the checklist")
	initCmd.Flags().StringVar(&initDomain, "domain", "", "Domain the checklist pins ALLOWED_HOSTS to")
}

func runInit(_ *cobra.Command, _ []string) error {
	checklistPath := filepath.Join(initDir, "shipcheck.yaml")
	snapshotPath := filepath.Join(initDir, "host.example.yaml")

	// Check if a checklist already exists
	if !initForce {
		if _, err := os.Stat(checklistPath); err == nil {
			fmt.Printf("%s already exists.\n", checklistPath)
			fmt.Println("Use --force to overwrite, or 'shipcheck check' to evaluate it.")
			return nil
		}
	}

	data, err := templates.GenerateChecklist(templates.ChecklistData{
		Project: initProject,
		Domain:  initDomain,
	})
	if err != nil {
		return fmt.Errorf("failed to generate checklist: %w", err)
	}

	if err := os.MkdirAll(initDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(checklistPath, []byte(data), 0o644); err != nil {
		return fmt.Errorf("failed to write checklist: %w", err)
	}
	if err := os.WriteFile(snapshotPath, []byte(templates.SnapshotExample), 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	fmt.Printf("Checklist created: %s\n", checklistPath)
	fmt.Printf("Example snapshot:  %s\n", snapshotPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  shipcheck validate  - Lint the checklist")
	fmt.Println("  shipcheck check     - Evaluate it against this machine")

	return nil
}

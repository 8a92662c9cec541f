package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/shipcheck/internal/domain/snapshot"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Capture or inspect environment snapshots",
	Long: `Snapshot works with the environment snapshot files check evaluates
against.

A snapshot is a flat set of string facts about an environment. It can
be written by hand, captured from a project directory, or exported
from a server and copied over.`,
}

var snapshotCaptureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture a snapshot from a project directory",
	Long: `Capture probes a project directory and the local host for facts and
prints the resulting snapshot as YAML.

Probing only ever reads: it checks which project files exist, parses
requirements.txt, pyproject.toml and .env, and records host facts.
Nothing is executed or modified.`,
	RunE: runSnapshotCapture,
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Render a snapshot file as a fact table",
	RunE:  runSnapshotShow,
}

var (
	snapshotCaptureDir string
	snapshotCaptureOut string
	snapshotShowPath   string
	snapshotShowJSON   bool
)

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(snapshotCaptureCmd)
	snapshotCmd.AddCommand(snapshotShowCmd)

	snapshotCaptureCmd.Flags().StringVar(&snapshotCaptureDir, "project", ".", "Project directory to probe")
	snapshotCaptureCmd.Flags().StringVarP(&snapshotCaptureOut, "output", "o", "", "Write the snapshot to a file instead of stdout")

	snapshotShowCmd.Flags().StringVarP(&snapshotShowPath, "snapshot", "s", "", "Path to the snapshot file")
	snapshotShowCmd.Flags().BoolVar(&snapshotShowJSON, "json", false, "Output facts as JSON")
	_ = snapshotShowCmd.MarkFlagRequired("snapshot")
}

func runSnapshotCapture(_ *cobra.Command, _ []string) error {
	ctx := commandContext()

	client := newShipcheck(os.Stdout)

	snap, err := client.Capture(ctx, snapshotCaptureDir)
	if err != nil {
		return err
	}

	data := snapshot.Encode(snap)

	if snapshotCaptureOut != "" {
		if err := os.WriteFile(snapshotCaptureOut, data, 0o644); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
		fmt.Printf("Snapshot written: %s (%d facts)\n", snapshotCaptureOut, snap.Len())
		return nil
	}

	fmt.Print(string(data))
	return nil
}

func runSnapshotShow(_ *cobra.Command, _ []string) error {
	ctx := commandContext()

	client := newShipcheck(os.Stdout)

	snap, err := client.LoadSnapshot(ctx, snapshotShowPath)
	if err != nil {
		return err
	}

	if snapshotShowJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap.Facts())
	}

	client.PrintSnapshot(snap)
	return nil
}

package main

import (
	"os"

	"github.com/spf13/cobra"
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "List the steps of a checklist in order",
	Long: `Steps prints the ordered step listing of a checklist: position, ID,
precondition summary and description.

The order shown is the order check evaluates and reports in.`,
	RunE: runSteps,
}

var stepsChecklistPath string

func init() {
	rootCmd.AddCommand(stepsCmd)

	stepsCmd.Flags().StringVarP(&stepsChecklistPath, "checklist", "c", "shipcheck.yaml", "Path to the checklist document")
}

func runSteps(_ *cobra.Command, _ []string) error {
	ctx := commandContext()

	client := newShipcheck(os.Stdout)

	list, err := client.LoadChecklist(ctx, stepsChecklistPath)
	if err != nil {
		return err
	}

	client.PrintSteps(list)

	return nil
}

// Package tui provides terminal user interface entry points for shipcheck.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/shipcheck/internal/domain/checklist"
	"github.com/felixgeelhaar/shipcheck/internal/domain/evaluation"
)

// RunReportReview opens an interactive view of a readiness report. It
// returns when the user quits; browsing never re-evaluates the report.
func RunReportReview(ctx context.Context, list *checklist.Checklist, report *evaluation.Report) error {
	model := newReportReviewModel(list, report)

	program := tea.NewProgram(model, tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("report review failed: %w", err)
	}

	if _, ok := finalModel.(reportReviewModel); !ok {
		return fmt.Errorf("unexpected model type returned from report review")
	}

	return nil
}

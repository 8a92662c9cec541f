package evaluation

import (
	"time"

	"github.com/felixgeelhaar/shipcheck/internal/domain/checklist"
	"github.com/felixgeelhaar/shipcheck/internal/domain/snapshot"
)

// Runner evaluates a whole checklist against a snapshot and produces
// the readiness report.
type Runner struct {
	evaluator *Evaluator
}

// NewRunner creates a new Runner.
func NewRunner() *Runner {
	return &Runner{
		evaluator: NewEvaluator(),
	}
}

// Run evaluates every step in checklist order. All steps are always
// evaluated: a failing step never short-circuits the ones after it,
// so the report covers the entire checklist.
func (r *Runner) Run(list *checklist.Checklist, snap snapshot.Snapshot) *Report {
	results := make([]StepResult, 0, list.Len())

	for _, step := range list.Steps() {
		start := time.Now()
		result := r.evaluator.EvaluateStep(step, snap)
		results = append(results, result.WithDuration(time.Since(start)))
	}

	return NewReport(list.Name(), snap.Source(), results)
}

package evaluation

import (
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/shipcheck/internal/domain/checklist"
)

// Summary provides aggregate statistics for a report.
type Summary struct {
	Total   int
	Passed  int
	Failed  int
	Errored int
}

// Report is the outcome of evaluating a checklist against a snapshot:
// one StepResult per step, in checklist order, plus identity metadata.
// The run ID and timestamp identify the run; the outcomes are a pure
// function of the checklist and the snapshot.
type Report struct {
	runID          string
	createdAt      time.Time
	checklistName  string
	snapshotSource string
	results        []StepResult
}

// NewReport creates a Report from ordered step results.
func NewReport(checklistName, snapshotSource string, results []StepResult) *Report {
	copied := make([]StepResult, len(results))
	copy(copied, results)
	return &Report{
		runID:          uuid.New().String(),
		createdAt:      time.Now().UTC(),
		checklistName:  checklistName,
		snapshotSource: snapshotSource,
		results:        copied,
	}
}

// RunID returns the unique identifier of this evaluation run.
func (r *Report) RunID() string {
	return r.runID
}

// CreatedAt returns when the report was generated.
func (r *Report) CreatedAt() time.Time {
	return r.createdAt
}

// ChecklistName returns the name of the evaluated checklist.
func (r *Report) ChecklistName() string {
	return r.checklistName
}

// SnapshotSource returns where the snapshot came from.
func (r *Report) SnapshotSource() string {
	return r.snapshotSource
}

// Results returns the step results in checklist order.
func (r *Report) Results() []StepResult {
	copied := make([]StepResult, len(r.results))
	copy(copied, r.results)
	return copied
}

// Len returns the number of step results.
func (r *Report) Len() int {
	return len(r.results)
}

// Result returns the result for a given step ID, if present.
func (r *Report) Result(id checklist.StepID) (StepResult, bool) {
	for _, res := range r.results {
		if res.StepID().Equals(id) {
			return res, true
		}
	}
	return StepResult{}, false
}

// OK reports overall readiness: true only when every step passed.
// An empty checklist is vacuously ready.
func (r *Report) OK() bool {
	for _, res := range r.results {
		if !res.Passed() {
			return false
		}
	}
	return true
}

// Summary returns aggregate statistics. Errored counts steps whose
// failures include an evaluation error; those steps also count as
// failed, never as passed.
func (r *Report) Summary() Summary {
	summary := Summary{Total: len(r.results)}
	for _, res := range r.results {
		switch {
		case res.Passed():
			summary.Passed++
		case res.Err() != nil:
			summary.Errored++
			summary.Failed++
		default:
			summary.Failed++
		}
	}
	return summary
}

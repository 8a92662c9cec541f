package evaluation

import (
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/shipcheck/internal/domain/checklist"
)

// Failure records one precondition that did not hold, with enough
// context to tell the operator what the environment looked like.
type Failure struct {
	key      string
	operator checklist.Operator
	wanted   string
	got      string
	present  bool
	err      error
}

// NewFailure creates a Failure for a precondition that was evaluated
// and did not hold. got/present describe the fact in the snapshot.
func NewFailure(pre checklist.Precondition, got string, present bool) Failure {
	return Failure{
		key:      pre.Key(),
		operator: pre.Operator(),
		wanted:   pre.Value(),
		got:      got,
		present:  present,
	}
}

// NewEvaluationFailure creates a Failure for a precondition that could
// not be evaluated at all.
func NewEvaluationFailure(pre checklist.Precondition, err error) Failure {
	return Failure{
		key:      pre.Key(),
		operator: pre.Operator(),
		wanted:   pre.Value(),
		err:      err,
	}
}

// Key returns the snapshot fact key that failed.
func (f Failure) Key() string {
	return f.key
}

// Operator returns the comparison that failed.
func (f Failure) Operator() checklist.Operator {
	return f.operator
}

// Wanted returns the wanted value, if the operator takes one.
func (f Failure) Wanted() string {
	return f.wanted
}

// Got returns the observed fact value and whether the fact was present.
func (f Failure) Got() (string, bool) {
	return f.got, f.present
}

// Err returns the evaluation error, or nil when the precondition was
// evaluated normally and simply did not hold.
func (f Failure) Err() error {
	return f.err
}

// Detail renders a one-line explanation for reports.
func (f Failure) Detail() string {
	if f.err != nil {
		var evalErr *EvaluationError
		if errors.As(f.err, &evalErr) {
			return fmt.Sprintf("%v (operator %q)", evalErr.Err, evalErr.Operator)
		}
		return f.err.Error()
	}

	switch f.operator {
	case checklist.OpEquals:
		if !f.present {
			return fmt.Sprintf("want %q, fact not present in snapshot", f.wanted)
		}
		return fmt.Sprintf("want %q, got %q", f.wanted, f.got)
	case checklist.OpNotEquals:
		if !f.present {
			return fmt.Sprintf("want anything but %q, fact not present in snapshot", f.wanted)
		}
		return fmt.Sprintf("want anything but %q, got exactly that", f.wanted)
	case checklist.OpExists:
		return "fact not present in snapshot"
	case checklist.OpAbsent:
		return fmt.Sprintf("fact present with value %q", f.got)
	case checklist.OpAtLeast:
		if !f.present {
			return fmt.Sprintf("want at least %s, fact not present in snapshot", f.wanted)
		}
		return fmt.Sprintf("want at least %s, got %s", f.wanted, f.got)
	default:
		return fmt.Sprintf("precondition %s %s did not hold", f.key, f.operator)
	}
}

// StepResult captures the outcome of evaluating a single step against
// a snapshot. A step passes when none of its preconditions failed; a
// step with no preconditions always passes.
type StepResult struct {
	stepID   checklist.StepID
	position int
	passed   bool
	failures []Failure
	duration time.Duration
}

// NewStepResult creates a StepResult from the failures collected while
// evaluating a step.
func NewStepResult(stepID checklist.StepID, position int, failures []Failure) StepResult {
	copied := make([]Failure, len(failures))
	copy(copied, failures)
	return StepResult{
		stepID:   stepID,
		position: position,
		passed:   len(copied) == 0,
		failures: copied,
	}
}

// StepID returns the ID of the evaluated step.
func (r StepResult) StepID() checklist.StepID {
	return r.stepID
}

// Position returns the step's 1-based checklist position.
func (r StepResult) Position() int {
	return r.position
}

// Passed reports whether every precondition held.
func (r StepResult) Passed() bool {
	return r.passed
}

// Failures returns the failed preconditions in document order.
func (r StepResult) Failures() []Failure {
	copied := make([]Failure, len(r.failures))
	copy(copied, r.failures)
	return copied
}

// FailedKeys returns the fact keys of the failed preconditions.
func (r StepResult) FailedKeys() []string {
	keys := make([]string, 0, len(r.failures))
	for _, f := range r.failures {
		keys = append(keys, f.key)
	}
	return keys
}

// Err joins the evaluation errors attached to this step, or nil when
// every precondition was evaluated normally.
func (r StepResult) Err() error {
	var errs []error
	for _, f := range r.failures {
		if f.err != nil {
			errs = append(errs, f.err)
		}
	}
	return errors.Join(errs...)
}

// Duration returns how long the step took to evaluate.
func (r StepResult) Duration() time.Duration {
	return r.duration
}

// WithDuration returns a new StepResult with duration set.
func (r StepResult) WithDuration(d time.Duration) StepResult {
	r.duration = d
	return r
}

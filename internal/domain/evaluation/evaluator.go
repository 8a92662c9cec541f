// Package evaluation checks checklist steps against an environment
// snapshot and assembles the readiness report. Evaluation is pure:
// no I/O, no command execution, no mutation of the snapshot.
package evaluation

import (
	goversion "github.com/hashicorp/go-version"

	"github.com/felixgeelhaar/shipcheck/internal/domain/checklist"
	"github.com/felixgeelhaar/shipcheck/internal/domain/snapshot"
)

// Evaluator evaluates a step's preconditions against a snapshot.
// It is stateless; the same step and snapshot always produce the
// same result.
type Evaluator struct{}

// NewEvaluator creates a new Evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// EvaluateStep checks every precondition of the step independently and
// returns the step's result. One failing or unevaluable precondition
// never stops the others from being checked.
func (e *Evaluator) EvaluateStep(step checklist.Step, snap snapshot.Snapshot) StepResult {
	var failures []Failure

	for _, pre := range step.Requires() {
		if failure, failed := e.evaluate(step.ID(), pre, snap); failed {
			failures = append(failures, failure)
		}
	}

	return NewStepResult(step.ID(), step.Position(), failures)
}

// evaluate checks a single precondition. The second return is true
// when the precondition did not hold (or could not be evaluated).
func (e *Evaluator) evaluate(stepID checklist.StepID, pre checklist.Precondition, snap snapshot.Snapshot) (Failure, bool) {
	got, present := snap.Lookup(pre.Key())

	switch pre.Operator() {
	case checklist.OpEquals:
		if !present || got != pre.Value() {
			return NewFailure(pre, got, present), true
		}

	case checklist.OpNotEquals:
		// A missing fact is unknown state, not evidence of inequality.
		if !present || got == pre.Value() {
			return NewFailure(pre, got, present), true
		}

	case checklist.OpExists:
		if !present {
			return NewFailure(pre, got, present), true
		}

	case checklist.OpAbsent:
		if present {
			return NewFailure(pre, got, present), true
		}

	case checklist.OpAtLeast:
		return e.evaluateAtLeast(stepID, pre, got, present)

	default:
		return NewEvaluationFailure(pre, newUnsupportedOperatorError(stepID, pre)), true
	}

	return Failure{}, false
}

// evaluateAtLeast compares fact and wanted value as versions.
// hashicorp/go-version accepts the loose forms deployment facts come
// in (3.11, 3.11.4, 8.2.0-rc1), not just strict semver.
func (e *Evaluator) evaluateAtLeast(stepID checklist.StepID, pre checklist.Precondition, got string, present bool) (Failure, bool) {
	wanted, err := goversion.NewVersion(pre.Value())
	if err != nil {
		return NewEvaluationFailure(pre, newBadVersionError(stepID, pre, pre.Value())), true
	}

	if !present {
		return NewFailure(pre, got, present), true
	}

	observed, err := goversion.NewVersion(got)
	if err != nil {
		return NewEvaluationFailure(pre, newBadVersionError(stepID, pre, got)), true
	}

	if observed.LessThan(wanted) {
		return NewFailure(pre, got, present), true
	}

	return Failure{}, false
}

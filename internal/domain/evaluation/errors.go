package evaluation

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/shipcheck/internal/domain/checklist"
)

// Sentinel errors surfaced through EvaluationError.
var (
	// ErrUnsupportedOperator marks a precondition whose operator is
	// outside the supported set.
	ErrUnsupportedOperator = errors.New("unsupported operator")
	// ErrBadVersionValue marks an at-least comparison whose value does
	// not parse as a version.
	ErrBadVersionValue = errors.New("value does not parse as a version")
)

// EvaluationError records that a single precondition could not be
// evaluated. It is never fatal: the owning step fails, the error is
// attached to that step's result, and every other step is still
// evaluated and reported.
type EvaluationError struct {
	StepID   checklist.StepID
	Key      string
	Operator checklist.Operator
	Err      error
}

// Error returns the formatted error message.
func (e *EvaluationError) Error() string {
	return fmt.Sprintf("step %s: precondition %s: %v (operator %q)",
		e.StepID, e.Key, e.Err, e.Operator)
}

// Unwrap returns the sentinel cause.
func (e *EvaluationError) Unwrap() error {
	return e.Err
}

func newUnsupportedOperatorError(stepID checklist.StepID, pre checklist.Precondition) *EvaluationError {
	return &EvaluationError{
		StepID:   stepID,
		Key:      pre.Key(),
		Operator: pre.Operator(),
		Err:      ErrUnsupportedOperator,
	}
}

func newBadVersionError(stepID checklist.StepID, pre checklist.Precondition, raw string) *EvaluationError {
	return &EvaluationError{
		StepID:   stepID,
		Key:      pre.Key(),
		Operator: pre.Operator(),
		Err:      fmt.Errorf("%w: %q", ErrBadVersionValue, raw),
	}
}

package checklist

import "errors"

// ErrEmptyDescription is returned when a step has no description.
var ErrEmptyDescription = errors.New("step description cannot be empty")

// Step is one entry of a deployment checklist: an identifier, a
// human-readable description of the deployment action, and the
// preconditions the environment must satisfy before that action is safe.
// The action itself is never executed; it is documentation for the operator.
type Step struct {
	id          StepID
	position    int
	description string
	action      string
	requires    []Precondition
}

// NewStep creates a Step with the required fields.
func NewStep(id StepID, description string) (Step, error) {
	if id.IsZero() {
		return Step{}, ErrEmptyStepID
	}
	if description == "" {
		return Step{}, ErrEmptyDescription
	}

	return Step{
		id:          id,
		description: description,
	}, nil
}

// WithAction returns a copy of the step with the action label set.
func (s Step) WithAction(action string) Step {
	s.action = action
	return s
}

// WithRequires returns a copy of the step with its preconditions set.
func (s Step) WithRequires(requires ...Precondition) Step {
	copied := make([]Precondition, len(requires))
	copy(copied, requires)
	s.requires = copied
	return s
}

// withPosition returns a copy with the 1-based checklist position set.
// Positions are assigned when the checklist is assembled.
func (s Step) withPosition(pos int) Step {
	s.position = pos
	return s
}

// ID returns the step identifier.
func (s Step) ID() StepID {
	return s.id
}

// Position returns the 1-based position within the checklist.
// Zero for steps not yet part of a checklist.
func (s Step) Position() int {
	return s.position
}

// Description returns the human-readable description.
func (s Step) Description() string {
	return s.description
}

// Action returns the informational action label, if any.
func (s Step) Action() string {
	return s.action
}

// Requires returns the step's preconditions in document order.
func (s Step) Requires() []Precondition {
	copied := make([]Precondition, len(s.requires))
	copy(copied, s.requires)
	return copied
}

// HasPreconditions reports whether the step places any requirements
// on the environment. A step without preconditions always passes.
func (s Step) HasPreconditions() bool {
	return len(s.requires) > 0
}

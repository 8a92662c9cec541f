package checklist

import (
	"errors"
	"fmt"
)

// Operator names a comparison applied to a snapshot fact.
type Operator string

// Supported operators. The set is closed: preconditions never execute
// commands, they only compare recorded facts.
const (
	// OpEquals requires the fact to be present and equal to the wanted value.
	OpEquals Operator = "equals"
	// OpNotEquals requires the fact to be present and different from the wanted value.
	OpNotEquals Operator = "not-equals"
	// OpExists requires the fact to be present, whatever its value.
	OpExists Operator = "exists"
	// OpAbsent requires the fact to be missing from the snapshot.
	OpAbsent Operator = "absent"
	// OpAtLeast requires the fact to parse as a version >= the wanted version.
	OpAtLeast Operator = "at-least"
)

// String returns the string representation of the operator.
func (o Operator) String() string {
	return string(o)
}

// Known reports whether the operator is part of the supported set.
// Unknown operators survive parsing and surface as evaluation errors,
// so a checklist never fails to load over a typo in one step.
func (o Operator) Known() bool {
	switch o {
	case OpEquals, OpNotEquals, OpExists, OpAbsent, OpAtLeast:
		return true
	default:
		return false
	}
}

// NeedsValue reports whether the operator compares against a wanted value.
func (o Operator) NeedsValue() bool {
	switch o {
	case OpEquals, OpNotEquals, OpAtLeast:
		return true
	default:
		return false
	}
}

// KnownOperators returns the supported operator set in display order.
func KnownOperators() []Operator {
	return []Operator{OpEquals, OpNotEquals, OpExists, OpAbsent, OpAtLeast}
}

// ErrEmptyPreconditionKey is returned when a precondition has no fact key.
var ErrEmptyPreconditionKey = errors.New("precondition key cannot be empty")

// Precondition is a single requirement a step places on the environment:
// a fact key, an operator, and (for comparing operators) a wanted value.
type Precondition struct {
	key      string
	operator Operator
	value    string
}

// NewPrecondition creates a Precondition. An empty operator defaults to
// equals when a wanted value is given and exists otherwise.
func NewPrecondition(key string, operator Operator, value string) (Precondition, error) {
	if key == "" {
		return Precondition{}, ErrEmptyPreconditionKey
	}

	if operator == "" {
		if value != "" {
			operator = OpEquals
		} else {
			operator = OpExists
		}
	}

	return Precondition{
		key:      key,
		operator: operator,
		value:    value,
	}, nil
}

// MustNewPrecondition creates a Precondition, panicking on error.
func MustNewPrecondition(key string, operator Operator, value string) Precondition {
	p, err := NewPrecondition(key, operator, value)
	if err != nil {
		panic("invalid precondition: " + key + ": " + err.Error())
	}
	return p
}

// Key returns the snapshot fact key this precondition inspects.
func (p Precondition) Key() string {
	return p.key
}

// Operator returns the comparison operator.
func (p Precondition) Operator() Operator {
	return p.operator
}

// Value returns the wanted value. Empty for presence operators.
func (p Precondition) Value() string {
	return p.value
}

// String renders the precondition in checklist notation.
func (p Precondition) String() string {
	if p.operator.NeedsValue() || p.value != "" {
		return fmt.Sprintf("%s %s %q", p.key, p.operator, p.value)
	}
	return fmt.Sprintf("%s %s", p.key, p.operator)
}

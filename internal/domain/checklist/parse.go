package checklist

import (
	"gopkg.in/yaml.v3"
)

// checklistYAML is the YAML representation for unmarshaling.
type checklistYAML struct {
	Version        int        `yaml:"version,omitempty"`
	Name           string     `yaml:"name,omitempty"`
	Description    string     `yaml:"description,omitempty"`
	MinToolVersion string     `yaml:"min_tool_version,omitempty"`
	Steps          []stepYAML `yaml:"steps"`
}

type stepYAML struct {
	ID          string             `yaml:"id"`
	Description string             `yaml:"description"`
	Action      string             `yaml:"action,omitempty"`
	Requires    []preconditionYAML `yaml:"requires,omitempty"`
}

type preconditionYAML struct {
	Key string `yaml:"key"`
	Op  string `yaml:"op,omitempty"`
	// Value is a pointer so "value: \"\"" and an omitted value can be
	// told apart when defaulting the operator.
	Value *string `yaml:"value,omitempty"`
}

// Parse parses a Checklist from YAML bytes.
//
// Structural problems return a *ParseError: missing id or description,
// malformed or duplicate step IDs, preconditions without a key. An
// unknown operator is NOT a parse error; it is carried through and
// reported against its step at evaluation time.
func Parse(data []byte) (*Checklist, error) {
	var raw checklistYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	steps := make([]Step, 0, len(raw.Steps))
	for i, rawStep := range raw.Steps {
		step, err := parseStep(i, rawStep)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}

	list, err := New(raw.Name, steps)
	if err != nil {
		return nil, err
	}
	list.withDescription(raw.Description)
	list.withMinToolVersion(raw.MinToolVersion)

	return list, nil
}

func parseStep(index int, raw stepYAML) (Step, error) {
	if raw.ID == "" {
		return Step{}, NewStepMissingFieldError(index, "id")
	}

	id, err := NewStepID(raw.ID)
	if err != nil {
		return Step{}, NewStepIDInvalidError(raw.ID, err)
	}

	if raw.Description == "" {
		return Step{}, NewStepMissingFieldError(index, "description").
			WithContext(raw.ID)
	}

	step, err := NewStep(id, raw.Description)
	if err != nil {
		return Step{}, err
	}

	if raw.Action != "" {
		step = step.WithAction(raw.Action)
	}

	if len(raw.Requires) > 0 {
		requires := make([]Precondition, 0, len(raw.Requires))
		for j, rawPre := range raw.Requires {
			pre, err := parsePrecondition(raw.ID, j, rawPre)
			if err != nil {
				return Step{}, err
			}
			requires = append(requires, pre)
		}
		step = step.WithRequires(requires...)
	}

	return step, nil
}

func parsePrecondition(stepID string, index int, raw preconditionYAML) (Precondition, error) {
	if raw.Key == "" {
		return Precondition{}, NewPreconditionKeyError(stepID, index)
	}

	value := ""
	hasValue := raw.Value != nil
	if hasValue {
		value = *raw.Value
	}

	op := Operator(raw.Op)
	if op == "" {
		if hasValue {
			op = OpEquals
		} else {
			op = OpExists
		}
	}

	return NewPrecondition(raw.Key, op, value)
}

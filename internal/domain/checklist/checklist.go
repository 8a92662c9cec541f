// Package checklist defines the deployment checklist domain model:
// ordered steps, their preconditions, and the parser that loads them
// from declarative YAML documents.
package checklist

// Checklist is an ordered, immutable list of deployment steps.
// Step order is the document order and is preserved end to end;
// evaluation and reporting never reorder steps.
type Checklist struct {
	name           string
	description    string
	minToolVersion string
	steps          []Step
}

// New assembles a Checklist from steps, assigning 1-based positions.
// Duplicate step IDs are rejected: a checklist where two steps share an
// identifier is ambiguous and never partially usable.
func New(name string, steps []Step) (*Checklist, error) {
	seen := make(map[string]bool, len(steps))
	positioned := make([]Step, 0, len(steps))

	for i, step := range steps {
		id := step.ID().String()
		if seen[id] {
			return nil, NewStepDuplicateError(id)
		}
		seen[id] = true
		positioned = append(positioned, step.withPosition(i+1))
	}

	return &Checklist{
		name:  name,
		steps: positioned,
	}, nil
}

// withDescription sets the optional checklist description.
func (c *Checklist) withDescription(desc string) *Checklist {
	c.description = desc
	return c
}

// withMinToolVersion sets the minimum tool version requirement.
func (c *Checklist) withMinToolVersion(v string) *Checklist {
	c.minToolVersion = v
	return c
}

// Name returns the checklist name.
func (c *Checklist) Name() string {
	return c.name
}

// Description returns the optional checklist description.
func (c *Checklist) Description() string {
	return c.description
}

// MinToolVersion returns the minimum tool version the checklist
// declares, or empty when it accepts any version.
func (c *Checklist) MinToolVersion() string {
	return c.minToolVersion
}

// Steps returns the steps in checklist order.
func (c *Checklist) Steps() []Step {
	copied := make([]Step, len(c.steps))
	copy(copied, c.steps)
	return copied
}

// Len returns the number of steps.
func (c *Checklist) Len() int {
	return len(c.steps)
}

// IsEmpty reports whether the checklist has no steps.
// An empty checklist is valid and vacuously ready.
func (c *Checklist) IsEmpty() bool {
	return len(c.steps) == 0
}

// Get returns the step with the given ID, if present.
func (c *Checklist) Get(id StepID) (Step, bool) {
	for _, step := range c.steps {
		if step.ID().Equals(id) {
			return step, true
		}
	}
	return Step{}, false
}

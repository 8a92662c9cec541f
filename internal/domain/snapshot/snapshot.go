// Package snapshot provides the environment snapshot: an immutable
// record of observable facts about a target host at validation time.
package snapshot

import (
	"sort"
)

// Snapshot is an immutable mapping from fact name to string value.
// Facts describe the observable state of the target environment
// ("has_requirements_file", "python.version", "host.os"). Evaluating
// a checklist never changes a snapshot; derived snapshots are copies.
type Snapshot struct {
	source string
	facts  map[string]string
}

// New creates a Snapshot from a fact map. The input map is copied,
// so later mutation of the argument does not leak into the snapshot.
func New(facts map[string]string) Snapshot {
	copied := make(map[string]string, len(facts))
	for k, v := range facts {
		copied[k] = v
	}
	return Snapshot{facts: copied}
}

// WithSource returns a copy of the snapshot with its origin recorded
// (a file path, or a captured project directory).
func (s Snapshot) WithSource(source string) Snapshot {
	s.source = source
	return s
}

// Source returns where the snapshot came from, if recorded.
func (s Snapshot) Source() string {
	return s.source
}

// Lookup returns the value of a fact and whether it is present.
func (s Snapshot) Lookup(key string) (string, bool) {
	v, ok := s.facts[key]
	return v, ok
}

// Has reports whether a fact is present.
func (s Snapshot) Has(key string) bool {
	_, ok := s.facts[key]
	return ok
}

// Keys returns all fact names in sorted order.
func (s Snapshot) Keys() []string {
	keys := make([]string, 0, len(s.facts))
	for k := range s.facts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of facts.
func (s Snapshot) Len() int {
	return len(s.facts)
}

// IsEmpty reports whether the snapshot records no facts.
func (s Snapshot) IsEmpty() bool {
	return len(s.facts) == 0
}

// Facts returns a copy of the fact map.
func (s Snapshot) Facts() map[string]string {
	copied := make(map[string]string, len(s.facts))
	for k, v := range s.facts {
		copied[k] = v
	}
	return copied
}

// Merge returns a new Snapshot with the overrides laid over the
// receiver's facts. The receiver is unchanged; the source carries over.
func (s Snapshot) Merge(overrides map[string]string) Snapshot {
	merged := make(map[string]string, len(s.facts)+len(overrides))
	for k, v := range s.facts {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return Snapshot{source: s.source, facts: merged}
}

package app

import (
	"context"
	"fmt"

	goversion "github.com/hashicorp/go-version"
	"golang.org/x/mod/semver"

	"github.com/felixgeelhaar/shipcheck/internal/domain/checklist"
	"github.com/felixgeelhaar/shipcheck/internal/domain/snapshot"
)

// ValidationResult contains the results of checklist validation.
type ValidationResult struct {
	Errors   []string
	Warnings []string
	Info     []string
}

// Valid reports whether the checklist can be evaluated at all.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// ValidateOptions configures validation behavior.
type ValidateOptions struct {
	// ChecklistPath is the checklist document to validate.
	ChecklistPath string
	// SnapshotPath is an optional snapshot cross-checked against the
	// checklist's precondition keys.
	SnapshotPath string
}

// Validate checks a checklist document for problems without evaluating
// it. Parse failures are validation errors; lints that would make a
// check surprising (unknown operators, contradictory preconditions)
// are warnings.
func (s *Shipcheck) Validate(ctx context.Context, opts ValidateOptions) (*ValidationResult, error) {
	result := &ValidationResult{}

	list, err := s.LoadChecklist(ctx, opts.ChecklistPath)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result, nil
	}

	result.Info = append(result.Info, fmt.Sprintf("Loaded checklist from %s", opts.ChecklistPath))
	result.Info = append(result.Info, fmt.Sprintf("Checklist: %s (%d steps)", list.Name(), list.Len()))

	if list.IsEmpty() {
		result.Warnings = append(result.Warnings, "Checklist has no steps; every check will report ready")
	}

	s.validateToolVersionGate(list, result)

	for _, step := range list.Steps() {
		s.validateStep(step, result)
	}

	if opts.SnapshotPath != "" {
		s.validateAgainstSnapshot(ctx, list, opts.SnapshotPath, result)
	}

	return result, nil
}

// validateToolVersionGate flags an unparsable min_tool_version, which
// check would silently skip.
func (s *Shipcheck) validateToolVersionGate(list *checklist.Checklist, result *ValidationResult) {
	required := list.MinToolVersion()
	if required == "" {
		return
	}
	if !semver.IsValid(canonicalVersion(required)) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("min_tool_version %q is not a semantic version; the gate will not be enforced", required))
	}
}

// validateStep lints a single step's preconditions.
func (s *Shipcheck) validateStep(step checklist.Step, result *ValidationResult) {
	id := step.ID().String()

	if !step.HasPreconditions() {
		result.Info = append(result.Info, fmt.Sprintf("Step %s has no preconditions and always passes", id))
		return
	}

	wantedEquals := make(map[string]string)
	wantExists := make(map[string]bool)
	wantAbsent := make(map[string]bool)

	for i, pre := range step.Requires() {
		if !pre.Operator().Known() {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Step %s precondition %d uses unsupported operator %q and will fail evaluation", id, i+1, pre.Operator()))
			continue
		}

		switch pre.Operator() {
		case checklist.OpEquals:
			if prev, seen := wantedEquals[pre.Key()]; seen && prev != pre.Value() {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Step %s requires %s to equal both %q and %q; it can never pass", id, pre.Key(), prev, pre.Value()))
			}
			wantedEquals[pre.Key()] = pre.Value()
		case checklist.OpExists:
			wantExists[pre.Key()] = true
		case checklist.OpAbsent:
			wantAbsent[pre.Key()] = true
		case checklist.OpAtLeast:
			if _, err := goversion.NewVersion(pre.Value()); err != nil {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Step %s requires %s to be at least %q, which is not a version", id, pre.Key(), pre.Value()))
			}
		}
	}

	for key := range wantExists {
		if wantAbsent[key] {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Step %s requires %s to both exist and be absent; it can never pass", id, key))
		}
	}
}

// validateAgainstSnapshot warns about value comparisons whose facts the
// snapshot does not carry. Existence checks are exempt, probing for the
// fact is their whole point.
func (s *Shipcheck) validateAgainstSnapshot(ctx context.Context, list *checklist.Checklist, path string, result *ValidationResult) {
	snap, err := s.LoadSnapshot(ctx, path)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}

	result.Info = append(result.Info, fmt.Sprintf("Snapshot: %s (%d facts)", path, snap.Len()))

	s.warnMissingFacts(list, snap, result)
}

func (s *Shipcheck) warnMissingFacts(list *checklist.Checklist, snap snapshot.Snapshot, result *ValidationResult) {
	for _, step := range list.Steps() {
		for _, pre := range step.Requires() {
			switch pre.Operator() {
			case checklist.OpEquals, checklist.OpNotEquals, checklist.OpAtLeast:
				if !snap.Has(pre.Key()) {
					result.Warnings = append(result.Warnings,
						fmt.Sprintf("Snapshot has no fact %s, compared by step %s", pre.Key(), step.ID()))
				}
			}
		}
	}
}

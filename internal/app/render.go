package app

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/felixgeelhaar/shipcheck/internal/domain/checklist"
	"github.com/felixgeelhaar/shipcheck/internal/domain/evaluation"
	"github.com/felixgeelhaar/shipcheck/internal/domain/snapshot"
)

// PrintReport outputs a human-readable readiness report.
func (s *Shipcheck) PrintReport(list *checklist.Checklist, report *evaluation.Report) {
	s.printf("\nDeployment Readiness\n")
	s.printf("====================\n\n")
	s.printf("Checklist: %s\n", report.ChecklistName())
	s.printf("Snapshot:  %s\n\n", report.SnapshotSource())

	for _, res := range report.Results() {
		glyph := "✓"
		switch {
		case res.Passed():
			glyph = "✓"
		case res.Err() != nil:
			glyph = "!"
		default:
			glyph = "✗"
		}

		line := fmt.Sprintf("  %s %d. %s", glyph, res.Position(), res.StepID())
		if step, ok := list.Get(res.StepID()); ok && step.Description() != "" {
			line += "  " + step.Description()
		}
		s.printf("%s\n", line)

		for _, failure := range res.Failures() {
			s.printf("        %s: %s\n", failure.Key(), failure.Detail())
		}
	}

	summary := report.Summary()
	s.printf("\nSummary: %d passed, %d failed", summary.Passed, summary.Failed)
	if summary.Errored > 0 {
		s.printf(" (%d with evaluation errors)", summary.Errored)
	}
	s.printf("\n\n")

	if report.OK() {
		s.printf("READY: all %d steps passed.\n", summary.Total)
	} else {
		s.printf("NOT READY: %d of %d steps failed.\n", summary.Failed, summary.Total)
	}
}

// reportJSON is the machine-readable report shape.
type reportJSON struct {
	RunID     string           `json:"run_id"`
	CreatedAt time.Time        `json:"created_at"`
	Checklist string           `json:"checklist"`
	Snapshot  string           `json:"snapshot"`
	OK        bool             `json:"ok"`
	Summary   summaryJSON      `json:"summary"`
	Steps     []stepResultJSON `json:"steps"`
}

type summaryJSON struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Errored int `json:"errored"`
}

type stepResultJSON struct {
	ID       string        `json:"id"`
	Position int           `json:"position"`
	Passed   bool          `json:"passed"`
	Duration string        `json:"duration"`
	Failures []failureJSON `json:"failures,omitempty"`
}

type failureJSON struct {
	Key      string `json:"key"`
	Operator string `json:"operator"`
	Wanted   string `json:"wanted,omitempty"`
	Got      string `json:"got,omitempty"`
	Present  bool   `json:"present"`
	Detail   string `json:"detail"`
	Error    string `json:"error,omitempty"`
}

// WriteReportJSON outputs the report as indented JSON.
func (s *Shipcheck) WriteReportJSON(report *evaluation.Report) error {
	summary := report.Summary()
	out := reportJSON{
		RunID:     report.RunID(),
		CreatedAt: report.CreatedAt(),
		Checklist: report.ChecklistName(),
		Snapshot:  report.SnapshotSource(),
		OK:        report.OK(),
		Summary: summaryJSON{
			Total:   summary.Total,
			Passed:  summary.Passed,
			Failed:  summary.Failed,
			Errored: summary.Errored,
		},
	}

	for _, res := range report.Results() {
		step := stepResultJSON{
			ID:       res.StepID().String(),
			Position: res.Position(),
			Passed:   res.Passed(),
			Duration: res.Duration().String(),
		}
		for _, failure := range res.Failures() {
			got, present := failure.Got()
			entry := failureJSON{
				Key:      failure.Key(),
				Operator: failure.Operator().String(),
				Wanted:   failure.Wanted(),
				Got:      got,
				Present:  present,
				Detail:   failure.Detail(),
			}
			if failure.Err() != nil {
				entry.Error = failure.Err().Error()
			}
			step.Failures = append(step.Failures, entry)
		}
		out.Steps = append(out.Steps, step)
	}

	enc := json.NewEncoder(s.out)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// PrintSteps outputs the checklist's steps as a table.
func (s *Shipcheck) PrintSteps(list *checklist.Checklist) {
	s.printf("Checklist: %s\n", list.Name())
	if list.Description() != "" {
		s.printf("%s\n", list.Description())
	}
	s.printf("\n")

	if list.IsEmpty() {
		s.printf("No steps defined.\n")
		return
	}

	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "POS\tID\tPRECONDITIONS\tDESCRIPTION")
	for _, step := range list.Steps() {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%d\t%s\n",
			step.Position(), step.ID(), len(step.Requires()), step.Description())
	}
	_ = w.Flush()
}

// PrintSnapshot outputs snapshot facts grouped by key prefix.
func (s *Shipcheck) PrintSnapshot(snap snapshot.Snapshot) {
	s.printf("Snapshot: %s\n", snap.Source())

	if snap.IsEmpty() {
		s.printf("\nNo facts captured.\n")
		return
	}

	groups := make(map[string][]string)
	var order []string
	for _, key := range snap.Keys() {
		group := factGroup(key)
		if _, seen := groups[group]; !seen {
			order = append(order, group)
		}
		groups[group] = append(groups[group], key)
	}

	title := cases.Title(language.English)
	for _, group := range order {
		s.printf("\n%s\n", title.String(group))
		for _, key := range groups[group] {
			value, _ := snap.Lookup(key)
			s.printf("  %s: %s\n", key, value)
		}
	}
}

// factGroup buckets a fact key by its first dotted segment. Keys
// without a prefix are project-level probes.
func factGroup(key string) string {
	if prefix, _, found := strings.Cut(key, "."); found {
		return prefix
	}
	return "project"
}

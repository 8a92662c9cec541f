package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/shipcheck/internal/domain/checklist"
	"github.com/felixgeelhaar/shipcheck/internal/domain/evaluation"
	"github.com/felixgeelhaar/shipcheck/internal/tui/ui"
)

// reviewRow pairs a step result with the step it came from.
type reviewRow struct {
	result evaluation.StepResult
	step   checklist.Step
	found  bool
}

// reportReviewModel is the Bubble Tea model for browsing a readiness
// report. It is read-only: the review never re-evaluates or mutates
// anything, it just lets the operator walk the failures.
type reportReviewModel struct {
	report       *evaluation.Report
	rows         []reviewRow
	cursor       int
	failuresOnly bool
	styles       ui.Styles
	keys         ui.KeyMap
	width        int
	height       int
}

// newReportReviewModel creates a new report review model.
func newReportReviewModel(list *checklist.Checklist, report *evaluation.Report) reportReviewModel {
	results := report.Results()
	rows := make([]reviewRow, 0, len(results))
	for _, res := range results {
		step, found := list.Get(res.StepID())
		rows = append(rows, reviewRow{result: res, step: step, found: found})
	}

	return reportReviewModel{
		report: report,
		rows:   rows,
		styles: ui.DefaultStyles(),
		keys:   ui.DefaultKeyMap(),
		width:  ui.DefaultWidth,
		height: ui.DefaultHeight,
	}
}

// Cursor returns the current cursor position (for testing).
func (m reportReviewModel) Cursor() int {
	return m.cursor
}

// visible returns the rows currently shown.
func (m reportReviewModel) visible() []reviewRow {
	if !m.failuresOnly {
		return m.rows
	}
	var failed []reviewRow
	for _, row := range m.rows {
		if !row.result.Passed() {
			failed = append(failed, row)
		}
	}
	return failed
}

// Init initializes the model.
func (m reportReviewModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages.
func (m reportReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.styles = m.styles.WithWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.visible())-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Home):
			m.cursor = 0
			return m, nil

		case key.Matches(msg, m.keys.End):
			if n := len(m.visible()); n > 0 {
				m.cursor = n - 1
			}
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			m.failuresOnly = !m.failuresOnly
			if n := len(m.visible()); m.cursor >= n && n > 0 {
				m.cursor = n - 1
			}
			if len(m.visible()) == 0 {
				m.cursor = 0
			}
			return m, nil
		}
	}

	return m, nil
}

// View renders the model.
func (m reportReviewModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Readiness Review"))
	b.WriteString("\n")

	summary := m.report.Summary()
	verdict := m.styles.Pass.Render("READY")
	if !m.report.OK() {
		verdict = m.styles.Fail.Render("NOT READY")
	}
	b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("%s · %s · %d passed, %d failed",
		m.report.ChecklistName(), m.report.SnapshotSource(), summary.Passed, summary.Failed)))
	b.WriteString("  ")
	b.WriteString(verdict)
	b.WriteString("\n\n")

	rows := m.visible()
	if len(rows) == 0 {
		if m.failuresOnly {
			b.WriteString(m.styles.Help.Render("No failing steps. Press f to show all."))
		} else {
			b.WriteString(m.styles.Help.Render("Checklist has no steps."))
		}
		b.WriteString("\n\n")
		b.WriteString(m.renderHelp())
		return b.String()
	}

	if m.width > ui.WideLayoutMinWidth {
		leftWidth := m.width * 2 / 5
		rightWidth := m.width - leftWidth - 3

		left := m.renderList(rows, leftWidth)
		right := m.renderDetail(rows[m.clampedCursor(rows)], rightWidth)

		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", right))
	} else {
		b.WriteString(m.renderList(rows, m.width))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

// clampedCursor keeps the cursor inside the visible rows.
func (m reportReviewModel) clampedCursor(rows []reviewRow) int {
	if m.cursor >= len(rows) {
		return len(rows) - 1
	}
	return m.cursor
}

// renderList renders the step list pane.
func (m reportReviewModel) renderList(rows []reviewRow, width int) string {
	cursor := m.clampedCursor(rows)

	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		prefix := "  "
		if i == cursor {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s %d. %s", prefix, statusGlyph(row.result), row.result.Position(), row.result.StepID())

		// Truncate if too long
		if len(line) > width-2 && width > 5 {
			line = line[:width-5] + "..."
		}

		// Highlight selected line
		if i == cursor {
			line = m.styles.ListItemActive.Render(line)
		} else {
			line = m.styles.ListItem.Render(line)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// renderDetail renders the detail pane for the selected step.
func (m reportReviewModel) renderDetail(row reviewRow, width int) string {
	var b strings.Builder

	b.WriteString(m.styles.PanelTitle.Render(row.result.StepID().String()))
	b.WriteString("\n")

	if row.found && row.step.Description() != "" {
		b.WriteString(row.step.Description())
		b.WriteString("\n")
	}

	if row.result.Passed() {
		b.WriteString("\n")
		b.WriteString(m.styles.Pass.Render("All preconditions hold."))
	} else {
		b.WriteString("\n")
		b.WriteString(m.styles.Fail.Render("Failing preconditions:"))
		b.WriteString("\n")
		for _, failure := range row.result.Failures() {
			b.WriteString(fmt.Sprintf("  %s: %s\n", failure.Key(), failure.Detail()))
		}

		if row.found && row.step.Action() != "" {
			b.WriteString("\n")
			b.WriteString(m.styles.Warn.Render("Suggested action:"))
			b.WriteString("\n  ")
			b.WriteString(row.step.Action())
			b.WriteString("\n")
		}
	}

	return m.styles.Panel.Width(width).Render(b.String())
}

// statusGlyph returns a visual indicator for a step result.
func statusGlyph(res evaluation.StepResult) string {
	switch {
	case res.Passed():
		return "✓"
	case res.Err() != nil:
		return "!"
	default:
		return "✗"
	}
}

// renderHelp renders the footer key help.
func (m reportReviewModel) renderHelp() string {
	parts := make([]string, 0, 4)
	for _, binding := range m.keys.ShortHelp() {
		parts = append(parts,
			m.styles.HelpKey.Render(binding.Help().Key)+" "+m.styles.Help.Render(binding.Help().Desc))
	}
	return strings.Join(parts, m.styles.Help.Render(" • "))
}

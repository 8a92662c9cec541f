package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/shipcheck/internal/domain/checklist"
)

const deployChecklist = `
version: 1
name: django-deploy
description: Release checklist for the Django site.
steps:
  - id: deps:freeze
    description: Freeze dependencies into requirements.txt
    action: pip freeze > requirements.txt
    requires:
      - key: has_requirements_file
        op: equals
        value: "true"
  - id: settings:allowed-hosts
    description: Set ALLOWED_HOSTS for the production domain
    requires:
      - key: env.ALLOWED_HOSTS
        op: exists
  - id: db:migrate
    description: Apply database migrations on the server
    action: python manage.py migrate
    requires:
      - key: server.migrations_applied
        op: equals
        value: "true"
`

const readySnapshot = `
has_requirements_file: "true"
env:
  ALLOWED_HOSTS: www.example.com
server:
  migrations_applied: "true"
`

// TestCheckFlow_ReadyDeployment tests the happy path from files on disk
// to a passing report.
func TestCheckFlow_ReadyDeployment(t *testing.T) {
	t.Parallel()

	h := NewHarness(t)
	checklistPath := h.CreateChecklist(deployChecklist)
	snapshotPath := h.CreateSnapshot("host.yaml", readySnapshot)

	list, report, err := h.Check(checklistPath, snapshotPath, nil)
	require.NoError(t, err)
	require.NotNil(t, list)
	require.NotNil(t, report)

	assert.True(t, report.OK())
	assert.Equal(t, "django-deploy", report.ChecklistName())
	assert.Equal(t, 3, report.Len())

	summary := report.Summary()
	assert.Equal(t, 3, summary.Passed)
	assert.Equal(t, 0, summary.Failed)

	h.Shipcheck().PrintReport(list, report)
	assert.True(t, h.OutputContains("READY: all 3 steps passed."))
}

// TestCheckFlow_FailingStep tests that a wrong fact fails its step
// without stopping the run.
func TestCheckFlow_FailingStep(t *testing.T) {
	t.Parallel()

	h := NewHarness(t)
	checklistPath := h.CreateChecklist(deployChecklist)
	snapshotPath := h.CreateSnapshot("host.yaml", `
has_requirements_file: "true"
env:
  ALLOWED_HOSTS: www.example.com
server:
  migrations_applied: "false"
`)

	list, report, err := h.Check(checklistPath, snapshotPath, nil)
	require.NoError(t, err)

	assert.False(t, report.OK())
	assert.Equal(t, 3, report.Len())

	// Results stay in checklist order regardless of outcomes.
	results := report.Results()
	assert.Equal(t, "deps:freeze", results[0].StepID().String())
	assert.Equal(t, "db:migrate", results[2].StepID().String())
	assert.True(t, results[0].Passed())
	assert.False(t, results[2].Passed())

	res, ok := report.Result(checklist.MustNewStepID("db:migrate"))
	require.True(t, ok)
	require.Len(t, res.Failures(), 1)
	assert.Equal(t, "server.migrations_applied", res.Failures()[0].Key())

	h.Shipcheck().PrintReport(list, report)
	assert.True(t, h.OutputContains("NOT READY: 1 of 3 steps failed."))
	assert.True(t, h.OutputContains("server.migrations_applied"))
}

// TestCheckFlow_Overrides tests that --set style overrides are layered
// over the snapshot.
func TestCheckFlow_Overrides(t *testing.T) {
	t.Parallel()

	h := NewHarness(t)
	checklistPath := h.CreateChecklist(deployChecklist)
	snapshotPath := h.CreateSnapshot("host.yaml", `
has_requirements_file: "true"
env:
  ALLOWED_HOSTS: www.example.com
server:
  migrations_applied: "false"
`)

	_, report, err := h.Check(checklistPath, snapshotPath, map[string]string{
		"server.migrations_applied": "true",
	})
	require.NoError(t, err)

	assert.True(t, report.OK())
}

// TestCheckFlow_JSONReport tests the machine-readable report output.
func TestCheckFlow_JSONReport(t *testing.T) {
	t.Parallel()

	h := NewHarness(t)
	checklistPath := h.CreateChecklist(deployChecklist)
	snapshotPath := h.CreateSnapshot("host.yaml", readySnapshot)

	_, report, err := h.Check(checklistPath, snapshotPath, nil)
	require.NoError(t, err)
	require.NoError(t, h.Shipcheck().WriteReportJSON(report))

	var decoded struct {
		RunID     string `json:"run_id"`
		Checklist string `json:"checklist"`
		OK        bool   `json:"ok"`
		Summary   struct {
			Total  int `json:"total"`
			Passed int `json:"passed"`
		} `json:"summary"`
		Steps []struct {
			ID       string `json:"id"`
			Position int    `json:"position"`
			Passed   bool   `json:"passed"`
		} `json:"steps"`
	}
	require.NoError(t, json.Unmarshal(h.Output.Bytes(), &decoded))

	assert.NotEmpty(t, decoded.RunID)
	assert.Equal(t, "django-deploy", decoded.Checklist)
	assert.True(t, decoded.OK)
	assert.Equal(t, 3, decoded.Summary.Total)
	assert.Equal(t, 3, decoded.Summary.Passed)
	require.Len(t, decoded.Steps, 3)
	assert.Equal(t, "deps:freeze", decoded.Steps[0].ID)
	assert.Equal(t, 1, decoded.Steps[0].Position)
}

// TestCheckFlow_ParseFailuresAbort tests that broken inputs produce no
// report at all.
func TestCheckFlow_ParseFailuresAbort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		wantCode string
	}{
		{
			name:     "malformed yaml",
			content:  "steps: [unclosed",
			wantCode: checklist.ErrCodeChecklistParse,
		},
		{
			name: "missing description",
			content: `
name: broken
steps:
  - id: deps:freeze
`,
			wantCode: checklist.ErrCodeStepMissingField,
		},
		{
			name: "invalid step id",
			content: `
name: broken
steps:
  - id: "deps freeze"
    description: Spaces are not allowed in IDs
`,
			wantCode: checklist.ErrCodeStepIDInvalid,
		},
		{
			name: "duplicate step id",
			content: `
name: broken
steps:
  - id: db:migrate
    description: First occurrence
  - id: db:migrate
    description: Second occurrence
`,
			wantCode: checklist.ErrCodeStepDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewHarness(t)
			checklistPath := h.CreateChecklist(tt.content)
			snapshotPath := h.CreateSnapshot("host.yaml", readySnapshot)

			_, report, err := h.Check(checklistPath, snapshotPath, nil)
			require.Error(t, err)
			assert.Nil(t, report)
			assert.True(t, checklist.IsParseError(err, tt.wantCode),
				"want code %s, got %v", tt.wantCode, err)
		})
	}
}

// TestCheckFlow_ChecklistNotFound tests the missing-file error.
func TestCheckFlow_ChecklistNotFound(t *testing.T) {
	t.Parallel()

	h := NewHarness(t)
	snapshotPath := h.CreateSnapshot("host.yaml", readySnapshot)

	_, report, err := h.Check("does-not-exist.yaml", snapshotPath, nil)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, checklist.IsParseError(err, checklist.ErrCodeChecklistNotFound))
}

// TestCheckFlow_SnapshotNotFound tests the missing-snapshot error.
func TestCheckFlow_SnapshotNotFound(t *testing.T) {
	t.Parallel()

	h := NewHarness(t)
	checklistPath := h.CreateChecklist(deployChecklist)

	_, report, err := h.Check(checklistPath, "does-not-exist.yaml", nil)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, checklist.IsParseError(err, checklist.ErrCodeSnapshotNotFound))
}

// TestCheckFlow_UnknownOperatorContinues tests that an operator the
// evaluator does not know fails its step but the run carries on.
func TestCheckFlow_UnknownOperatorContinues(t *testing.T) {
	t.Parallel()

	h := NewHarness(t)
	checklistPath := h.CreateChecklist(`
name: django-deploy
steps:
  - id: settings:allowed-hosts
    description: Match the host pattern
    requires:
      - key: env.ALLOWED_HOSTS
        op: matches
        value: "*.example.com"
  - id: db:migrate
    description: Apply database migrations
    requires:
      - key: server.migrations_applied
        op: equals
        value: "true"
`)
	snapshotPath := h.CreateSnapshot("host.yaml", readySnapshot)

	_, report, err := h.Check(checklistPath, snapshotPath, nil)
	require.NoError(t, err)

	assert.False(t, report.OK())
	assert.Equal(t, 2, report.Len())

	results := report.Results()
	assert.False(t, results[0].Passed())
	assert.Error(t, results[0].Err())
	assert.True(t, results[1].Passed())

	summary := report.Summary()
	assert.Equal(t, 1, summary.Errored)
	assert.Equal(t, 1, summary.Passed)
}

// TestCheckFlow_MinToolVersionGate tests the checklist's tool version
// requirement.
func TestCheckFlow_MinToolVersionGate(t *testing.T) {
	t.Parallel()

	gated := `
name: django-deploy
min_tool_version: "1.2.0"
steps:
  - id: deps:freeze
    description: Freeze dependencies
`

	t.Run("older tool is rejected", func(t *testing.T) {
		t.Parallel()

		h := NewHarness(t).WithVersion("1.0.0")
		checklistPath := h.CreateChecklist(gated)
		snapshotPath := h.CreateSnapshot("host.yaml", readySnapshot)

		_, _, err := h.Check(checklistPath, snapshotPath, nil)
		require.Error(t, err)
		assert.True(t, checklist.IsParseError(err, checklist.ErrCodeToolVersion))
	})

	t.Run("newer tool passes", func(t *testing.T) {
		t.Parallel()

		h := NewHarness(t).WithVersion("1.3.0")
		checklistPath := h.CreateChecklist(gated)
		snapshotPath := h.CreateSnapshot("host.yaml", readySnapshot)

		_, report, err := h.Check(checklistPath, snapshotPath, nil)
		require.NoError(t, err)
		assert.True(t, report.OK())
	})

	t.Run("dev builds skip the gate", func(t *testing.T) {
		t.Parallel()

		h := NewHarness(t)
		checklistPath := h.CreateChecklist(gated)
		snapshotPath := h.CreateSnapshot("host.yaml", readySnapshot)

		_, report, err := h.Check(checklistPath, snapshotPath, nil)
		require.NoError(t, err)
		assert.True(t, report.OK())
	})
}

// TestCheckFlow_EmptyChecklist tests that a checklist without steps is
// vacuously ready.
func TestCheckFlow_EmptyChecklist(t *testing.T) {
	t.Parallel()

	h := NewHarness(t)
	checklistPath := h.CreateChecklist(`
name: django-deploy
steps: []
`)
	snapshotPath := h.CreateSnapshot("host.yaml", readySnapshot)

	list, report, err := h.Check(checklistPath, snapshotPath, nil)
	require.NoError(t, err)

	assert.True(t, report.OK())
	assert.Equal(t, 0, report.Len())

	h.Shipcheck().PrintReport(list, report)
	assert.True(t, h.OutputContains("READY: all 0 steps passed."))
}

// TestCheckFlow_SnapshotFormats tests that JSON, TOML, and INI
// snapshots all feed the same evaluation.
func TestCheckFlow_SnapshotFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "json",
			file: "host.json",
			content: `{
  "has_requirements_file": "true",
  "env": {"ALLOWED_HOSTS": "www.example.com"},
  "server": {"migrations_applied": true}
}`,
		},
		{
			name: "toml",
			file: "host.toml",
			content: `has_requirements_file = "true"

[env]
ALLOWED_HOSTS = "www.example.com"

[server]
migrations_applied = true
`,
		},
		{
			name: "ini",
			file: "host.ini",
			content: `has_requirements_file = true

[env]
ALLOWED_HOSTS = www.example.com

[server]
migrations_applied = true
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewHarness(t)
			checklistPath := h.CreateChecklist(deployChecklist)
			snapshotPath := h.CreateSnapshot(tt.file, tt.content)

			_, report, err := h.Check(checklistPath, snapshotPath, nil)
			require.NoError(t, err)
			assert.True(t, report.OK(), "snapshot format %s should be ready", tt.name)
		})
	}
}

package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateFlow_CleanChecklist tests that a well-formed checklist
// validates with no findings.
func TestValidateFlow_CleanChecklist(t *testing.T) {
	t.Parallel()

	h := NewHarness(t)
	checklistPath := h.CreateChecklist(deployChecklist)

	result := h.Validate(checklistPath, "")

	assert.True(t, result.Valid())
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	require.NotEmpty(t, result.Info)
	assert.Contains(t, result.Info[1], "django-deploy (3 steps)")
}

// TestValidateFlow_ParseFailureIsError tests that a broken document
// lands in Errors instead of aborting validation.
func TestValidateFlow_ParseFailureIsError(t *testing.T) {
	t.Parallel()

	h := NewHarness(t)
	checklistPath := h.CreateChecklist(`
name: broken
steps:
  - id: db:migrate
    description: First occurrence
  - id: db:migrate
    description: Second occurrence
`)

	result := h.Validate(checklistPath, "")

	assert.False(t, result.Valid())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "defined more than once")
}

// TestValidateFlow_MissingChecklist tests validating a path that does
// not exist.
func TestValidateFlow_MissingChecklist(t *testing.T) {
	t.Parallel()

	h := NewHarness(t)

	result := h.Validate("does-not-exist.yaml", "")

	assert.False(t, result.Valid())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "checklist file not found")
}

// TestValidateFlow_LintWarnings tests the lints that flag checklists
// which parse but would behave surprisingly.
func TestValidateFlow_LintWarnings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		content     string
		wantWarning string
	}{
		{
			name: "empty checklist",
			content: `
name: django-deploy
steps: []
`,
			wantWarning: "no steps",
		},
		{
			name: "unknown operator",
			content: `
name: django-deploy
steps:
  - id: settings:allowed-hosts
    description: Match the host pattern
    requires:
      - key: env.ALLOWED_HOSTS
        op: matches
        value: "*.example.com"
`,
			wantWarning: `unsupported operator "matches"`,
		},
		{
			name: "contradictory equals",
			content: `
name: django-deploy
steps:
  - id: settings:debug
    description: DEBUG must be off
    requires:
      - key: env.DEBUG
        op: equals
        value: "False"
      - key: env.DEBUG
        op: equals
        value: "True"
`,
			wantWarning: "can never pass",
		},
		{
			name: "exists and absent conflict",
			content: `
name: django-deploy
steps:
  - id: settings:secret-key
    description: SECRET_KEY handling
    requires:
      - key: env.SECRET_KEY
        op: exists
      - key: env.SECRET_KEY
        op: absent
`,
			wantWarning: "both exist and be absent",
		},
		{
			name: "at-least with a non-version",
			content: `
name: django-deploy
steps:
  - id: server:python-app
    description: Python runtime floor
    requires:
      - key: python.version
        op: at-least
        value: recent
`,
			wantWarning: "is not a version",
		},
		{
			name: "unparsable min_tool_version",
			content: `
name: django-deploy
min_tool_version: next
steps:
  - id: deps:freeze
    description: Freeze dependencies
`,
			wantWarning: "not a semantic version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewHarness(t)
			checklistPath := h.CreateChecklist(tt.content)

			result := h.Validate(checklistPath, "")

			assert.True(t, result.Valid(), "lints are warnings, not errors")
			require.NotEmpty(t, result.Warnings)
			assert.Contains(t, result.Warnings[0], tt.wantWarning)
		})
	}
}

// TestValidateFlow_StepWithoutPreconditions tests the informational
// finding for steps that always pass.
func TestValidateFlow_StepWithoutPreconditions(t *testing.T) {
	t.Parallel()

	h := NewHarness(t)
	checklistPath := h.CreateChecklist(`
name: django-deploy
steps:
  - id: docs:runbook
    description: Read the deployment runbook
`)

	result := h.Validate(checklistPath, "")

	assert.True(t, result.Valid())
	found := false
	for _, line := range result.Info {
		if line == "Step docs:runbook has no preconditions and always passes" {
			found = true
		}
	}
	assert.True(t, found, "info lines: %v", result.Info)
}

// TestValidateFlow_SnapshotCrossCheck tests warning about facts the
// snapshot does not carry. Existence probes are exempt.
func TestValidateFlow_SnapshotCrossCheck(t *testing.T) {
	t.Parallel()

	h := NewHarness(t)
	checklistPath := h.CreateChecklist(deployChecklist)
	snapshotPath := h.CreateSnapshot("host.yaml", `
has_requirements_file: "true"
`)

	result := h.Validate(checklistPath, snapshotPath)

	assert.True(t, result.Valid())
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Snapshot has no fact server.migrations_applied")
	for _, warning := range result.Warnings {
		assert.NotContains(t, warning, "env.ALLOWED_HOSTS")
	}
}

// TestValidateFlow_SnapshotMissing tests that a named but absent
// snapshot is a validation error.
func TestValidateFlow_SnapshotMissing(t *testing.T) {
	t.Parallel()

	h := NewHarness(t)
	checklistPath := h.CreateChecklist(deployChecklist)

	result := h.Validate(checklistPath, "does-not-exist.yaml")

	assert.False(t, result.Valid())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "snapshot file not found")
}

//go:build e2e
// +build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestE2E_Init_Scaffolds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	t.Parallel()

	h := NewHarness(t)

	output := h.Init()
	assert.Contains(t, output, "Checklist created")
	assert.Contains(t, output, "Next steps")

	h.AssertWorkFileExists("shipcheck.yaml")
	h.AssertWorkFileExists("host.example.yaml")

	content := h.ReadWorkFile("shipcheck.yaml")
	assert.Contains(t, content, "name: django-deploy")
	assert.Contains(t, content, "id: deps:freeze")
	assert.Contains(t, content, "id: static:collect")
}

func TestE2E_Init_ProjectAndDomain(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	t.Parallel()

	h := NewHarness(t)

	h.Init("--project", "mysite", "--domain", "mysite.example.com")

	content := h.ReadWorkFile("shipcheck.yaml")
	assert.Contains(t, content, "name: mysite-deploy")
	assert.Contains(t, content, "value: mysite.example.com")
}

func TestE2E_Init_AlreadyExists(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	t.Parallel()

	h := NewHarness(t)
	h.CreateWorkFile("shipcheck.yaml", "name: keep-me\nsteps: []\n")

	output := h.Init()
	assert.Contains(t, output, "already exists")

	content := h.ReadWorkFile("shipcheck.yaml")
	assert.Contains(t, content, "keep-me")
}

func TestE2E_Init_ForceOverwrites(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	t.Parallel()

	h := NewHarness(t)
	h.CreateWorkFile("shipcheck.yaml", "name: keep-me\nsteps: []\n")

	output := h.Init("--force")
	assert.Contains(t, output, "Checklist created")

	content := h.ReadWorkFile("shipcheck.yaml")
	assert.NotContains(t, content, "keep-me")
	assert.Contains(t, content, "django-deploy")
}

func TestE2E_InitValidateCheck_FullWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	t.Parallel()

	h := NewHarness(t)

	h.Init()

	output := h.Validate()
	assert.Contains(t, output, "✓ Checklist is valid")

	// The example snapshot records a fully prepared environment, so the
	// starter checklist passes against it.
	exitCode := h.Run("check", "-s", "host.example.yaml")
	assert.Equal(t, 0, exitCode, "output: %s\nstderr: %s", h.LastOutput, h.LastError)
	h.AssertOutputContains("READY: all 10 steps passed.")
}

func TestE2E_Version(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	t.Parallel()

	h := NewHarness(t)

	output := h.RunSuccess("version")
	assert.Contains(t, output, "shipcheck")
	assert.Contains(t, output, "commit:")
}

func TestE2E_Help(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	t.Parallel()

	h := NewHarness(t)

	output := h.RunSuccess("--help")
	assert.Contains(t, output, "check")
	assert.Contains(t, output, "validate")
	assert.Contains(t, output, "init")
	assert.Contains(t, output, "snapshot")
	assert.Contains(t, output, "steps")
}

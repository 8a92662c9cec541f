// Package integration provides test utilities for integration testing.
package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/shipcheck/internal/app"
	"github.com/felixgeelhaar/shipcheck/internal/domain/checklist"
	"github.com/felixgeelhaar/shipcheck/internal/domain/evaluation"
	"github.com/felixgeelhaar/shipcheck/internal/domain/snapshot"
)

// TestHarness provides utilities for integration testing.
type TestHarness struct {
	T          *testing.T
	TempDir    string
	ProjectDir string
	Output     *bytes.Buffer

	shipcheck *app.Shipcheck
}

// NewHarness creates a new test harness with an empty project directory.
func NewHarness(t *testing.T) *TestHarness {
	t.Helper()

	tempDir := t.TempDir()
	projectDir := filepath.Join(tempDir, "project")
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		t.Fatalf("failed to create project directory: %v", err)
	}

	output := &bytes.Buffer{}

	return &TestHarness{
		T:          t,
		TempDir:    tempDir,
		ProjectDir: projectDir,
		Output:     output,
		shipcheck:  app.New(output),
	}
}

// Shipcheck returns the application instance under test.
func (h *TestHarness) Shipcheck() *app.Shipcheck {
	return h.shipcheck
}

// WithVersion sets the tool version the application reports.
func (h *TestHarness) WithVersion(version string) *TestHarness {
	h.shipcheck = h.shipcheck.WithVersion(version)
	return h
}

// CreateChecklist writes a checklist document into the temp directory.
func (h *TestHarness) CreateChecklist(content string) string {
	h.T.Helper()

	path := filepath.Join(h.TempDir, "shipcheck.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		h.T.Fatalf("failed to write checklist: %v", err)
	}
	return path
}

// CreateSnapshot writes a snapshot file into the temp directory.
func (h *TestHarness) CreateSnapshot(name, content string) string {
	h.T.Helper()

	path := filepath.Join(h.TempDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		h.T.Fatalf("failed to write snapshot: %v", err)
	}
	return path
}

// CreateProjectFile writes a file into the project directory.
func (h *TestHarness) CreateProjectFile(relativePath, content string) string {
	h.T.Helper()

	path := filepath.Join(h.ProjectDir, relativePath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		h.T.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		h.T.Fatalf("failed to write file: %v", err)
	}
	return path
}

// Check evaluates a checklist against a snapshot file.
func (h *TestHarness) Check(checklistPath, snapshotPath string, overrides map[string]string) (*checklist.Checklist, *evaluation.Report, error) {
	h.T.Helper()

	return h.shipcheck.Check(context.Background(), app.CheckOptions{
		ChecklistPath: checklistPath,
		SnapshotPath:  snapshotPath,
		Overrides:     overrides,
	})
}

// CheckProject evaluates a checklist against facts captured from the
// project directory.
func (h *TestHarness) CheckProject(checklistPath string, overrides map[string]string) (*checklist.Checklist, *evaluation.Report, error) {
	h.T.Helper()

	return h.shipcheck.Check(context.Background(), app.CheckOptions{
		ChecklistPath: checklistPath,
		ProjectDir:    h.ProjectDir,
		Overrides:     overrides,
	})
}

// Validate lints a checklist, optionally cross-checking it against a
// snapshot file.
func (h *TestHarness) Validate(checklistPath, snapshotPath string) *app.ValidationResult {
	h.T.Helper()

	result, err := h.shipcheck.Validate(context.Background(), app.ValidateOptions{
		ChecklistPath: checklistPath,
		SnapshotPath:  snapshotPath,
	})
	if err != nil {
		h.T.Fatalf("validate failed: %v", err)
	}
	return result
}

// Capture builds a snapshot from the project directory.
func (h *TestHarness) Capture() (snapshot.Snapshot, error) {
	h.T.Helper()

	return h.shipcheck.Capture(context.Background(), h.ProjectDir)
}

// OutputContains checks if the output buffer contains a string.
func (h *TestHarness) OutputContains(s string) bool {
	return bytes.Contains(h.Output.Bytes(), []byte(s))
}

// Package e2e provides end-to-end testing utilities for the shipcheck CLI.
package e2e

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Harness provides utilities for end-to-end CLI testing.
type Harness struct {
	T            *testing.T
	BinaryPath   string
	TempDir      string
	WorkDir      string
	ProjectDir   string
	EnvVars      map[string]string
	Timeout      time.Duration
	LastOutput   string
	LastError    string
	LastExitCode int
}

// NewHarness creates a new end-to-end test harness.
// It builds the shipcheck binary if needed.
func NewHarness(t *testing.T) *Harness {
	t.Helper()

	tempDir := t.TempDir()
	workDir := filepath.Join(tempDir, "work")
	projectDir := filepath.Join(tempDir, "project")

	for _, dir := range []string{workDir, projectDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}

	binaryPath := getBinary(t)

	return &Harness{
		T:          t,
		BinaryPath: binaryPath,
		TempDir:    tempDir,
		WorkDir:    workDir,
		ProjectDir: projectDir,
		EnvVars:    make(map[string]string),
		Timeout:    30 * time.Second,
	}
}

// getBinary returns the path to the shipcheck binary.
// It builds the binary unless SHIPCHECK_BINARY points at one.
func getBinary(t *testing.T) string {
	t.Helper()

	if path := os.Getenv("SHIPCHECK_BINARY"); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	binaryPath := filepath.Join(t.TempDir(), "shipcheck-test")

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/shipcheck")
	cmd.Dir = findProjectRoot(t)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to build shipcheck binary: %v\n%s", err, stderr.String())
	}

	return binaryPath
}

// findProjectRoot finds the repository root directory.
func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find project root (no go.mod found)")
		}
		dir = parent
	}
}

// WithEnv sets an environment variable for commands.
func (h *Harness) WithEnv(key, value string) *Harness {
	h.EnvVars[key] = value
	return h
}

// WithTimeout sets the timeout for commands.
func (h *Harness) WithTimeout(d time.Duration) *Harness {
	h.Timeout = d
	return h
}

// Run executes a shipcheck command in the work directory and returns
// the exit code.
func (h *Harness) Run(args ...string) int {
	h.T.Helper()

	cmd := exec.Command(h.BinaryPath, args...)
	cmd.Dir = h.WorkDir

	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, fmt.Sprintf("HOME=%s", h.TempDir))
	for k, v := range h.EnvVars {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	done := make(chan error, 1)
	go func() {
		done <- cmd.Run()
	}()

	select {
	case err := <-done:
		h.LastOutput = stdout.String()
		h.LastError = stderr.String()
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				h.LastExitCode = exitErr.ExitCode()
			} else {
				h.LastExitCode = -1
			}
		} else {
			h.LastExitCode = 0
		}
	case <-time.After(h.Timeout):
		_ = cmd.Process.Kill()
		h.T.Fatalf("command timed out after %v: %v", h.Timeout, args)
	}

	return h.LastExitCode
}

// RunSuccess executes a command and expects it to succeed.
func (h *Harness) RunSuccess(args ...string) string {
	h.T.Helper()

	exitCode := h.Run(args...)
	if exitCode != 0 {
		h.T.Fatalf("command failed with exit code %d: %v\nOutput: %s\nStderr: %s",
			exitCode, args, h.LastOutput, h.LastError)
	}

	return h.LastOutput
}

// RunFail executes a command and expects it to fail.
func (h *Harness) RunFail(args ...string) string {
	h.T.Helper()

	exitCode := h.Run(args...)
	if exitCode == 0 {
		h.T.Fatalf("command succeeded but expected failure: %v\nOutput: %s",
			args, h.LastOutput)
	}

	return h.LastOutput + h.LastError
}

// Init runs shipcheck init into the work directory.
func (h *Harness) Init(extraArgs ...string) string {
	h.T.Helper()

	args := make([]string, 0, 3+len(extraArgs))
	args = append(args, "init", "--dir", h.WorkDir)
	args = append(args, extraArgs...)

	return h.RunSuccess(args...)
}

// Validate runs shipcheck validate against the work directory checklist.
func (h *Harness) Validate(extraArgs ...string) string {
	h.T.Helper()

	args := make([]string, 0, 3+len(extraArgs))
	args = append(args, "validate", "--checklist", filepath.Join(h.WorkDir, "shipcheck.yaml"))
	args = append(args, extraArgs...)

	return h.RunSuccess(args...)
}

// CreateWorkFile creates a file in the work directory.
func (h *Harness) CreateWorkFile(relativePath, content string) string {
	h.T.Helper()

	path := filepath.Join(h.WorkDir, relativePath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		h.T.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		h.T.Fatalf("failed to write file %s: %v", path, err)
	}

	return path
}

// CreateProjectFile creates a file in the project directory.
func (h *Harness) CreateProjectFile(relativePath, content string) string {
	h.T.Helper()

	path := filepath.Join(h.ProjectDir, relativePath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		h.T.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		h.T.Fatalf("failed to write file %s: %v", path, err)
	}

	return path
}

// WorkFileExists checks if a file exists in the work directory.
func (h *Harness) WorkFileExists(relativePath string) bool {
	_, err := os.Stat(filepath.Join(h.WorkDir, relativePath))
	return err == nil
}

// ReadWorkFile reads a file from the work directory.
func (h *Harness) ReadWorkFile(relativePath string) string {
	h.T.Helper()

	content, err := os.ReadFile(filepath.Join(h.WorkDir, relativePath))
	if err != nil {
		h.T.Fatalf("failed to read file %s: %v", relativePath, err)
	}
	return string(content)
}

// OutputContains checks if the last output contains a string.
func (h *Harness) OutputContains(s string) bool {
	return strings.Contains(h.LastOutput, s) || strings.Contains(h.LastError, s)
}

// AssertOutputContains asserts the last output contains a string.
func (h *Harness) AssertOutputContains(s string) {
	h.T.Helper()

	if !h.OutputContains(s) {
		h.T.Errorf("expected output to contain %q, got:\n%s", s, h.LastOutput+h.LastError)
	}
}

// AssertWorkFileExists asserts a file exists in the work directory.
func (h *Harness) AssertWorkFileExists(relativePath string) {
	h.T.Helper()

	if !h.WorkFileExists(relativePath) {
		h.T.Errorf("expected file to exist: %s", relativePath)
	}
}

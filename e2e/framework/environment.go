//go:build e2e

// Package framework provides the E2E test infrastructure for shipcheck.
package framework

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

// Environment represents an isolated test environment for E2E tests.
type Environment struct {
	t           *testing.T
	rootDir     string
	workDir     string
	projectDir  string
	binaryPath  string
	homeDir     string
	cleanupOnce sync.Once
}

var (
	buildOnce   sync.Once
	binaryPath  string
	buildErr    error
	projectRoot string
)

// findProjectRoot locates the repository root directory.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// buildBinary builds the shipcheck binary once per test run.
func buildBinary(t *testing.T) (string, error) {
	buildOnce.Do(func() {
		projectRoot, buildErr = findProjectRoot()
		if buildErr != nil {
			return
		}

		tmpDir := os.TempDir()
		binaryPath = filepath.Join(tmpDir, "shipcheck-e2e-test")

		cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/shipcheck")
		cmd.Dir = projectRoot

		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			buildErr = err
			t.Logf("Build stderr: %s", stderr.String())
			return
		}
	})

	return binaryPath, buildErr
}

// NewEnvironment creates a new isolated test environment.
func NewEnvironment(t *testing.T) *Environment {
	t.Helper()

	binary, err := buildBinary(t)
	if err != nil {
		t.Fatalf("Failed to build binary: %v", err)
	}

	rootDir := t.TempDir()
	workDir := filepath.Join(rootDir, "work")
	projectDir := filepath.Join(rootDir, "project")
	homeDir := filepath.Join(rootDir, "home")

	for _, dir := range []string{workDir, projectDir, homeDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	env := &Environment{
		t:          t,
		rootDir:    rootDir,
		workDir:    workDir,
		projectDir: projectDir,
		binaryPath: binary,
		homeDir:    homeDir,
	}

	t.Cleanup(func() {
		env.cleanup()
	})

	return env
}

// cleanup removes temporary files.
func (e *Environment) cleanup() {
	e.cleanupOnce.Do(func() {
		// TempDir is automatically cleaned up by testing package
	})
}

// WorkDir returns the directory commands run in.
func (e *Environment) WorkDir() string {
	return e.workDir
}

// ProjectDir returns the simulated project directory.
func (e *Environment) ProjectDir() string {
	return e.projectDir
}

// HomeDir returns the path to the simulated home directory.
func (e *Environment) HomeDir() string {
	return e.homeDir
}

// RootDir returns the path to the test root directory.
func (e *Environment) RootDir() string {
	return e.rootDir
}

// BinaryPath returns the path to the built binary.
func (e *Environment) BinaryPath() string {
	return e.binaryPath
}

// WriteFile writes content to a file in the test environment.
func (e *Environment) WriteFile(path, content string) {
	e.t.Helper()

	fullPath := filepath.Join(e.rootDir, path)
	dir := filepath.Dir(fullPath)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		e.t.Fatalf("Failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		e.t.Fatalf("Failed to write file %s: %v", fullPath, err)
	}
}

// WriteChecklist writes a shipcheck.yaml checklist into the work directory.
func (e *Environment) WriteChecklist(content string) string {
	e.t.Helper()

	checklistPath := filepath.Join(e.workDir, "shipcheck.yaml")
	if err := os.WriteFile(checklistPath, []byte(content), 0o644); err != nil {
		e.t.Fatalf("Failed to write checklist: %v", err)
	}
	return checklistPath
}

// WriteSnapshot writes a snapshot file into the work directory.
func (e *Environment) WriteSnapshot(name, content string) string {
	e.t.Helper()

	snapshotPath := filepath.Join(e.workDir, name)
	if err := os.WriteFile(snapshotPath, []byte(content), 0o644); err != nil {
		e.t.Fatalf("Failed to write snapshot: %v", err)
	}
	return snapshotPath
}

// WriteProjectFile writes a file into the project directory.
func (e *Environment) WriteProjectFile(path, content string) string {
	e.t.Helper()

	fullPath := filepath.Join(e.projectDir, path)
	dir := filepath.Dir(fullPath)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		e.t.Fatalf("Failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		e.t.Fatalf("Failed to write file %s: %v", fullPath, err)
	}
	return fullPath
}

// FileExists checks if a file exists in the test environment.
func (e *Environment) FileExists(path string) bool {
	fullPath := filepath.Join(e.rootDir, path)
	_, err := os.Stat(fullPath)
	return err == nil
}

// ReadFile reads a file from the test environment.
func (e *Environment) ReadFile(path string) string {
	e.t.Helper()

	fullPath := filepath.Join(e.rootDir, path)
	content, err := os.ReadFile(fullPath)
	if err != nil {
		e.t.Fatalf("Failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}

//go:build e2e

package framework

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// Result represents the result of running a command.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

// Success returns true if the command exited with code 0.
func (r *Result) Success() bool {
	return r.ExitCode == 0 && r.Err == nil
}

// Contains checks if stdout contains the given substring.
func (r *Result) Contains(s string) bool {
	return strings.Contains(r.Stdout, s)
}

// StderrContains checks if stderr contains the given substring.
func (r *Result) StderrContains(s string) bool {
	return strings.Contains(r.Stderr, s)
}

// Runner executes shipcheck commands in a test environment.
type Runner struct {
	t   *testing.T
	env *Environment
}

// NewRunner creates a new command runner.
func NewRunner(t *testing.T, env *Environment) *Runner {
	return &Runner{
		t:   t,
		env: env,
	}
}

// Run executes the shipcheck command with the given arguments.
func (r *Runner) Run(args ...string) *Result {
	r.t.Helper()

	cmd := exec.Command(r.env.BinaryPath(), args...)
	cmd.Dir = r.env.WorkDir()

	// Set environment variables
	cmd.Env = append(cmd.Env,
		"HOME="+r.env.HomeDir(),
		"PATH="+os.Getenv("PATH"),
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
		Err:    err,
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		result.ExitCode = exitErr.ExitCode()
		result.Err = nil // Exit code is not an error
	} else if err != nil {
		result.ExitCode = -1
	}

	return result
}

// Version runs the version command.
func (r *Runner) Version() *Result {
	return r.Run("version")
}

// Check runs the check command against the work directory checklist.
func (r *Runner) Check(extraArgs ...string) *Result {
	checklistPath := filepath.Join(r.env.WorkDir(), "shipcheck.yaml")
	args := append([]string{"check", "--checklist", checklistPath}, extraArgs...)
	return r.Run(args...)
}

// CheckWithSnapshot runs check against a named snapshot file.
func (r *Runner) CheckWithSnapshot(snapshot string, extraArgs ...string) *Result {
	args := append([]string{"--snapshot", snapshot}, extraArgs...)
	return r.Check(args...)
}

// Validate runs the validate command against the work directory checklist.
func (r *Runner) Validate(extraArgs ...string) *Result {
	checklistPath := filepath.Join(r.env.WorkDir(), "shipcheck.yaml")
	args := append([]string{"validate", "--checklist", checklistPath}, extraArgs...)
	return r.Run(args...)
}

// Steps runs the steps command against the work directory checklist.
func (r *Runner) Steps() *Result {
	checklistPath := filepath.Join(r.env.WorkDir(), "shipcheck.yaml")
	return r.Run("steps", "--checklist", checklistPath)
}

// Init runs the init command into the work directory.
func (r *Runner) Init(extraArgs ...string) *Result {
	args := append([]string{"init", "--dir", r.env.WorkDir()}, extraArgs...)
	return r.Run(args...)
}

// SnapshotCapture runs snapshot capture against the project directory.
func (r *Runner) SnapshotCapture(extraArgs ...string) *Result {
	args := append([]string{"snapshot", "capture", "--project", r.env.ProjectDir()}, extraArgs...)
	return r.Run(args...)
}

// Scenario provides a fluent interface for writing BDD-style tests.
type Scenario struct {
	t      *testing.T
	env    *Environment
	runner *Runner
	result *Result
}

// NewScenario creates a new test scenario.
func NewScenario(t *testing.T) *Scenario {
	env := NewEnvironment(t)
	return &Scenario{
		t:      t,
		env:    env,
		runner: NewRunner(t, env),
	}
}

// Given sets up the test preconditions.
func (s *Scenario) Given(description string, setup func(*Environment)) *Scenario {
	s.t.Helper()
	s.t.Logf("Given %s", description)
	setup(s.env)
	return s
}

// When executes the action under test.
func (s *Scenario) When(description string, action func(*Runner) *Result) *Scenario {
	s.t.Helper()
	s.t.Logf("When %s", description)
	s.result = action(s.runner)
	return s
}

// Then asserts the expected outcome.
func (s *Scenario) Then(description string, assertion func(*testing.T, *Result)) *Scenario {
	s.t.Helper()
	s.t.Logf("Then %s", description)
	assertion(s.t, s.result)
	return s
}

// And is an alias for Then for chaining assertions.
func (s *Scenario) And(description string, assertion func(*testing.T, *Result)) *Scenario {
	return s.Then(description, assertion)
}

// Environment returns the test environment for direct access.
func (s *Scenario) Environment() *Environment {
	return s.env
}

// Result returns the last command result.
func (s *Scenario) Result() *Result {
	return s.result
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCaptureCmd_FlagDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		flag     string
		expected string
	}{
		{"project default", "project", "."},
		{"output default", "output", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := snapshotCaptureCmd.Flags().Lookup(tt.flag)
			assert.NotNil(t, f)
			assert.Equal(t, tt.expected, f.DefValue)
		})
	}
}

func TestSnapshotCmd_HasSubcommands(t *testing.T) {
	t.Parallel()

	var captureFound, showFound bool
	for _, cmd := range snapshotCmd.Commands() {
		switch cmd.Use {
		case "capture":
			captureFound = true
		case "show":
			showFound = true
		}
	}
	assert.True(t, captureFound, "snapshot should have a capture subcommand")
	assert.True(t, showFound, "snapshot should have a show subcommand")
}

func TestRunSnapshotCapture_Stdout(t *testing.T) {
	fake := newFakeShipcheckClient(t, readyChecklistYAML, map[string]string{
		"has_manage_py": "true",
		"host.os":       "linux",
	})
	restore := overrideNewShipcheck(fake)
	defer restore()

	reset := setSnapshotCaptureFlags("myproject", "")
	defer reset()

	err := runSnapshotCapture(&cobra.Command{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "myproject", fake.capturedDir)
}

func TestRunSnapshotCapture_WritesFile(t *testing.T) {
	fake := newFakeShipcheckClient(t, readyChecklistYAML, map[string]string{
		"has_manage_py": "true",
		"host.os":       "linux",
	})
	restore := overrideNewShipcheck(fake)
	defer restore()

	outPath := filepath.Join(t.TempDir(), "host.yaml")
	reset := setSnapshotCaptureFlags(".", outPath)
	defer reset()

	err := runSnapshotCapture(&cobra.Command{}, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "has_manage_py")
	assert.Contains(t, string(data), "host.os")
}

func TestRunSnapshotCapture_Error(t *testing.T) {
	fake := newFakeShipcheckClient(t, readyChecklistYAML, nil)
	fake.captureErr = errTestCheck
	restore := overrideNewShipcheck(fake)
	defer restore()

	reset := setSnapshotCaptureFlags(".", "")
	defer reset()

	err := runSnapshotCapture(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errTestCheck)
}

func TestRunSnapshotShow_Success(t *testing.T) {
	fake := newFakeShipcheckClient(t, readyChecklistYAML, map[string]string{
		"host.os": "linux",
	})
	restore := overrideNewShipcheck(fake)
	defer restore()

	prev := snapshotShowPath
	snapshotShowPath = "host.yaml"
	defer func() { snapshotShowPath = prev }()

	err := runSnapshotShow(&cobra.Command{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "host.yaml", fake.loadedSnapshot)
	assert.True(t, fake.printSnapshotCalled)
}

func TestRunSnapshotShow_LoadError(t *testing.T) {
	fake := newFakeShipcheckClient(t, readyChecklistYAML, nil)
	fake.loadSnapshotErr = errTestCheck
	restore := overrideNewShipcheck(fake)
	defer restore()

	err := runSnapshotShow(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errTestCheck)
	assert.False(t, fake.printSnapshotCalled)
}

func setSnapshotCaptureFlags(dir, out string) func() {
	prevDir := snapshotCaptureDir
	prevOut := snapshotCaptureOut
	snapshotCaptureDir = dir
	snapshotCaptureOut = out
	return func() {
		snapshotCaptureDir = prevDir
		snapshotCaptureOut = prevOut
	}
}

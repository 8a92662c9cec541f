package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/shipcheck/internal/domain/checklist"
	"github.com/felixgeelhaar/shipcheck/internal/ports"
)

func TestRootCmd_SilencesCobraOutput(t *testing.T) {
	t.Parallel()

	assert.True(t, rootCmd.SilenceErrors)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCmd_HasGlobalFlags(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("log-json"))
}

func TestCommandContext_CarriesLogger(t *testing.T) {
	ctx := commandContext()

	log := ports.LoggerFromContext(ctx)
	require.NotNil(t, log, "commands should run with a logger in context")
}

func TestFormatError_PlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("something broke")
	assert.Equal(t, "something broke", formatError(err))
}

func TestFormatError_ParseError(t *testing.T) {
	err := checklist.NewChecklistNotFoundError("missing.yaml")

	msg := formatError(err)

	assert.Contains(t, msg, "checklist file not found: missing.yaml")
	assert.Contains(t, msg, "(at missing.yaml)")
	assert.Contains(t, msg, "Suggestion: Run 'shipcheck init'")
	assert.NotContains(t, msg, "Technical details")
}

func TestFormatError_WrappedParseError(t *testing.T) {
	err := fmt.Errorf("loading: %w", checklist.NewStepDuplicateError("db:migrate"))

	msg := formatError(err)

	assert.Contains(t, msg, `step ID "db:migrate" is defined more than once`)
	assert.Contains(t, msg, "Rename one of the occurrences")
}

func TestFormatError_VerboseShowsUnderlying(t *testing.T) {
	prev := verbose
	verbose = true
	defer func() { verbose = prev }()

	underlying := errors.New("yaml: line 3: mapping values are not allowed")
	err := checklist.NewSnapshotParseError("host.yaml", underlying)

	msg := formatError(err)

	assert.Contains(t, msg, "Technical details: yaml: line 3")
}

func TestPrintErrorTo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printErrorTo(&buf, errors.New("boom"))

	assert.Equal(t, "Error: boom\n", buf.String())
}

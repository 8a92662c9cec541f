package evaluation_test

import (
	"testing"

	"github.com/felixgeelhaar/shipcheck/internal/domain/checklist"
	"github.com/felixgeelhaar/shipcheck/internal/domain/evaluation"
	"github.com/felixgeelhaar/shipcheck/internal/domain/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustStep(t *testing.T, id, description string, requires ...checklist.Precondition) checklist.Step {
	t.Helper()
	step, err := checklist.NewStep(checklist.MustNewStepID(id), description)
	require.NoError(t, err)
	return step.WithRequires(requires...)
}

func TestEvaluateStep_Equals(t *testing.T) {
	t.Parallel()

	step := mustStep(t, "deps:freeze", "requirements.txt present",
		checklist.MustNewPrecondition("has_requirements_file", checklist.OpEquals, "true"))

	t.Run("matching value passes", func(t *testing.T) {
		t.Parallel()
		snap := snapshot.New(map[string]string{"has_requirements_file": "true"})

		result := evaluation.NewEvaluator().EvaluateStep(step, snap)

		assert.True(t, result.Passed())
		assert.Empty(t, result.Failures())
	})

	t.Run("different value fails with the key", func(t *testing.T) {
		t.Parallel()
		snap := snapshot.New(map[string]string{"has_requirements_file": "false"})

		result := evaluation.NewEvaluator().EvaluateStep(step, snap)

		assert.False(t, result.Passed())
		assert.Equal(t, []string{"has_requirements_file"}, result.FailedKeys())

		failure := result.Failures()[0]
		got, present := failure.Got()
		assert.True(t, present)
		assert.Equal(t, "false", got)
		assert.Equal(t, `want "true", got "false"`, failure.Detail())
	})

	t.Run("missing fact fails", func(t *testing.T) {
		t.Parallel()
		snap := snapshot.New(nil)

		result := evaluation.NewEvaluator().EvaluateStep(step, snap)

		assert.False(t, result.Passed())
		failure := result.Failures()[0]
		_, present := failure.Got()
		assert.False(t, present)
		assert.Contains(t, failure.Detail(), "not present")
	})
}

func TestEvaluateStep_NotEquals(t *testing.T) {
	t.Parallel()

	step := mustStep(t, "settings:debug", "DEBUG disabled in production",
		checklist.MustNewPrecondition("env.DEBUG", checklist.OpNotEquals, "True"))

	tests := []struct {
		name     string
		facts    map[string]string
		wantPass bool
	}{
		{"different value passes", map[string]string{"env.DEBUG": "False"}, true},
		{"equal value fails", map[string]string{"env.DEBUG": "True"}, false},
		{"missing fact fails, unknown is not evidence", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := evaluation.NewEvaluator().EvaluateStep(step, snapshot.New(tt.facts))
			assert.Equal(t, tt.wantPass, result.Passed())
		})
	}
}

func TestEvaluateStep_ExistsAndAbsent(t *testing.T) {
	t.Parallel()

	exists := mustStep(t, "settings:whitenoise", "whitenoise installed",
		checklist.MustNewPrecondition("python.package.whitenoise", checklist.OpExists, ""))
	absent := mustStep(t, "settings:no-sqlite", "sqlite not used in production",
		checklist.MustNewPrecondition("python.package.sqlite", checklist.OpAbsent, ""))

	snap := snapshot.New(map[string]string{"python.package.whitenoise": "6.6.0"})

	evaluator := evaluation.NewEvaluator()
	assert.True(t, evaluator.EvaluateStep(exists, snap).Passed())
	assert.True(t, evaluator.EvaluateStep(absent, snap).Passed())

	reversed := snapshot.New(map[string]string{"python.package.sqlite": "3.45"})
	assert.False(t, evaluator.EvaluateStep(exists, reversed).Passed())

	result := evaluator.EvaluateStep(absent, reversed)
	assert.False(t, result.Passed())
	assert.Contains(t, result.Failures()[0].Detail(), `present with value "3.45"`)
}

func TestEvaluateStep_AtLeast(t *testing.T) {
	t.Parallel()

	step := mustStep(t, "server:python", "python new enough for Django 4",
		checklist.MustNewPrecondition("python.version", checklist.OpAtLeast, "3.9"))

	tests := []struct {
		name     string
		facts    map[string]string
		wantPass bool
	}{
		{"newer version passes", map[string]string{"python.version": "3.11.4"}, true},
		{"equal version passes", map[string]string{"python.version": "3.9"}, true},
		{"loose two-part form compares", map[string]string{"python.version": "3.10"}, true},
		{"older version fails", map[string]string{"python.version": "3.8.10"}, false},
		{"missing fact fails", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := evaluation.NewEvaluator().EvaluateStep(step, snapshot.New(tt.facts))
			assert.Equal(t, tt.wantPass, result.Passed())
		})
	}
}

func TestEvaluateStep_AtLeast_BadVersionIsEvaluationError(t *testing.T) {
	t.Parallel()

	step := mustStep(t, "server:python", "python new enough",
		checklist.MustNewPrecondition("python.version", checklist.OpAtLeast, "3.9"))
	snap := snapshot.New(map[string]string{"python.version": "not-a-version"})

	result := evaluation.NewEvaluator().EvaluateStep(step, snap)

	assert.False(t, result.Passed())
	require.Error(t, result.Err())
	assert.ErrorIs(t, result.Err(), evaluation.ErrBadVersionValue)
}

func TestEvaluateStep_UnsupportedOperator(t *testing.T) {
	t.Parallel()

	step := mustStep(t, "python:version", "version matches a pattern",
		checklist.MustNewPrecondition("python.version", "matches", "3.*"),
		checklist.MustNewPrecondition("has_requirements_file", checklist.OpEquals, "true"))
	snap := snapshot.New(map[string]string{
		"python.version":        "3.11.4",
		"has_requirements_file": "true",
	})

	result := evaluation.NewEvaluator().EvaluateStep(step, snap)

	assert.False(t, result.Passed(), "a step with an unevaluable precondition fails")
	require.Error(t, result.Err())
	assert.ErrorIs(t, result.Err(), evaluation.ErrUnsupportedOperator)

	// The sibling precondition was still evaluated (and held), so the
	// only failure is the unsupported one.
	require.Len(t, result.Failures(), 1)
	assert.Equal(t, "python.version", result.Failures()[0].Key())
}

func TestEvaluateStep_NoPreconditions_AlwaysPasses(t *testing.T) {
	t.Parallel()

	step := mustStep(t, "docs:read", "read the deployment notes")

	result := evaluation.NewEvaluator().EvaluateStep(step, snapshot.New(nil))

	assert.True(t, result.Passed())
	assert.NoError(t, result.Err())
}

func TestEvaluateStep_Idempotent(t *testing.T) {
	t.Parallel()

	step := mustStep(t, "deps:freeze", "requirements present",
		checklist.MustNewPrecondition("has_requirements_file", checklist.OpEquals, "true"),
		checklist.MustNewPrecondition("python.version", checklist.OpAtLeast, "3.9"))
	snap := snapshot.New(map[string]string{
		"has_requirements_file": "false",
		"python.version":        "3.8",
	})

	evaluator := evaluation.NewEvaluator()
	first := evaluator.EvaluateStep(step, snap)
	second := evaluator.EvaluateStep(step, snap)

	assert.Equal(t, first.Passed(), second.Passed())
	assert.Equal(t, first.FailedKeys(), second.FailedKeys())
}

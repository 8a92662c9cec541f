package checklist

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorization.
const (
	ErrCodeChecklistNotFound = "CHECKLIST_NOT_FOUND"
	ErrCodeChecklistParse    = "CHECKLIST_PARSE"
	ErrCodeChecklistInvalid  = "CHECKLIST_INVALID"
	ErrCodeStepMissingField  = "STEP_MISSING_FIELD"
	ErrCodeStepIDInvalid     = "STEP_ID_INVALID"
	ErrCodeStepDuplicate     = "STEP_DUPLICATE"
	ErrCodePreconditionKey   = "PRECONDITION_KEY"
	ErrCodeSnapshotNotFound  = "SNAPSHOT_NOT_FOUND"
	ErrCodeSnapshotParse     = "SNAPSHOT_PARSE"
	ErrCodeToolVersion       = "TOOL_VERSION"
)

// ParseError is a fatal input error with an actionable suggestion.
// Any ParseError aborts the run before evaluation begins: a checklist
// or snapshot that fails to load produces no report at all.
type ParseError struct {
	Code       string // Error code for categorization (e.g., "STEP_DUPLICATE")
	Message    string // User-friendly error message
	Context    string // File path, step index, or other location context
	Suggestion string // Actionable suggestion to fix the error
	Underlying error  // Wrapped error for error chain
}

// Error returns the formatted error message.
func (e *ParseError) Error() string {
	var b strings.Builder

	b.WriteString(e.Message)

	if e.Context != "" {
		fmt.Fprintf(&b, " (at %s)", e.Context)
	}

	return b.String()
}

// Unwrap returns the underlying error for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Underlying
}

// Is supports errors.Is() for comparing error codes.
func (e *ParseError) Is(target error) bool {
	if t, ok := target.(*ParseError); ok {
		return e.Code == t.Code
	}
	return false
}

// Format returns a fully formatted error with all details.
func (e *ParseError) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)

	if e.Context != "" {
		fmt.Fprintf(&b, "\n  Location: %s", e.Context)
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  Suggestion: %s", e.Suggestion)
	}

	return b.String()
}

// NewParseError creates a new ParseError with the given code and message.
func NewParseError(code, message string) *ParseError {
	return &ParseError{
		Code:    code,
		Message: message,
	}
}

// WithContext returns a new ParseError with context set.
func (e *ParseError) WithContext(ctx string) *ParseError {
	return &ParseError{
		Code:       e.Code,
		Message:    e.Message,
		Context:    ctx,
		Suggestion: e.Suggestion,
		Underlying: e.Underlying,
	}
}

// WithSuggestion returns a new ParseError with suggestion set.
func (e *ParseError) WithSuggestion(suggestion string) *ParseError {
	return &ParseError{
		Code:       e.Code,
		Message:    e.Message,
		Context:    e.Context,
		Suggestion: suggestion,
		Underlying: e.Underlying,
	}
}

// WithUnderlying returns a new ParseError wrapping another error.
func (e *ParseError) WithUnderlying(err error) *ParseError {
	return &ParseError{
		Code:       e.Code,
		Message:    e.Message,
		Context:    e.Context,
		Suggestion: e.Suggestion,
		Underlying: err,
	}
}

// IsParseError checks if an error is a ParseError with a specific code.
func IsParseError(err error, code string) bool {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}

// GetParseError extracts a ParseError from an error chain, if present.
func GetParseError(err error) *ParseError {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe
	}
	return nil
}

// Common ParseError constructors.

// NewChecklistNotFoundError creates an error for a missing checklist file.
func NewChecklistNotFoundError(path string) *ParseError {
	return &ParseError{
		Code:       ErrCodeChecklistNotFound,
		Message:    fmt.Sprintf("checklist file not found: %s", path),
		Context:    path,
		Suggestion: "Run 'shipcheck init' to create a starter checklist, or check the file path.",
	}
}

// NewChecklistInvalidError creates an error for a structurally invalid checklist.
func NewChecklistInvalidError(path, reason string) *ParseError {
	return &ParseError{
		Code:       ErrCodeChecklistInvalid,
		Message:    fmt.Sprintf("invalid checklist: %s", reason),
		Context:    path,
		Suggestion: "A checklist is a YAML document with a top-level 'steps' list.",
	}
}

// NewStepMissingFieldError creates an error for a step missing a required field.
// index is the zero-based position of the step in the document.
func NewStepMissingFieldError(index int, field string) *ParseError {
	return &ParseError{
		Code:       ErrCodeStepMissingField,
		Message:    fmt.Sprintf("step %d is missing required field '%s'", index+1, field),
		Context:    fmt.Sprintf("steps[%d]", index),
		Suggestion: fmt.Sprintf("Every step needs an '%s'. Add one, for example:\n  - id: deps:freeze\n    description: requirements.txt lists pinned dependencies", field),
	}
}

// NewStepIDInvalidError creates an error for a malformed step ID.
func NewStepIDInvalidError(raw string, err error) *ParseError {
	return &ParseError{
		Code:       ErrCodeStepIDInvalid,
		Message:    fmt.Sprintf("step ID %q is not valid", raw),
		Context:    raw,
		Suggestion: "Step IDs are alphanumeric segments joined by colons, like 'deps:freeze' or 'static:collect'.",
		Underlying: err,
	}
}

// NewStepDuplicateError creates an error for a step ID used twice.
// Duplicate IDs are always fatal, whatever the snapshot contains.
func NewStepDuplicateError(id string) *ParseError {
	return &ParseError{
		Code:       ErrCodeStepDuplicate,
		Message:    fmt.Sprintf("step ID %q is defined more than once", id),
		Context:    id,
		Suggestion: "Step IDs must be unique within a checklist. Rename one of the occurrences.",
	}
}

// NewPreconditionKeyError creates an error for a precondition without a fact key.
func NewPreconditionKeyError(stepID string, index int) *ParseError {
	return &ParseError{
		Code:       ErrCodePreconditionKey,
		Message:    fmt.Sprintf("step %q: precondition %d has no 'key'", stepID, index+1),
		Context:    fmt.Sprintf("%s/requires[%d]", stepID, index),
		Suggestion: "Every precondition names a snapshot fact, for example:\n  requires:\n    - key: has_requirements_file\n      value: \"true\"",
	}
}

// NewSnapshotNotFoundError creates an error for a missing snapshot file.
func NewSnapshotNotFoundError(path string) *ParseError {
	return &ParseError{
		Code:       ErrCodeSnapshotNotFound,
		Message:    fmt.Sprintf("snapshot file not found: %s", path),
		Context:    path,
		Suggestion: "Run 'shipcheck snapshot capture' to record one, or check the file path.",
	}
}

// NewSnapshotParseError creates an error for an unreadable snapshot document.
func NewSnapshotParseError(path string, err error) *ParseError {
	return &ParseError{
		Code:       ErrCodeSnapshotParse,
		Message:    "failed to parse snapshot file",
		Context:    path,
		Suggestion: "A snapshot is a flat key/value mapping. YAML, JSON, TOML, and INI are accepted, chosen by file extension.",
		Underlying: err,
	}
}

// NewToolVersionError creates an error for a checklist requiring a newer tool.
func NewToolVersionError(required, current string) *ParseError {
	return &ParseError{
		Code:       ErrCodeToolVersion,
		Message:    fmt.Sprintf("checklist requires shipcheck >= %s, this is %s", required, current),
		Context:    "min_tool_version",
		Suggestion: "Upgrade shipcheck, or lower the checklist's min_tool_version.",
	}
}

// NewYAMLParseError translates technical YAML errors into user-friendly messages.
func NewYAMLParseError(path string, err error) *ParseError {
	errStr := err.Error()
	var message, suggestion string

	switch {
	case strings.Contains(errStr, "cannot unmarshal !!str into") && strings.Contains(errStr, "stepYAML"):
		message = "steps must be objects, not plain strings"
		suggestion = `Each step is a mapping with at least 'id' and 'description':

  steps:
    - id: deps:freeze
      description: requirements.txt lists pinned dependencies`

	case strings.Contains(errStr, "cannot unmarshal !!map into []"):
		message = "expected a list but found an object"
		suggestion = "Check that 'steps' and 'requires' are YAML lists ('- item'), not nested objects."

	case strings.Contains(errStr, "cannot unmarshal !!seq into map"):
		message = "expected an object but found a list"
		suggestion = "Check that you're using 'key: value' format instead of '- item' list format."

	case strings.Contains(errStr, "did not find expected key"):
		message = "missing required field or incorrect indentation"
		suggestion = "YAML is sensitive to indentation. Use 2 spaces (not tabs) for each level."

	case strings.Contains(errStr, "mapping values are not allowed"):
		message = "invalid YAML structure"
		suggestion = "Check for missing colons after keys, or incorrect indentation."

	case strings.Contains(errStr, "found character that cannot start"):
		message = "invalid character in YAML"
		suggestion = "Quote string values that contain special characters like ':', '#', or '{'."

	default:
		message = "invalid YAML syntax"
		suggestion = "Check your YAML syntax. Common issues: incorrect indentation, missing colons, or unquoted special characters."
	}

	// Extract line number if present
	context := path
	if strings.Contains(errStr, "line ") {
		parts := strings.Split(errStr, "line ")
		if len(parts) > 1 {
			lineInfo := strings.Split(parts[1], ":")[0]
			context = fmt.Sprintf("%s (line %s)", path, lineInfo)
		}
	}

	return &ParseError{
		Code:       ErrCodeChecklistParse,
		Message:    message,
		Context:    context,
		Suggestion: suggestion,
		Underlying: err,
	}
}

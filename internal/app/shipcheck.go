// Package app provides the main application logic for shipcheck.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/felixgeelhaar/shipcheck/internal/adapters/filesystem"
	"github.com/felixgeelhaar/shipcheck/internal/adapters/hostinfo"
	"github.com/felixgeelhaar/shipcheck/internal/adapters/logging"
	"github.com/felixgeelhaar/shipcheck/internal/domain/capture"
	"github.com/felixgeelhaar/shipcheck/internal/domain/checklist"
	"github.com/felixgeelhaar/shipcheck/internal/domain/evaluation"
	"github.com/felixgeelhaar/shipcheck/internal/domain/snapshot"
	"github.com/felixgeelhaar/shipcheck/internal/ports"
)

// Shipcheck is the main application orchestrator.
type Shipcheck struct {
	loader  *checklist.Loader
	runner  *evaluation.Runner
	fs      ports.FileSystem
	host    ports.Host
	log     ports.Logger
	out     io.Writer
	version string
}

// New creates a new Shipcheck application.
func New(out io.Writer) *Shipcheck {
	return &Shipcheck{
		loader:  checklist.NewLoader(),
		runner:  evaluation.NewRunner(),
		fs:      filesystem.NewRealFileSystem(),
		host:    hostinfo.NewRealHost(),
		log:     logging.NewNopLogger(),
		out:     out,
		version: "dev",
	}
}

// WithLogger sets the logger.
func (s *Shipcheck) WithLogger(log ports.Logger) *Shipcheck {
	s.log = log
	return s
}

// WithFileSystem sets the file system used for snapshots and captures.
func (s *Shipcheck) WithFileSystem(fs ports.FileSystem) *Shipcheck {
	s.fs = fs
	return s
}

// WithHost sets the host facts source used for captures.
func (s *Shipcheck) WithHost(host ports.Host) *Shipcheck {
	s.host = host
	return s
}

// WithVersion sets the tool version compared against a checklist's
// min_tool_version gate.
func (s *Shipcheck) WithVersion(version string) *Shipcheck {
	s.version = version
	return s
}

// CheckOptions configures a readiness check.
type CheckOptions struct {
	// ChecklistPath is the checklist document to evaluate.
	ChecklistPath string
	// SnapshotPath is an environment snapshot file. When empty the
	// environment is captured from ProjectDir instead.
	SnapshotPath string
	// ProjectDir is the project directory to capture facts from.
	ProjectDir string
	// Overrides are facts layered over the snapshot, last write wins.
	Overrides map[string]string
}

// Check loads the checklist, resolves a snapshot and evaluates every
// step against it. The returned report says whether the environment is
// ready; a failing step is reported, never acted on. The checklist is
// returned alongside the report so callers can render descriptions.
func (s *Shipcheck) Check(ctx context.Context, opts CheckOptions) (*checklist.Checklist, *evaluation.Report, error) {
	list, err := s.LoadChecklist(ctx, opts.ChecklistPath)
	if err != nil {
		return nil, nil, err
	}

	snap, err := s.resolveSnapshot(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	if len(opts.Overrides) > 0 {
		snap = snap.Merge(opts.Overrides)
	}

	report := s.runner.Run(list, snap)

	summary := report.Summary()
	s.logger(ctx).Info(ctx, "checklist evaluated",
		ports.F("checklist", list.Name()),
		ports.F("steps", summary.Total),
		ports.F("failed", summary.Failed),
		ports.F("ok", report.OK()),
	)

	return list, report, nil
}

// LoadChecklist loads and validates a checklist document, enforcing
// its min_tool_version gate against the running tool version.
func (s *Shipcheck) LoadChecklist(ctx context.Context, path string) (*checklist.Checklist, error) {
	list, err := s.loader.Load(path)
	if err != nil {
		return nil, err
	}

	if err := s.checkToolVersion(list); err != nil {
		return nil, err
	}

	s.logger(ctx).Debug(ctx, "loaded checklist",
		ports.F("path", path),
		ports.F("name", list.Name()),
		ports.F("steps", list.Len()),
	)

	return list, nil
}

// LoadSnapshot reads and decodes an environment snapshot file.
func (s *Shipcheck) LoadSnapshot(ctx context.Context, path string) (snapshot.Snapshot, error) {
	data, err := s.fs.ReadFile(ports.ExpandPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return snapshot.Snapshot{}, checklist.NewSnapshotNotFoundError(path)
		}
		return snapshot.Snapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}

	snap, err := snapshot.Decode(path, data)
	if err != nil {
		return snapshot.Snapshot{}, checklist.NewSnapshotParseError(path, err)
	}

	s.logger(ctx).Debug(ctx, "loaded snapshot",
		ports.F("path", path),
		ports.F("facts", snap.Len()),
	)

	return snap.WithSource(path), nil
}

// Capture probes a project directory and the host for facts.
func (s *Shipcheck) Capture(ctx context.Context, dir string) (snapshot.Snapshot, error) {
	capturer := capture.NewCapturer(s.fs, s.host)
	return capturer.Capture(ctx, ports.ExpandPath(dir))
}

// resolveSnapshot picks the snapshot for a check: an explicit file if
// given, a capture of the project directory otherwise.
func (s *Shipcheck) resolveSnapshot(ctx context.Context, opts CheckOptions) (snapshot.Snapshot, error) {
	if opts.SnapshotPath != "" {
		return s.LoadSnapshot(ctx, opts.SnapshotPath)
	}

	dir := opts.ProjectDir
	if dir == "" {
		dir = "."
	}
	return s.Capture(ctx, dir)
}

// checkToolVersion enforces a checklist's min_tool_version gate.
// Development builds and unparsable versions skip the gate; validate
// flags the latter.
func (s *Shipcheck) checkToolVersion(list *checklist.Checklist) error {
	required := list.MinToolVersion()
	if required == "" {
		return nil
	}
	if s.version == "" || s.version == "dev" {
		return nil
	}

	requiredV := canonicalVersion(required)
	currentV := canonicalVersion(s.version)
	if !semver.IsValid(requiredV) || !semver.IsValid(currentV) {
		return nil
	}

	if semver.Compare(currentV, requiredV) < 0 {
		return checklist.NewToolVersionError(required, s.version)
	}
	return nil
}

// canonicalVersion normalizes a version string for semver comparison.
func canonicalVersion(v string) string {
	return "v" + strings.TrimPrefix(strings.TrimSpace(v), "v")
}

// logger returns the context logger when one is attached, the
// configured logger otherwise.
func (s *Shipcheck) logger(ctx context.Context) ports.Logger {
	if log := ports.LoggerFromContext(ctx); log != nil {
		return log
	}
	return s.log
}

// printf is a helper that writes to the output writer, ignoring errors.
func (s *Shipcheck) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

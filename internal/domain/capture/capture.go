// Package capture builds environment snapshots by probing a project
// directory and the host machine. It only ever reads: probes inspect
// files and runtime facts, they never run project code.
package capture

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/felixgeelhaar/shipcheck/internal/domain/snapshot"
	"github.com/felixgeelhaar/shipcheck/internal/ports"
)

// fileProbes maps snapshot fact names to files expected in a Django
// project root.
var fileProbes = []struct {
	fact string
	path string
}{
	{"has_requirements_file", "requirements.txt"},
	{"has_manage_py", "manage.py"},
	{"has_passenger_wsgi", "passenger_wsgi.py"},
	{"has_env_file", ".env"},
	{"has_pyproject", "pyproject.toml"},
	{"has_htaccess", ".htaccess"},
}

// Capturer probes a project directory and the host for facts.
type Capturer struct {
	fs   ports.FileSystem
	host ports.Host
}

// NewCapturer creates a new Capturer.
func NewCapturer(fs ports.FileSystem, host ports.Host) *Capturer {
	return &Capturer{
		fs:   fs,
		host: host,
	}
}

// Capture probes dir and the host and returns the facts as a snapshot.
// Probes that cannot be completed are skipped rather than failing the
// whole capture; only a missing project directory is an error.
func (c *Capturer) Capture(ctx context.Context, dir string) (snapshot.Snapshot, error) {
	if !c.fs.IsDir(dir) {
		return snapshot.Snapshot{}, fmt.Errorf("project directory %s not found", dir)
	}

	facts := make(map[string]string)

	for _, probe := range fileProbes {
		facts[probe.fact] = strconv.FormatBool(c.fs.Exists(filepath.Join(dir, probe.path)))
	}
	facts["has_static_dir"] = strconv.FormatBool(c.fs.IsDir(filepath.Join(dir, "static")))

	c.captureRequirements(ctx, dir, facts)
	c.capturePyproject(ctx, dir, facts)
	c.captureDotenv(ctx, dir, facts)
	c.captureHost(facts)

	if log := ports.LoggerFromContext(ctx); log != nil {
		log.Debug(ctx, "captured project facts", ports.F("dir", dir), ports.F("facts", len(facts)))
	}

	return snapshot.New(facts).WithSource(dir), nil
}

// captureRequirements parses requirements.txt into package pins.
func (c *Capturer) captureRequirements(ctx context.Context, dir string, facts map[string]string) {
	path := filepath.Join(dir, "requirements.txt")
	data, err := c.fs.ReadFile(path)
	if err != nil {
		return
	}

	reqs := ParseRequirements(data)
	facts["requirements.pinned"] = strconv.FormatBool(AllPinned(reqs))
	for _, req := range reqs {
		if req.Version == "" {
			continue
		}
		facts["python.package."+req.Name] = req.Version
	}

	if log := ports.LoggerFromContext(ctx); log != nil {
		log.Debug(ctx, "parsed requirements", ports.F("path", path), ports.F("count", len(reqs)))
	}
}

// capturePyproject pulls the project name and Python constraint out of
// pyproject.toml.
func (c *Capturer) capturePyproject(ctx context.Context, dir string, facts map[string]string) {
	path := filepath.Join(dir, "pyproject.toml")
	data, err := c.fs.ReadFile(path)
	if err != nil {
		return
	}

	name, requiresPython, err := parsePyproject(data)
	if err != nil {
		if log := ports.LoggerFromContext(ctx); log != nil {
			log.Warn(ctx, "skipping unparsable pyproject.toml", ports.F("path", path), ports.F("error", err))
		}
		return
	}

	if name != "" {
		facts["pyproject.name"] = name
	}
	if requiresPython != "" {
		facts["pyproject.requires_python"] = requiresPython
	}
}

// captureDotenv lifts the keys of a .env file into env.* facts.
func (c *Capturer) captureDotenv(ctx context.Context, dir string, facts map[string]string) {
	path := filepath.Join(dir, ".env")
	data, err := c.fs.ReadFile(path)
	if err != nil {
		return
	}

	envSnap, err := snapshot.Decode(path, data)
	if err != nil {
		if log := ports.LoggerFromContext(ctx); log != nil {
			log.Warn(ctx, "skipping unparsable .env file", ports.F("path", path), ports.F("error", err))
		}
		return
	}

	for _, key := range envSnap.Keys() {
		value, _ := envSnap.Lookup(key)
		facts["env."+key] = value
	}
}

// captureHost records facts about the machine itself.
func (c *Capturer) captureHost(facts map[string]string) {
	facts["host.os"] = c.host.OS()
	facts["host.arch"] = c.host.Arch()
	if name, err := c.host.Hostname(); err == nil && name != "" {
		facts["host.hostname"] = name
	}
}

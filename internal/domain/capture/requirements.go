package capture

import "strings"

// Requirement is a single entry from a pip requirements file.
// Version is empty when the entry is not pinned with ==.
type Requirement struct {
	Name    string
	Version string
}

// ParseRequirements extracts package requirements from requirements.txt
// content. Comments, blank lines, pip options (-r, -e, --hash, ...) and
// URL requirements are skipped. Names are normalized to lowercase with
// underscores folded to hyphens, following how package indexes compare
// them.
func ParseRequirements(data []byte) []Requirement {
	var reqs []Requirement

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		if strings.Contains(line, "://") {
			continue
		}

		// Inline comments and environment markers do not affect the pin.
		if i := strings.Index(line, " #"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if i := strings.Index(line, ";"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}

		name, version := splitRequirement(line)
		if name == "" {
			continue
		}

		reqs = append(reqs, Requirement{
			Name:    normalizeName(name),
			Version: version,
		})
	}

	return reqs
}

// AllPinned reports whether every requirement carries an exact version.
// An empty list is vacuously pinned.
func AllPinned(reqs []Requirement) bool {
	for _, req := range reqs {
		if req.Version == "" {
			return false
		}
	}
	return true
}

// splitRequirement separates a requirement line into name and pinned
// version. Lines constrained with anything other than a single == are
// treated as unpinned.
func splitRequirement(line string) (string, string) {
	if name, version, found := strings.Cut(line, "=="); found {
		version = strings.TrimSpace(version)
		if strings.ContainsAny(version, ",<>=!~") {
			return trimExtras(name), ""
		}
		return trimExtras(name), version
	}

	// Range constraints such as >=, <=, ~=, != or bare names.
	name := line
	if i := strings.IndexAny(line, "<>!~="); i >= 0 {
		name = line[:i]
	}
	return trimExtras(name), ""
}

// trimExtras drops an extras suffix such as [standard] from a name.
func trimExtras(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.Index(name, "["); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

// normalizeName folds a distribution name to its canonical form.
func normalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "-")
}

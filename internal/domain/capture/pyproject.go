package capture

import (
	"github.com/pelletier/go-toml/v2"
)

// pyprojectTOML covers the [project] table fields the capturer cares
// about. Everything else in the file is ignored on purpose.
type pyprojectTOML struct {
	Project struct {
		Name           string `toml:"name"`
		RequiresPython string `toml:"requires-python"`
	} `toml:"project"`
}

// parsePyproject extracts the project name and requires-python
// constraint from pyproject.toml content.
func parsePyproject(data []byte) (name, requiresPython string, err error) {
	var doc pyprojectTOML
	if err := toml.Unmarshal(data, &doc); err != nil {
		return "", "", err
	}
	return doc.Project.Name, doc.Project.RequiresPython, nil
}

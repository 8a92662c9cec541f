package checklist

import (
	"errors"
	"os"
	"strings"
)

// Loader loads checklists from the filesystem.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses a checklist from the given path.
func (l *Loader) Load(path string) (*Checklist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewChecklistNotFoundError(path)
		}
		return nil, err
	}

	list, err := Parse(data)
	if err != nil {
		// Structural errors already carry a code and suggestion.
		var pe *ParseError
		if errors.As(err, &pe) {
			if pe.Context == "" {
				return nil, pe.WithContext(path)
			}
			return nil, pe
		}
		// Translate raw YAML errors into user-friendly messages.
		if strings.Contains(err.Error(), "yaml:") || strings.Contains(err.Error(), "unmarshal") {
			return nil, NewYAMLParseError(path, err)
		}
		return nil, err
	}

	return list, nil
}

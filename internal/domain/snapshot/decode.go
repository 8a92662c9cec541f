package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	ini "gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Decode errors.
var (
	// ErrNotMapping is returned when the document is not a key/value mapping.
	ErrNotMapping = errors.New("snapshot document must be a key/value mapping")
)

// Decode parses snapshot bytes into a Snapshot. The format is chosen by
// the file extension: .json, .toml, .env and .ini are recognized,
// anything else is read as YAML.
//
// Nested tables flatten to dotted keys (python: {version: "3.11"} becomes
// python.version), scalars coerce to strings, and lists join with commas.
func Decode(path string, data []byte) (Snapshot, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return decodeJSON(data)
	case ".toml":
		return decodeTOML(data)
	case ".env", ".ini":
		return decodeINI(data)
	default:
		return decodeYAML(data)
	}
}

func decodeYAML(data []byte) (Snapshot, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		// A scalar or list document unmarshals with a type error; report
		// the shape problem rather than the yaml internals.
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return Snapshot{}, ErrNotMapping
		}
		return Snapshot{}, err
	}
	if raw == nil {
		return New(nil), nil
	}
	return flatten(raw)
}

func decodeJSON(data []byte) (Snapshot, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "" {
			return Snapshot{}, ErrNotMapping
		}
		return Snapshot{}, err
	}
	return flatten(raw)
}

func decodeTOML(data []byte) (Snapshot, error) {
	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, err
	}
	return flatten(raw)
}

func decodeINI(data []byte) (Snapshot, error) {
	file, err := ini.Load(data)
	if err != nil {
		return Snapshot{}, err
	}

	facts := make(map[string]string)
	for _, section := range file.Sections() {
		prefix := ""
		if section.Name() != ini.DefaultSection {
			prefix = section.Name() + "."
		}
		for _, key := range section.Keys() {
			facts[prefix+key.Name()] = key.Value()
		}
	}
	return New(facts), nil
}

// flatten walks a decoded document and produces dotted string facts.
func flatten(raw map[string]interface{}) (Snapshot, error) {
	facts := make(map[string]string, len(raw))
	if err := flattenInto(facts, "", raw); err != nil {
		return Snapshot{}, err
	}
	return New(facts), nil
}

func flattenInto(facts map[string]string, prefix string, raw map[string]interface{}) error {
	for key, value := range raw {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		switch v := value.(type) {
		case map[string]interface{}:
			if err := flattenInto(facts, name, v); err != nil {
				return err
			}
		case map[interface{}]interface{}:
			converted := make(map[string]interface{}, len(v))
			for mk, mv := range v {
				converted[fmt.Sprintf("%v", mk)] = mv
			}
			if err := flattenInto(facts, name, converted); err != nil {
				return err
			}
		case []interface{}:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				if _, nested := item.(map[string]interface{}); nested {
					return fmt.Errorf("%w: fact %q holds a list of objects", ErrNotMapping, name)
				}
				parts = append(parts, coerceScalar(item))
			}
			facts[name] = strings.Join(parts, ",")
		default:
			facts[name] = coerceScalar(value)
		}
	}
	return nil
}

// coerceScalar renders a decoded scalar the way an operator would have
// typed it by hand: true, 42, 3.11, 2026-08-21T10:00:00Z.
func coerceScalar(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Encode renders a Snapshot as a YAML document with sorted keys, the
// canonical on-disk form produced by capture.
func Encode(s Snapshot) []byte {
	var b strings.Builder
	for _, k := range s.Keys() {
		v, _ := s.Lookup(k)
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(quoteYAMLValue(v))
		b.WriteString("\n")
	}
	return []byte(b.String())
}

// quoteYAMLValue quotes values that YAML would otherwise re-type on
// the next read (booleans, numbers, empty strings).
func quoteYAMLValue(v string) string {
	if v == "" {
		return `""`
	}
	needsQuote := false
	switch strings.ToLower(v) {
	case "true", "false", "yes", "no", "on", "off", "null", "~":
		needsQuote = true
	}
	if !needsQuote {
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			needsQuote = true
		}
	}
	if !needsQuote && strings.ContainsAny(v, ":#{}[]&*!|>'\"%@`") {
		needsQuote = true
	}
	if needsQuote {
		return strconv.Quote(v)
	}
	return v
}

package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"
)

//go:embed si.toml
var builtinTOML []byte

// BuiltinSource is the Source of the embedded catalog.
const BuiltinSource = "builtin:si.toml"

// Format selects a catalog encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTOML, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatForPath picks the format from a file extension; anything that is
// not .yaml or .yml is TOML.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Parse decodes a TOML catalog. Unknown keys are rejected so that typos do
// not silently drop a unit attribute.
func Parse(data []byte) (*File, error) {
	return Decode(data, FormatTOML)
}

// Decode decodes a catalog in the given format.
func Decode(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("parsing catalog TOML: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("parsing catalog YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &f, nil
}

// LoadFile reads and decodes the catalog at path, choosing the format by
// extension.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	f, err := Decode(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Source = path
	return f, nil
}

// Builtin returns a fresh copy of the embedded SI catalog.
func Builtin() *File {
	f, err := Parse(builtinTOML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded si.toml: %v", err))
	}
	f.Source = BuiltinSource
	return f
}

// Load returns the catalog at path, or the embedded catalog when path is
// empty.
func Load(path string) (*File, error) {
	if path == "" {
		return Builtin(), nil
	}
	return LoadFile(path)
}

package catalog

import (
	"fmt"
	"io"

	toml "github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"
)

// Encode writes f to w in the given format.
func Encode(w io.Writer, f *File, format Format) error {
	switch format {
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encoding catalog TOML: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encoding catalog YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding catalog YAML: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return nil
}

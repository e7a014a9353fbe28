// Package catalog declares unit families in TOML (or YAML) files and
// installs them into an index. The module embeds an SI catalog that covers
// the base quantities and the common derived ones.
package catalog

// File is a parsed catalog.
type File struct {
	Families []FamilySpec `toml:"family" yaml:"family"`
	Source   string       `toml:"-" yaml:"-"` // Path or name for error context
}

// FamilySpec declares one quantity family and its units. The first unit
// becomes the family's standard unit.
type FamilySpec struct {
	Name        string     `toml:"name" yaml:"name"`
	Dimension   string     `toml:"dimension" yaml:"dimension"` // SI notation, e.g. "kgm2/s2"
	Description string     `toml:"description,omitempty" yaml:"description,omitempty"`
	Units       []UnitSpec `toml:"unit" yaml:"unit"`
}

// UnitSpec declares one unit of a family.
type UnitSpec struct {
	ID            string   `toml:"id" yaml:"id"`
	Name          string   `toml:"name" yaml:"name"`
	Display       string   `toml:"display,omitempty" yaml:"display,omitempty"`
	Textual       string   `toml:"textual,omitempty" yaml:"textual,omitempty"`
	Abbreviations []string `toml:"abbreviations,omitempty" yaml:"abbreviations,omitempty"`
	Factor        *float64 `toml:"factor,omitempty" yaml:"factor,omitempty"`           // nil = 1
	Offset        float64  `toml:"offset,omitempty" yaml:"offset,omitempty"`           // Added before the factor
	RelativeTo    string   `toml:"relative_to,omitempty" yaml:"relative_to,omitempty"` // Factor is relative to this earlier unit
	Prefixes      string   `toml:"prefixes,omitempty" yaml:"prefixes,omitempty"`       // none|unit|unit_positive|kilo
	System        string   `toml:"system,omitempty" yaml:"system,omitempty"`
}

// FactorOrOne returns the declared factor, or 1 when none is set.
func (u UnitSpec) FactorOrOne() float64 {
	if u.Factor == nil {
		return 1
	}
	return *u.Factor
}

// Report summarizes an Install.
type Report struct {
	Source    string
	Families  int
	Explicit  int // Units declared in the catalog
	Generated int // Prefixed units that survived precedence
}

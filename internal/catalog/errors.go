package catalog

import "errors"

// Sentinel errors for catalog parsing and validation.
var (
	// ErrInvalidCatalog indicates Validate reported at least one problem.
	ErrInvalidCatalog = errors.New("invalid catalog")
	// ErrMissingField indicates a required field (e.g. name, id) is empty.
	ErrMissingField = errors.New("required field missing")
	// ErrBadDimension indicates a family dimension that does not parse.
	ErrBadDimension = errors.New("bad dimension")
	// ErrDuplicateFamily indicates two families share a name.
	ErrDuplicateFamily = errors.New("duplicate family name")
	// ErrDuplicateID indicates two units of one family share an id.
	ErrDuplicateID = errors.New("duplicate unit id")
	// ErrUnknownReference indicates relative_to names no earlier unit.
	ErrUnknownReference = errors.New("relative_to references unknown unit")
	// ErrBadScale indicates a zero factor or an offset where none is allowed.
	ErrBadScale = errors.New("bad scale")
	// ErrUnknownFormat indicates an encoding other than toml or yaml.
	ErrUnknownFormat = errors.New("unknown catalog format")
)

// ValidationCategory classifies a validation error for programmatic handling.
type ValidationCategory string

const (
	ValCatMissingField     ValidationCategory = "missing_field"
	ValCatBadDimension     ValidationCategory = "bad_dimension"
	ValCatDuplicateFamily  ValidationCategory = "duplicate_family"
	ValCatDuplicateID      ValidationCategory = "duplicate_id"
	ValCatUnknownReference ValidationCategory = "unknown_reference"
	ValCatUnknownPrefixes  ValidationCategory = "unknown_prefixes"
	ValCatUnknownSystem    ValidationCategory = "unknown_system"
	ValCatBadScale         ValidationCategory = "bad_scale"
)

// ValidationError records a validation problem with catalog context.
type ValidationError struct {
	Category ValidationCategory
	Source   string
	Family   string
	UnitID   string
	Field    string
	Err      error
}

// Error returns a human-readable string including source, family and unit
// context.
func (e *ValidationError) Error() string {
	s := e.Source
	if s == "" {
		s = "catalog"
	}
	if e.Family != "" {
		s += ": family " + e.Family
	}
	if e.UnitID != "" {
		s += ": unit " + e.UnitID
	}
	return s + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

package unit

import (
	"errors"
	"fmt"
)

// Sentinel errors for unit construction and registration.
var (
	// ErrInvalidUnit indicates a unit spec or derivation is malformed.
	ErrInvalidUnit = errors.New("unit: invalid unit")
	// ErrInvalidFamily indicates a family could not be constructed.
	ErrInvalidFamily = errors.New("unit: invalid family")
	// ErrDuplicateUnit indicates two explicit, or two generated, units
	// claimed the same id or abbreviation within one family.
	ErrDuplicateUnit = errors.New("unit: duplicate registration")
	// ErrUnknownSystem indicates an unrecognized unit system name.
	ErrUnknownSystem = errors.New("unit: unknown unit system")
)

// KeyKind tells which lookup map a registration conflict happened in.
type KeyKind int

const (
	KeyID KeyKind = iota
	KeyAbbreviation
)

// String returns "id" or "abbreviation".
func (k KeyKind) String() string {
	if k == KeyID {
		return "id"
	}
	return "abbreviation"
}

// DuplicateUnitError reports a registration conflict. It signals a broken
// unit catalog, never a runtime condition to recover from.
type DuplicateUnitError struct {
	Family    string
	Kind      KeyKind
	Key       string
	Existing  string // id of the unit already registered under Key
	Incoming  string // id of the unit that was rejected
	Generated bool   // both units were generated
}

// Error returns a human-readable description including the family name.
func (e *DuplicateUnitError) Error() string {
	origin := "explicit"
	if e.Generated {
		origin = "generated"
	}
	return fmt.Sprintf("unit: %s unit with %s %q already registered for family %s (existing %q, incoming %q)",
		origin, e.Kind, e.Key, e.Family, e.Existing, e.Incoming)
}

// Unwrap returns ErrDuplicateUnit for use with errors.Is.
func (e *DuplicateUnitError) Unwrap() error {
	return ErrDuplicateUnit
}

// Package unit provides concrete units and the per-family unit registry.
//
// A Family owns every unit measuring one kind of quantity (all lengths, all
// masses, ...) together with the dimension vector they share. Units are
// looked up by id or abbreviation; the first unit registered on a family is
// its standard unit, the anchor of every scale conversion.
package unit

import (
	"fmt"
	"slices"
)

// Spec describes a unit to construct with New.
type Spec struct {
	ID      string
	Name    string
	Display string // display abbreviation; defaults to Textual, then ID
	Textual string // typed abbreviation; defaults to Display

	Abbreviations []string // additional abbreviations
	Scale         Scale
	System        System
	Generated     bool
}

// Unit is one concrete unit of a Family.
type Unit struct {
	id            string
	name          string
	display       string
	textual       string
	abbreviations []string
	scale         Scale
	system        System
	generated     bool
	family        *Family
}

// New validates spec and returns a unit bound to family f. The unit is not
// registered; pass it to f.Register.
func New(f *Family, spec Spec) (*Unit, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: %q has no family", ErrInvalidUnit, spec.ID)
	}
	if spec.ID == "" {
		return nil, fmt.Errorf("%w: empty id in family %s", ErrInvalidUnit, f.name)
	}
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: %s.%s has an empty name", ErrInvalidUnit, f.name, spec.ID)
	}
	if spec.Scale.Factor == 0 {
		return nil, fmt.Errorf("%w: %s.%s has a zero scale factor", ErrInvalidUnit, f.name, spec.ID)
	}
	system := spec.System
	if system == "" {
		system = Other
	}

	display := spec.Display
	if display == "" {
		display = spec.Textual
	}
	if display == "" {
		display = spec.ID
	}
	textual := spec.Textual
	if textual == "" {
		textual = display
	}

	abbreviations := []string{display}
	for _, a := range append([]string{textual}, spec.Abbreviations...) {
		if a != "" && !slices.Contains(abbreviations, a) {
			abbreviations = append(abbreviations, a)
		}
	}

	return &Unit{
		id:            spec.ID,
		name:          spec.Name,
		display:       display,
		textual:       textual,
		abbreviations: abbreviations,
		scale:         spec.Scale,
		system:        system,
		generated:     spec.Generated,
		family:        f,
	}, nil
}

func (u *Unit) ID() string   { return u.id }
func (u *Unit) Name() string { return u.name }

// DisplayAbbreviation returns the abbreviation used when printing values.
func (u *Unit) DisplayAbbreviation() string { return u.display }

// TextualAbbreviation returns the ASCII abbreviation, e.g. "mum" for "μm".
func (u *Unit) TextualAbbreviation() string { return u.textual }

// Abbreviations returns every abbreviation of the unit, display first.
func (u *Unit) Abbreviations() []string {
	return slices.Clone(u.abbreviations)
}

func (u *Unit) Scale() Scale      { return u.scale }
func (u *Unit) System() System    { return u.system }
func (u *Unit) Family() *Family   { return u.family }
func (u *Unit) IsGenerated() bool { return u.generated }

// ScaleFactor returns the multiplier from this unit to the standard unit.
func (u *Unit) ScaleFactor() float64 {
	return u.scale.Factor
}

// StandardUnit returns the standard unit of the unit's family.
func (u *Unit) StandardUnit() *Unit {
	return u.family.StandardUnit()
}

// ToStandard converts v from this unit into the family's standard unit.
func (u *Unit) ToStandard(v float64) float64 {
	return u.scale.ToStandard(v)
}

// FromStandard converts v from the family's standard unit into this unit.
func (u *Unit) FromStandard(v float64) float64 {
	return u.scale.FromStandard(v)
}

// String returns the display abbreviation.
func (u *Unit) String() string {
	return u.display
}

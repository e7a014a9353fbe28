package unit

import (
	"fmt"
	"strings"

	"github.com/papapumpkin/unitary/internal/prefix"
)

// DeriveSI returns a copy of u with the SI prefix e applied to its id,
// name and abbreviations, and its factor scaled by e.Factor: DeriveSI of
// meter with kilo is kilometer, "km", factor 1000. The result is not
// registered.
func (u *Unit) DeriveSI(e prefix.Entry, generated bool) (*Unit, error) {
	if !u.scale.IsLinear() {
		return nil, fmt.Errorf("%w: cannot prefix %s.%s, scale has an offset", ErrInvalidUnit, u.family.name, u.id)
	}
	abbreviations := make([]string, 0, len(u.abbreviations))
	for _, a := range u.abbreviations {
		abbreviations = append(abbreviations, e.Textual+a)
	}
	return New(u.family, Spec{
		ID:            e.Textual + u.id,
		Name:          e.Name + u.name,
		Display:       e.Display + u.display,
		Textual:       e.Textual + u.textual,
		Abbreviations: abbreviations,
		Scale:         Linear(e.Factor * u.scale.Factor),
		System:        u.system,
		Generated:     generated,
	})
}

// DeriveSIKilo is DeriveSI for a unit that already carries the kilo prefix.
// The leading "k" (and "kilo" in the name) is replaced by e, so with
// e.Factor taken from the AroundKilo table kilogram yields gram, milligram
// and megagram.
func (u *Unit) DeriveSIKilo(e prefix.Entry, generated bool) (*Unit, error) {
	if !u.scale.IsLinear() {
		return nil, fmt.Errorf("%w: cannot prefix %s.%s, scale has an offset", ErrInvalidUnit, u.family.name, u.id)
	}
	checks := []struct{ field, value, want string }{
		{"id", u.id, "k"},
		{"display abbreviation", u.display, "k"},
		{"textual abbreviation", u.textual, "k"},
		{"name", u.name, "kilo"},
	}
	for _, a := range u.abbreviations {
		checks = append(checks, struct{ field, value, want string }{"abbreviation", a, "k"})
	}
	for _, c := range checks {
		if !strings.HasPrefix(c.value, c.want) {
			return nil, fmt.Errorf("%w: deriving from kilo unit %s.%s: %s %q should start with %q",
				ErrInvalidUnit, u.family.name, u.id, c.field, c.value, c.want)
		}
	}

	abbreviations := make([]string, 0, len(u.abbreviations))
	for _, a := range u.abbreviations {
		abbreviations = append(abbreviations, e.Textual+a[1:])
	}
	return New(u.family, Spec{
		ID:            e.Textual + u.id[1:],
		Name:          e.Name + u.name[len("kilo"):],
		Display:       e.Display + u.display[1:],
		Textual:       e.Textual + u.textual[1:],
		Abbreviations: abbreviations,
		Scale:         Linear(e.Factor * u.scale.Factor),
		System:        u.system,
		Generated:     generated,
	})
}

// DeriveLinear returns a new explicit unit of u's family whose factor is
// factor times u's factor, e.g. a foot derived from an inch with factor 12.
// The spec's Scale is ignored; System defaults to u's system.
func (u *Unit) DeriveLinear(factor float64, spec Spec) (*Unit, error) {
	if !u.scale.IsLinear() {
		return nil, fmt.Errorf("%w: cannot derive from %s.%s, scale has an offset", ErrInvalidUnit, u.family.name, u.id)
	}
	spec.Scale = Linear(factor * u.scale.Factor)
	if spec.System == "" {
		spec.System = u.system
	}
	return New(u.family, spec)
}

// derivePrefixed expands u according to mode.
func (u *Unit) derivePrefixed(mode prefix.Mode) ([]*Unit, error) {
	if !mode.Generates() {
		return nil, nil
	}
	entries := prefix.Entries(mode.Variant())
	out := make([]*Unit, 0, len(entries))
	for _, e := range entries {
		var (
			d   *Unit
			err error
		)
		if mode == prefix.Kilo {
			d, err = u.DeriveSIKilo(e, true)
		} else {
			d, err = u.DeriveSI(e, true)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

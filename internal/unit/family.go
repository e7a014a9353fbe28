package unit

import (
	"fmt"
	"strings"
	"sync"

	"github.com/papapumpkin/unitary/internal/dimension"
	"github.com/papapumpkin/unitary/internal/prefix"
)

// Entry is one key of a family's lookup map, as returned by the snapshot
// accessors.
type Entry struct {
	Key  string
	Unit *Unit
}

// Family is the registry of all units of one quantity family. It is created
// empty; the first successful Register makes it active and fixes its
// standard unit for the rest of its lifetime.
//
// Families are meant to be filled during start-up and read afterwards.
// Lookups are safe for concurrent use; concurrent registration is not a
// supported pattern even though it is serialized.
type Family struct {
	name string
	dim  dimension.Vector

	mu       sync.RWMutex
	byID     *ordered
	byAbbr   *ordered
	standard *Unit
}

// NewFamily returns an empty family. name is the stable identifier the
// family is published under.
func NewFamily(name string, dim dimension.Vector) (*Family, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidFamily)
	}
	return &Family{
		name:   name,
		dim:    dim,
		byID:   newOrdered(),
		byAbbr: newOrdered(),
	}, nil
}

// NewFamilyFromString is NewFamily with the dimension given in SI notation.
func NewFamilyFromString(name, dim string) (*Family, error) {
	v, err := dimension.Parse(dim)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFamily, name, err)
	}
	return NewFamily(name, v)
}

func (f *Family) Name() string { return f.name }

// Dimension returns the dimension vector shared by every unit of the family.
func (f *Family) Dimension() dimension.Vector { return f.dim }

// StandardUnit returns the first unit ever registered, or nil while the
// family is empty.
func (f *Family) StandardUnit() *Unit {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.standard
}

// Active reports whether a standard unit has been registered.
func (f *Family) Active() bool {
	return f.StandardUnit() != nil
}

// Register adds u to the family and, when mode asks for it, one generated
// unit per entry of the mode's prefix table. Generated units are inserted
// before u so that u, being explicit, wins any key they share.
//
// At every key (the id and each abbreviation) an explicit unit replaces a
// generated one and a generated unit never replaces an explicit one. Two
// explicit or two generated units at one key fail with a
// *DuplicateUnitError. Registration is atomic: on error the family is left
// unchanged.
func (f *Family) Register(u *Unit, mode prefix.Mode) error {
	if u == nil {
		return fmt.Errorf("%w: nil unit for family %s", ErrInvalidUnit, f.name)
	}
	if u.family != f {
		return fmt.Errorf("%w: %s belongs to another family than %s", ErrInvalidUnit, u.id, f.name)
	}

	units, err := u.derivePrefixed(mode)
	if err != nil {
		return err
	}
	units = append(units, u)

	f.mu.Lock()
	defer f.mu.Unlock()

	byID, byAbbr := f.byID.clone(), f.byAbbr.clone()
	for _, x := range units {
		if err := f.place(byID, KeyID, x.id, x); err != nil {
			return err
		}
		for _, a := range x.abbreviations {
			if err := f.place(byAbbr, KeyAbbreviation, a, x); err != nil {
				return err
			}
		}
	}

	f.byID, f.byAbbr = byID, byAbbr
	if f.standard == nil {
		f.standard = u
	}
	return nil
}

// place applies the explicit-over-generated precedence rule at one key.
func (f *Family) place(m *ordered, kind KeyKind, key string, u *Unit) error {
	existing, ok := m.get(key)
	if !ok {
		m.set(key, u)
		return nil
	}
	if existing.generated == u.generated {
		return &DuplicateUnitError{
			Family:    f.name,
			Kind:      kind,
			Key:       key,
			Existing:  existing.id,
			Incoming:  u.id,
			Generated: u.generated,
		}
	}
	if !u.generated {
		m.set(key, u)
	}
	return nil
}

// Unregister removes u from every key where it is the stored unit. It is a
// no-op for units that are not registered. The standard unit is kept even
// when it is the one removed.
func (f *Family) Unregister(u *Unit) {
	if u == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if cur, ok := f.byID.get(u.id); ok && cur == u {
		f.byID.delete(u.id)
	}
	for _, a := range u.abbreviations {
		if cur, ok := f.byAbbr.get(a); ok && cur == u {
			f.byAbbr.delete(a)
		}
	}
}

// ByID returns the unit registered under id, or nil.
func (f *Family) ByID(id string) *Unit {
	f.mu.RLock()
	defer f.mu.RUnlock()
	u, _ := f.byID.get(id)
	return u
}

// ByAbbreviation returns the unit registered under the exact abbreviation,
// or nil.
func (f *Family) ByAbbreviation(abbreviation string) *Unit {
	f.mu.RLock()
	defer f.mu.RUnlock()
	u, _ := f.byAbbr.get(abbreviation)
	return u
}

var abbreviationNoise = strings.NewReplacer(" ", "", ".", "", "^", "")

// Lookup resolves free-form text to a unit. It tries the exact
// abbreviation, then the abbreviation with spaces, "." and "^" removed, and
// finally parses the text as SI notation, returning the standard unit when
// the parsed dimension equals the family's. It returns nil when nothing
// matches.
func (f *Family) Lookup(text string) *Unit {
	if u := f.ByAbbreviation(text); u != nil {
		return u
	}
	stripped := abbreviationNoise.Replace(text)
	if u := f.ByAbbreviation(stripped); u != nil {
		return u
	}
	dim, err := dimension.Parse(stripped)
	if err != nil || dim != f.dim {
		return nil
	}
	return f.StandardUnit()
}

// UnitsByID returns a snapshot of the id map in registration order.
func (f *Family) UnitsByID() []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.byID.entries()
}

// UnitsByAbbreviation returns a snapshot of the abbreviation map in
// registration order.
func (f *Family) UnitsByAbbreviation() []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.byAbbr.entries()
}

// Units returns the registered units in id order of registration.
func (f *Family) Units() []*Unit {
	entries := f.UnitsByID()
	out := make([]*Unit, len(entries))
	for i, e := range entries {
		out[i] = e.Unit
	}
	return out
}

// Len returns the number of registered ids.
func (f *Family) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.byID.keys)
}

func (f *Family) String() string {
	return f.name + " " + f.dim.Format(true, true)
}

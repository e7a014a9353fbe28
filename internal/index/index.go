// Package index maps family names and dimension vectors to the unit
// families published under them. Several families may share one dimension:
// Energy and Torque are both kgm2/s2.
package index

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/papapumpkin/unitary/internal/dimension"
	"github.com/papapumpkin/unitary/internal/unit"
)

var (
	// ErrFamilyInactive is returned when publishing a family that has no
	// standard unit yet.
	ErrFamilyInactive = errors.New("family has no registered units")
	// ErrUnitNotFound is returned by Resolve when no family knows the text.
	ErrUnitNotFound = errors.New("unit not found")
)

// AmbiguousUnitError is returned by Resolve when an unqualified
// abbreviation is known to more than one family.
type AmbiguousUnitError struct {
	Text     string
	Families []string
}

func (e *AmbiguousUnitError) Error() string {
	return fmt.Sprintf("unit %q is ambiguous: found in %s (qualify as Family:%s)",
		e.Text, strings.Join(e.Families, ", "), e.Text)
}

// Index holds published families. The zero value is not usable; call New.
type Index struct {
	mu          sync.RWMutex
	byName      map[string]*unit.Family
	byDimension map[dimension.Vector][]*unit.Family
}

// New returns an empty index.
func New() *Index {
	return &Index{
		byName:      make(map[string]*unit.Family),
		byDimension: make(map[dimension.Vector][]*unit.Family),
	}
}

var (
	defaultOnce  sync.Once
	defaultIndex *Index
)

// Default returns the process-wide index. It is created on first use and
// lives for the rest of the process.
func Default() *Index {
	defaultOnce.Do(func() { defaultIndex = New() })
	return defaultIndex
}

// Publish makes f reachable by name and by dimension. A family published
// under an existing name replaces the previous one in the name mapping;
// the dimension buckets only ever grow.
func (x *Index) Publish(f *unit.Family) error {
	if f == nil {
		return fmt.Errorf("%w: nil family", unit.ErrInvalidFamily)
	}
	if !f.Active() {
		return fmt.Errorf("%w: %s", ErrFamilyInactive, f.Name())
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	x.byName[f.Name()] = f
	bucket := x.byDimension[f.Dimension()]
	if !slices.Contains(bucket, f) {
		x.byDimension[f.Dimension()] = append(bucket, f)
	}
	return nil
}

// FamiliesFor returns the families published under dim in publication
// order. The slice is a copy and is empty, not nil, when none match.
func (x *Index) FamiliesFor(dim dimension.Vector) []*unit.Family {
	x.mu.RLock()
	defer x.mu.RUnlock()
	out := make([]*unit.Family, len(x.byDimension[dim]))
	copy(out, x.byDimension[dim])
	return out
}

// Family returns the family published under name.
func (x *Index) Family(name string) (*unit.Family, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	f, ok := x.byName[name]
	return f, ok
}

// Families returns every family reachable by name, sorted by name.
func (x *Index) Families() []*unit.Family {
	x.mu.RLock()
	out := make([]*unit.Family, 0, len(x.byName))
	for _, f := range x.byName {
		out = append(out, f)
	}
	x.mu.RUnlock()

	slices.SortFunc(out, func(a, b *unit.Family) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return out
}

// Dimensions returns the dimension vectors that have at least one family,
// ordered by their textual notation.
func (x *Index) Dimensions() []dimension.Vector {
	x.mu.RLock()
	out := make([]dimension.Vector, 0, len(x.byDimension))
	for d := range x.byDimension {
		out = append(out, d)
	}
	x.mu.RUnlock()

	slices.SortFunc(out, func(a, b dimension.Vector) int {
		return strings.Compare(a.Format(true, false), b.Format(true, false))
	})
	return out
}

// Len returns the number of families reachable by name.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.byName)
}

// Resolve finds a unit by free-form text across all families. Text of the
// form "Family:abbr" is looked up in that family only. Unqualified text
// must match in exactly one family; otherwise Resolve returns
// ErrUnitNotFound or an *AmbiguousUnitError.
func (x *Index) Resolve(text string) (*unit.Unit, error) {
	if name, abbr, ok := strings.Cut(text, ":"); ok {
		f, found := x.Family(name)
		if !found {
			return nil, fmt.Errorf("%w: no family %q", ErrUnitNotFound, name)
		}
		if u := f.Lookup(abbr); u != nil {
			return u, nil
		}
		return nil, fmt.Errorf("%w: %q in family %s", ErrUnitNotFound, abbr, name)
	}

	var (
		found []*unit.Unit
		names []string
	)
	for _, f := range x.Families() {
		if u := f.ByAbbreviation(text); u != nil {
			found = append(found, u)
			names = append(names, f.Name())
		}
	}
	if len(found) == 0 {
		// Fall back to the normalizing lookup, which also accepts SI
		// notation for a family's standard unit.
		for _, f := range x.Families() {
			if u := f.Lookup(text); u != nil {
				found = append(found, u)
				names = append(names, f.Name())
			}
		}
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrUnitNotFound, text)
	case 1:
		return found[0], nil
	default:
		return nil, &AmbiguousUnitError{Text: text, Families: names}
	}
}

// Package quantity pairs values with units and combines them through the
// dimension algebra. Multiplying or dividing two quantities yields a
// Derived value whose dimension is looked up in an index to find the
// families it can be expressed in.
package quantity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/papapumpkin/unitary/internal/dimension"
	"github.com/papapumpkin/unitary/internal/index"
	"github.com/papapumpkin/unitary/internal/unit"
)

var (
	// ErrIncompatible indicates an operation across different families.
	ErrIncompatible = errors.New("incompatible units")
	// ErrNoFamily indicates a derived dimension no published family has.
	ErrNoFamily = errors.New("no family for dimension")
	// ErrAmbiguousFamily indicates a derived dimension shared by several
	// families, e.g. Energy and Torque.
	ErrAmbiguousFamily = errors.New("dimension matches several families")
	// ErrBadQuantity indicates text that is not "<number> <unit>".
	ErrBadQuantity = errors.New("bad quantity")
)

// Quantity is a value expressed in a unit.
type Quantity struct {
	Value float64
	Unit  *unit.Unit
}

// New returns v expressed in u.
func New(v float64, u *unit.Unit) Quantity {
	return Quantity{Value: v, Unit: u}
}

// SI returns the value in the family's standard unit.
func (q Quantity) SI() float64 {
	return q.Unit.ToStandard(q.Value)
}

func (q Quantity) Family() *unit.Family { return q.Unit.Family() }

func (q Quantity) Dimension() dimension.Vector { return q.Unit.Family().Dimension() }

// In converts q into target, which must belong to the same family.
func (q Quantity) In(target *unit.Unit) (Quantity, error) {
	if target.Family() != q.Unit.Family() {
		return Quantity{}, fmt.Errorf("%w: %s is %s, %s is %s", ErrIncompatible,
			q.Unit.ID(), q.Unit.Family().Name(), target.ID(), target.Family().Name())
	}
	return Quantity{Value: target.FromStandard(q.SI()), Unit: target}, nil
}

// Add returns q + o in q's unit. Offset scales are converted as absolute
// values, so 10 °C + 283.15 K is 20 °C.
func (q Quantity) Add(o Quantity) (Quantity, error) {
	c, err := o.In(q.Unit)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: q.Value + c.Value, Unit: q.Unit}, nil
}

// Sub returns q - o in q's unit.
func (q Quantity) Sub(o Quantity) (Quantity, error) {
	c, err := o.In(q.Unit)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: q.Value - c.Value, Unit: q.Unit}, nil
}

func (q Quantity) String() string {
	return strconv.FormatFloat(q.Value, 'g', -1, 64) + " " + q.Unit.DisplayAbbreviation()
}

// Derived is the result of multiplying or dividing quantities before it is
// assigned a family. Families lists every published family with the
// derived dimension, in publication order.
type Derived struct {
	SI        float64
	Dimension dimension.Vector
	Families  []*unit.Family
}

// Multiply returns a * b.
func Multiply(idx *index.Index, a, b Quantity) Derived {
	return derive(idx, a.SI()*b.SI(), a.Dimension().Plus(b.Dimension()))
}

// Divide returns a / b. Division by a zero quantity yields an infinite or
// NaN value, as float division does.
func Divide(idx *index.Index, a, b Quantity) Derived {
	return derive(idx, a.SI()/b.SI(), a.Dimension().Minus(b.Dimension()))
}

// Reciprocal returns 1 / a.
func Reciprocal(idx *index.Index, a Quantity) Derived {
	return derive(idx, 1/a.SI(), a.Dimension().Invert())
}

func derive(idx *index.Index, si float64, dim dimension.Vector) Derived {
	return Derived{SI: si, Dimension: dim, Families: idx.FamiliesFor(dim)}
}

// As expresses d in the standard unit of the named candidate family.
func (d Derived) As(family string) (Quantity, error) {
	for _, f := range d.Families {
		if f.Name() == family {
			return d.in(f), nil
		}
	}
	return Quantity{}, fmt.Errorf("%w: %s is not a family of %s", ErrNoFamily, family, d.Dimension.Format(true, false))
}

// Only expresses d in its single candidate family.
func (d Derived) Only() (Quantity, error) {
	switch len(d.Families) {
	case 0:
		return Quantity{}, fmt.Errorf("%w: %s", ErrNoFamily, d.Dimension.Format(true, false))
	case 1:
		return d.in(d.Families[0]), nil
	default:
		names := make([]string, len(d.Families))
		for i, f := range d.Families {
			names[i] = f.Name()
		}
		return Quantity{}, fmt.Errorf("%w: %s is %s", ErrAmbiguousFamily,
			d.Dimension.Format(true, false), strings.Join(names, " or "))
	}
}

func (d Derived) in(f *unit.Family) Quantity {
	std := f.StandardUnit()
	return Quantity{Value: std.FromStandard(d.SI), Unit: std}
}

func (d Derived) String() string {
	return strconv.FormatFloat(d.SI, 'g', -1, 64) + " " + d.Dimension.Format(true, false)
}

// Parse reads "<number> <unit>" (the space is optional) and resolves the
// unit in idx.
func Parse(idx *index.Index, text string) (Quantity, error) {
	text = strings.TrimSpace(text)
	v, rest, ok := splitNumber(text)
	if !ok {
		return Quantity{}, fmt.Errorf("%w: %q has no leading number", ErrBadQuantity, text)
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return Quantity{}, fmt.Errorf("%w: %q has no unit", ErrBadQuantity, text)
	}
	u, err := idx.Resolve(rest)
	if err != nil {
		return Quantity{}, err
	}
	return New(v, u), nil
}

// splitNumber returns the longest numeric prefix of text. Backing off one
// byte at a time keeps "5eV" as 5 electronvolt rather than failing on "5e".
func splitNumber(text string) (float64, string, bool) {
	end := 0
	for end < len(text) && strings.IndexByte("0123456789+-.eE", text[end]) >= 0 {
		end++
	}
	for ; end > 0; end-- {
		if v, err := strconv.ParseFloat(text[:end], 64); err == nil {
			return v, text[end:], true
		}
	}
	return 0, text, false
}

// Convert resolves from and to and converts v. The target is looked up in
// the source family first, so a bare abbreviation that other families also
// use still converts.
func Convert(idx *index.Index, v float64, from, to string) (Quantity, error) {
	src, err := idx.Resolve(from)
	if err != nil {
		return Quantity{}, err
	}
	dst := src.Family().Lookup(to)
	if dst == nil {
		if dst, err = idx.Resolve(to); err != nil {
			return Quantity{}, err
		}
	}
	return New(v, src).In(dst)
}

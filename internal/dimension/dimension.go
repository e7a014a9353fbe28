// Package dimension models the dimensionality of a physical quantity as a
// vector of exponents over nine base quantities: angle, solid angle, mass,
// length, time, electric current, temperature, amount of substance and
// luminous intensity. Speed, for example, is length 1 and time -1.
//
// Vectors are immutable values. They are comparable with == and can be used
// directly as map keys.
package dimension

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Count is the number of base dimensions in a Vector.
const Count = 9

// Base identifies one slot of a Vector.
type Base int

const (
	Angle Base = iota
	SolidAngle
	Mass
	Length
	Time
	Current
	Temperature
	AmountOfSubstance
	LuminousIntensity
)

// abbreviations lists the SI abbreviation of each base, in canonical order.
var abbreviations = [Count]string{"rad", "sr", "kg", "m", "s", "A", "K", "mol", "cd"}

// String returns the SI abbreviation of the base.
func (b Base) String() string {
	if b < 0 || int(b) >= Count {
		return "Base(" + strconv.Itoa(int(b)) + ")"
	}
	return abbreviations[b]
}

var (
	// ErrWrongLength is returned when a slice does not hold exactly Count values.
	ErrWrongLength = errors.New("dimension: wrong number of exponents")
	// ErrZeroDenominator is returned when a fractional exponent has a zero denominator.
	ErrZeroDenominator = errors.New("dimension: zero denominator")
	// ErrExponentOverflow is reported when an exponent leaves the int8 range.
	ErrExponentOverflow = errors.New("dimension: exponent overflow")
)

var unitDenominator = [Count]int8{1, 1, 1, 1, 1, 1, 1, 1, 1}

// Vector is the exponent vector of a quantity. The zero value is not a valid
// Vector because its denominator is all zeros; use Zero, New or Parse.
type Vector struct {
	exponents   [Count]int8
	denominator [Count]int8
}

// Zero returns the dimensionless vector.
func Zero() Vector {
	return Vector{denominator: unitDenominator}
}

// New returns the vector with the given exponents and unit denominators.
func New(exponents [Count]int8) Vector {
	return Vector{exponents: exponents, denominator: unitDenominator}
}

// Of builds a vector from one exponent per base, in canonical order. It
// panics if an exponent does not fit in an int8.
func Of(angle, solidAngle, mass, length, time, current, temperature, amount, luminous int) Vector {
	v, err := FromInts([]int{angle, solidAngle, mass, length, time, current, temperature, amount, luminous})
	if err != nil {
		panic(err)
	}
	return v
}

// FromInts builds a vector from a slice of exactly Count exponents.
func FromInts(values []int) (Vector, error) {
	if len(values) != Count {
		return Vector{}, fmt.Errorf("%w: got %d, want %d", ErrWrongLength, len(values), Count)
	}
	var exps [Count]int8
	for i, v := range values {
		if v < math.MinInt8 || v > math.MaxInt8 {
			return Vector{}, fmt.Errorf("%w: %s exponent %d", ErrExponentOverflow, Base(i), v)
		}
		exps[i] = int8(v)
	}
	return New(exps), nil
}

// FromFraction builds a vector whose exponents are numerator[i]/denominator[i].
// Fractional vectors can be stored and compared; the textual parser never
// produces them. Plus, Minus and Invert work on numerators only and return
// vectors with unit denominators, so arithmetic drops the fraction.
func FromFraction(numerator, denominator [Count]int8) (Vector, error) {
	for i, d := range denominator {
		if d == 0 {
			return Vector{}, fmt.Errorf("%w: %s", ErrZeroDenominator, Base(i))
		}
	}
	return Vector{exponents: numerator, denominator: denominator}, nil
}

// Exponent returns the numerator exponent of base b.
func (v Vector) Exponent(b Base) int8 {
	return v.exponents[b]
}

// Exponents returns a copy of the numerator exponents.
func (v Vector) Exponents() [Count]int8 {
	return v.exponents
}

// Denominator returns a copy of the exponent denominators.
func (v Vector) Denominator() [Count]int8 {
	return v.denominator
}

// IsFractional reports whether any exponent has a denominator other than 1.
func (v Vector) IsFractional() bool {
	return v.denominator != unitDenominator
}

// IsZero reports whether v is dimensionless.
func (v Vector) IsZero() bool {
	return v.exponents == [Count]int8{}
}

// Plus returns v with o's exponents added, the dimension of a product.
// Only numerators are added; the result always has unit denominators.
// It panics with an error wrapping ErrExponentOverflow if a sum leaves the
// int8 range.
func (v Vector) Plus(o Vector) Vector {
	return combine(v, o, func(a, b int) int { return a + b })
}

// Minus returns v with o's exponents subtracted, the dimension of a quotient.
// Like Plus it ignores denominators. It panics with an error wrapping ErrExponentOverflow if a difference
// leaves the int8 range.
func (v Vector) Minus(o Vector) Vector {
	return combine(v, o, func(a, b int) int { return a - b })
}

// Invert returns the reciprocal dimension: s/m for m/s. Denominators are
// reset to 1.
func (v Vector) Invert() Vector {
	return combine(Zero(), v, func(_, b int) int { return -b })
}

// Add returns a.Plus(b).
func Add(a, b Vector) Vector {
	return a.Plus(b)
}

// Subtract returns a.Minus(b).
func Subtract(a, b Vector) Vector {
	return a.Minus(b)
}

// combine applies op to the numerators and builds the result with New, which
// resets every denominator to 1.
func combine(a, b Vector, op func(int, int) int) Vector {
	var out [Count]int8
	for i := range out {
		r := op(int(a.exponents[i]), int(b.exponents[i]))
		if r < math.MinInt8 || r > math.MaxInt8 {
			panic(fmt.Errorf("%w: %s exponent %d", ErrExponentOverflow, Base(i), r))
		}
		out[i] = int8(r)
	}
	return New(out)
}

// Format renders v in SI notation. With divided set, negative exponents
// move behind a single "/" ("kgm/s2"); otherwise they are printed inline
// ("kgms-2"). With separator set, successive units are joined by "."
// ("kg.m/s2"). Exponent 1 is never printed, zero exponents are omitted and
// a dimensionless vector prints as "1".
func (v Vector) Format(divided, separator bool) string {
	var sb strings.Builder
	negative := false
	first := true
	for i, e := range v.exponents {
		if e < 0 {
			negative = true
		}
		if (!divided && e != 0) || (divided && e > 0) {
			if !first && separator {
				sb.WriteByte('.')
			}
			first = false
			sb.WriteString(abbreviations[i])
			if e != 1 {
				sb.WriteString(strconv.Itoa(int(e)))
			}
		}
	}
	if sb.Len() == 0 {
		sb.WriteByte('1')
	}
	if !divided || !negative {
		return sb.String()
	}

	sb.WriteByte('/')
	first = true
	for i, e := range v.exponents {
		if e >= 0 {
			continue
		}
		if !first && separator {
			sb.WriteByte('.')
		}
		first = false
		sb.WriteString(abbreviations[i])
		if e < -1 {
			sb.WriteString(strconv.Itoa(-int(e)))
		}
	}
	return sb.String()
}

// String returns the exponent list, e.g. "[0 0 1 1 -2 0 0 0 0]". Fractional
// slots print as "n/d".
func (v Vector) String() string {
	parts := make([]string, Count)
	for i, e := range v.exponents {
		if v.denominator[i] != 1 && e != 0 {
			parts[i] = fmt.Sprintf("%d/%d", e, v.denominator[i])
		} else {
			parts[i] = strconv.Itoa(int(e))
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

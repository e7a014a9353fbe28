package unit

import (
	"fmt"
	"strconv"
)

// Scale converts values between a unit and its family's standard unit:
//
//	standard = (value + Offset) * Factor
//
// Most units are linear (Offset 0). Temperature scales such as Celsius and
// Fahrenheit carry an offset.
type Scale struct {
	Factor float64
	Offset float64
}

// Linear returns a scale without offset.
func Linear(factor float64) Scale {
	return Scale{Factor: factor}
}

// OffsetLinear returns a scale with an offset applied before the factor.
func OffsetLinear(factor, offset float64) Scale {
	return Scale{Factor: factor, Offset: offset}
}

// ToStandard converts v, expressed in this scale, into the standard unit.
func (s Scale) ToStandard(v float64) float64 {
	return (v + s.Offset) * s.Factor
}

// FromStandard converts v, expressed in the standard unit, into this scale.
func (s Scale) FromStandard(v float64) float64 {
	return v/s.Factor - s.Offset
}

// IsLinear reports whether the scale has no offset.
func (s Scale) IsLinear() bool {
	return s.Offset == 0
}

// IsStandard reports whether the scale is the identity.
func (s Scale) IsStandard() bool {
	return s.Factor == 1 && s.Offset == 0
}

func (s Scale) String() string {
	if s.IsLinear() {
		return "x" + strconv.FormatFloat(s.Factor, 'g', -1, 64)
	}
	return fmt.Sprintf("(v%+g)x%g", s.Offset, s.Factor)
}

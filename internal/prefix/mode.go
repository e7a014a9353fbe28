package prefix

import (
	"errors"
	"fmt"
)

// ErrUnknownMode is returned by ParseMode for an unrecognized name.
var ErrUnknownMode = errors.New("prefix: unknown mode")

// Mode selects which prefixed units a registration generates.
type Mode int

const (
	// None generates no prefixed units.
	None Mode = iota
	// Unit generates all twenty prefixes around the unit (km, mm, μm, ...).
	Unit
	// UnitPositive generates deca through yotta only.
	UnitPositive
	// Kilo expands a kilo unit (kg) into its siblings (g, mg, Mg, ...).
	Kilo
)

// Generates reports whether the mode produces any prefixed units.
func (m Mode) Generates() bool {
	return m != None
}

// Variant returns the table expanded by the mode. It is meaningless for None.
func (m Mode) Variant() Variant {
	switch m {
	case UnitPositive:
		return AroundOnePositive
	case Kilo:
		return AroundKilo
	default:
		return AroundOne
	}
}

// String returns the catalog name of the mode.
func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case Unit:
		return "unit"
	case UnitPositive:
		return "unit_positive"
	case Kilo:
		return "kilo"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a catalog name into a Mode. The empty string is None.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "none":
		return None, nil
	case "unit":
		return Unit, nil
	case "unit_positive":
		return UnitPositive, nil
	case "kilo":
		return Kilo, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

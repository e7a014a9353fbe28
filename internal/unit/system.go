package unit

import "fmt"

// System tags the unit system a unit belongs to.
type System string

const (
	SIBase      System = "si_base"
	SIDerived   System = "si_derived"
	SIAccepted  System = "si_accepted"
	Imperial    System = "imperial"
	USCustomary System = "us_customary"
	CGS         System = "cgs"
	Other       System = "other"
)

// ParseSystem validates a unit system name. The empty string is Other.
func ParseSystem(s string) (System, error) {
	switch sys := System(s); sys {
	case "":
		return Other, nil
	case SIBase, SIDerived, SIAccepted, Imperial, USCustomary, CGS, Other:
		return sys, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSystem, s)
	}
}

package dimension

import (
	"errors"
	"strings"
)

// ErrParse is wrapped by every error returned from Parse.
var ErrParse = errors.New("dimension: cannot parse")

// ParseError describes why a dimension string was rejected.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return "dimension: cannot parse " + `"` + e.Input + `"` + ": " + e.Reason
}

// Unwrap returns ErrParse.
func (e *ParseError) Unwrap() error {
	return ErrParse
}

// Parse reads SI notation such as "kgm/s2", "kg.m.s-2" or "1/s". Units must
// appear in canonical order (rad, sr, kg, m, s, A, K, mol, cd), each
// optionally followed by a signed single digit exponent and a "." separator.
// A single "/" separates numerator and denominator; the denominator's
// exponents are subtracted, so "m/m" is dimensionless. "" and "1" parse to
// Zero, and so does an empty side of the "/": "m/" is a length.
func Parse(text string) (Vector, error) {
	parts := strings.Split(text, "/")
	switch len(parts) {
	case 1:
		num, err := parsePart(text, parts[0])
		if err != nil {
			return Vector{}, err
		}
		return New(num), nil
	case 2:
		num, err := parsePart(text, parts[0])
		if err != nil {
			return Vector{}, err
		}
		den, err := parsePart(text, parts[1])
		if err != nil {
			return Vector{}, err
		}
		// Single digits on both sides keep the difference within [-18, 18].
		for i := range num {
			num[i] -= den[i]
		}
		return New(num), nil
	default:
		return Vector{}, &ParseError{Input: text, Reason: "more than one division sign"}
	}
}

// MustParse is like Parse but panics on error. It is meant for package
// level variables holding well-known dimensions.
func MustParse(text string) Vector {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

func parsePart(whole, part string) ([Count]int8, error) {
	var exps [Count]int8
	if part == "" || part == "1" {
		return exps, nil
	}

	rest := part
	for i, abbr := range abbreviations {
		if !strings.HasPrefix(rest, abbr) || shadowed(rest, i) {
			continue
		}
		rest = rest[len(abbr):]
		switch {
		case rest == "":
			exps[i] = 1
		case rest[0] == '-':
			if len(rest) == 1 {
				return exps, &ParseError{Input: whole, Reason: "ends with a minus sign"}
			}
			if !isDigit(rest[1]) {
				return exps, &ParseError{Input: whole, Reason: "minus sign for unit " + abbr + " but no exponent"}
			}
			exps[i] = -int8(rest[1] - '0')
			rest = rest[2:]
		case isDigit(rest[0]):
			exps[i] = int8(rest[0] - '0')
			rest = rest[1:]
		default:
			exps[i] = 1
		}
		// "." may separate successive units, as printed by Format.
		if len(rest) > 1 && rest[0] == '.' {
			rest = rest[1:]
		}
	}
	if rest != "" {
		return exps, &ParseError{Input: whole, Reason: "trailing information " + `"` + rest + `"`}
	}
	return exps, nil
}

// shadowed reports whether text starts with an abbreviation longer than the
// one at position i that comes later in canonical order, so "mol" is never
// read as "m" followed by "ol".
func shadowed(text string, i int) bool {
	for _, later := range abbreviations[i+1:] {
		if len(later) > len(abbreviations[i]) && strings.HasPrefix(text, later) {
			return true
		}
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

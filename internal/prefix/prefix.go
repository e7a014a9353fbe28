// Package prefix holds the static SI prefix tables used to generate
// prefixed units (km, mg, GHz, ...) from a family's explicitly declared
// units.
package prefix

import (
	"errors"
	"fmt"
)

// ErrZeroFactor is returned when a prefix entry is declared with factor 0.
var ErrZeroFactor = errors.New("prefix: factor must not be zero")

// Entry is one SI prefix.
type Entry struct {
	Textual string  // ASCII form used in ids and typed abbreviations, e.g. "mu"
	Display string  // form used for display, e.g. "μ"
	Name    string  // spelled-out prefix, e.g. "micro"
	Factor  float64 // multiplier relative to the unprefixed unit
}

// NewEntry validates and returns a prefix entry.
func NewEntry(textual, display, name string, factor float64) (Entry, error) {
	if factor == 0 {
		return Entry{}, fmt.Errorf("%w: %q", ErrZeroFactor, textual)
	}
	return Entry{Textual: textual, Display: display, Name: name, Factor: factor}, nil
}

// Variant names one of the static prefix tables.
type Variant int

const (
	// AroundOne holds yocto (1e-24) through yotta (1e24) around a base-1 unit.
	AroundOne Variant = iota
	// AroundOnePositive holds deca through yotta only, for units whose small
	// multiples underflow or are meaningless.
	AroundOnePositive
	// AroundKilo holds the same prefixes rescaled for families whose standard
	// unit is itself a kilo multiple (kilogram): "" maps to 1e-3 and "k" to 1.
	AroundKilo
)

// String returns the table name.
func (v Variant) String() string {
	switch v {
	case AroundOne:
		return "around-1"
	case AroundOnePositive:
		return "around-1-positive-only"
	case AroundKilo:
		return "around-1000"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

type table struct {
	order   []string
	entries map[string]Entry
}

func (t table) add(e Entry) table {
	t.order = append(t.order, e.Textual)
	t.entries[e.Textual] = e
	return t
}

var tables = buildTables()

// base lists the twenty SI prefixes from smallest to largest. kilo is the
// factor of the same prefix relative to a kilo standard unit (gram-based
// prefixes of the kilogram). Both columns are literals so every factor is
// the nearest float64 to its power of ten.
var base = []struct {
	textual, display, name string
	factor, kilo           float64
}{
	{"y", "y", "yocto", 1e-24, 1e-27},
	{"z", "z", "zepto", 1e-21, 1e-24},
	{"a", "a", "atto", 1e-18, 1e-21},
	{"f", "f", "femto", 1e-15, 1e-18},
	{"p", "p", "pico", 1e-12, 1e-15},
	{"n", "n", "nano", 1e-9, 1e-12},
	{"mu", "μ", "micro", 1e-6, 1e-9},
	{"m", "m", "milli", 1e-3, 1e-6},
	{"c", "c", "centi", 1e-2, 1e-5},
	{"d", "d", "deci", 1e-1, 1e-4},
	{"da", "da", "deca", 1e1, 1e-2},
	{"h", "h", "hecto", 1e2, 1e-1},
	{"k", "k", "kilo", 1e3, 1},
	{"M", "M", "mega", 1e6, 1e3},
	{"G", "G", "giga", 1e9, 1e6},
	{"T", "T", "tera", 1e12, 1e9},
	{"P", "P", "peta", 1e15, 1e12},
	{"E", "E", "exa", 1e18, 1e15},
	{"Z", "Z", "zetta", 1e21, 1e18},
	{"Y", "Y", "yotta", 1e24, 1e21},
}

func buildTables() map[Variant]table {
	one := table{entries: make(map[string]Entry)}
	positive := table{entries: make(map[string]Entry)}
	kilo := table{entries: make(map[string]Entry)}

	for _, p := range base {
		e := Entry{Textual: p.textual, Display: p.display, Name: p.name, Factor: p.factor}
		one = one.add(e)
		if e.Factor > 1 {
			positive = positive.add(e)
		}
	}

	// The unprefixed unit of a kilo family (gram) sits among the sub-kilo
	// prefixes, between deci and deca.
	for _, p := range base {
		if p.textual == "da" {
			kilo = kilo.add(Entry{Textual: "", Display: "", Name: "", Factor: 1e-3})
		}
		kilo = kilo.add(Entry{Textual: p.textual, Display: p.display, Name: p.name, Factor: p.kilo})
	}

	return map[Variant]table{
		AroundOne:         one,
		AroundOnePositive: positive,
		AroundKilo:        kilo,
	}
}

// Lookup returns the entry for key in the given table.
func Lookup(v Variant, key string) (Entry, bool) {
	t, ok := tables[v]
	if !ok {
		return Entry{}, false
	}
	e, ok := t.entries[key]
	return e, ok
}

// Entries returns a copy of the given table, smallest factor first.
func Entries(v Variant) []Entry {
	t, ok := tables[v]
	if !ok {
		return nil
	}
	out := make([]Entry, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, t.entries[key])
	}
	return out
}

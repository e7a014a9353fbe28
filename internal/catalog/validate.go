package catalog

import (
	"fmt"

	"github.com/papapumpkin/unitary/internal/dimension"
	"github.com/papapumpkin/unitary/internal/prefix"
	"github.com/papapumpkin/unitary/internal/unit"
)

// Validate checks a catalog for structural correctness: required fields,
// parseable dimensions, unique family names and unit ids, known prefix
// modes and systems, usable scales and relative_to references. Collisions
// between abbreviations are only detected by Install.
func Validate(f *File) []ValidationError {
	var errs []ValidationError
	add := func(cat ValidationCategory, family, id, field string, err error) {
		errs = append(errs, ValidationError{
			Category: cat,
			Source:   f.Source,
			Family:   family,
			UnitID:   id,
			Field:    field,
			Err:      err,
		})
	}

	families := make(map[string]bool)
	for i, fam := range f.Families {
		if fam.Name == "" {
			add(ValCatMissingField, fmt.Sprintf("#%d", i+1), "", "name", fmt.Errorf("%w: name", ErrMissingField))
			continue
		}
		if families[fam.Name] {
			add(ValCatDuplicateFamily, fam.Name, "", "name", fmt.Errorf("%w: %q", ErrDuplicateFamily, fam.Name))
		}
		families[fam.Name] = true

		if _, err := dimension.Parse(fam.Dimension); err != nil {
			add(ValCatBadDimension, fam.Name, "", "dimension", fmt.Errorf("%w: %w", ErrBadDimension, err))
		}
		if len(fam.Units) == 0 {
			add(ValCatMissingField, fam.Name, "", "unit", fmt.Errorf("%w: at least one unit", ErrMissingField))
		}

		seen := make(map[string]UnitSpec)
		for _, u := range fam.Units {
			if u.ID == "" {
				add(ValCatMissingField, fam.Name, "", "id", fmt.Errorf("%w: id", ErrMissingField))
				continue
			}
			if u.Name == "" {
				add(ValCatMissingField, fam.Name, u.ID, "name", fmt.Errorf("%w: name", ErrMissingField))
			}
			if _, dup := seen[u.ID]; dup {
				add(ValCatDuplicateID, fam.Name, u.ID, "id", fmt.Errorf("%w: %q", ErrDuplicateID, u.ID))
			}

			mode, err := prefix.ParseMode(u.Prefixes)
			if err != nil {
				add(ValCatUnknownPrefixes, fam.Name, u.ID, "prefixes", err)
			}
			if _, err := unit.ParseSystem(u.System); err != nil {
				add(ValCatUnknownSystem, fam.Name, u.ID, "system", err)
			}

			if u.FactorOrOne() == 0 {
				add(ValCatBadScale, fam.Name, u.ID, "factor", fmt.Errorf("%w: factor must not be zero", ErrBadScale))
			}
			if u.Offset != 0 && mode.Generates() {
				add(ValCatBadScale, fam.Name, u.ID, "offset", fmt.Errorf("%w: prefixes %s on a scale with an offset", ErrBadScale, mode))
			}
			if u.RelativeTo != "" {
				ref, ok := seen[u.RelativeTo]
				switch {
				case !ok:
					add(ValCatUnknownReference, fam.Name, u.ID, "relative_to",
						fmt.Errorf("%w: %q is not declared before %q", ErrUnknownReference, u.RelativeTo, u.ID))
				case ref.Offset != 0 || u.Offset != 0:
					add(ValCatBadScale, fam.Name, u.ID, "relative_to",
						fmt.Errorf("%w: relative_to cannot combine with an offset", ErrBadScale))
				}
			}
			seen[u.ID] = u
		}
	}
	return errs
}

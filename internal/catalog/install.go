package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/papapumpkin/unitary/internal/index"
	"github.com/papapumpkin/unitary/internal/prefix"
	"github.com/papapumpkin/unitary/internal/telemetry"
	"github.com/papapumpkin/unitary/internal/unit"
)

// Option configures Install and Watcher.
type Option func(*options)

type options struct {
	emitter  *telemetry.Emitter
	debounce time.Duration
}

// WithEmitter records registration events on e.
func WithEmitter(e *telemetry.Emitter) Option {
	return func(o *options) { o.emitter = e }
}

// WithDebounce sets how long a Watcher waits after the last write before
// reloading. The default is 100ms.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.debounce = d
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{debounce: 100 * time.Millisecond}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Install validates f, builds its families, registers their units in
// declaration order and publishes the families into idx. Nothing is
// published unless every family builds: a registration conflict aborts
// with the *unit.DuplicateUnitError.
func Install(ctx context.Context, idx *index.Index, f *File, opts ...Option) (Report, error) {
	o := buildOptions(opts)
	report := Report{Source: f.Source}

	if verrs := Validate(f); len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i := range verrs {
			errs[i] = &verrs[i]
		}
		return report, fmt.Errorf("%w: %s: %w", ErrInvalidCatalog, sourceName(f), errors.Join(errs...))
	}

	families := make([]*unit.Family, 0, len(f.Families))
	for _, spec := range f.Families {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		fam, explicit, err := buildFamily(spec, f.Source, o.emitter)
		if err != nil {
			return report, fmt.Errorf("%s: %w", sourceName(f), err)
		}
		families = append(families, fam)
		report.Explicit += explicit
		report.Generated += fam.Len() - explicit
	}

	for _, fam := range families {
		if err := idx.Publish(fam); err != nil {
			return report, fmt.Errorf("%s: %w", sourceName(f), err)
		}
		report.Families++
		_ = o.emitter.Emit(telemetry.Event{
			Kind:   telemetry.KindFamilyPublished,
			Source: f.Source,
			Family: fam.Name(),
			Data: map[string]any{
				"dimension": fam.Dimension().Format(true, false),
				"standard":  fam.StandardUnit().ID(),
				"units":     fam.Len(),
			},
		})
	}

	_ = o.emitter.Emit(telemetry.Event{
		Kind:   telemetry.KindCatalogLoaded,
		Source: f.Source,
		Data: map[string]int{
			"families":  report.Families,
			"explicit":  report.Explicit,
			"generated": report.Generated,
		},
	})
	return report, nil
}

// buildFamily constructs one family from a validated spec. It returns the
// number of explicit units registered.
func buildFamily(spec FamilySpec, source string, em *telemetry.Emitter) (*unit.Family, int, error) {
	fam, err := unit.NewFamilyFromString(spec.Name, spec.Dimension)
	if err != nil {
		return nil, 0, err
	}

	built := make(map[string]*unit.Unit, len(spec.Units))
	for _, us := range spec.Units {
		u, mode, err := buildUnit(fam, built, us)
		if err != nil {
			return nil, 0, err
		}
		if err := fam.Register(u, mode); err != nil {
			var dup *unit.DuplicateUnitError
			if errors.As(err, &dup) {
				_ = em.Emit(telemetry.Event{
					Kind:   telemetry.KindUnitConflict,
					Source: source,
					Family: spec.Name,
					Data:   dup,
				})
			}
			return nil, 0, err
		}
		built[us.ID] = u
		_ = em.Emit(telemetry.Event{
			Kind:   telemetry.KindUnitRegistered,
			Source: source,
			Family: spec.Name,
			Data: map[string]any{
				"id":       u.ID(),
				"scale":    u.Scale().String(),
				"prefixes": mode.String(),
			},
		})
	}
	return fam, len(spec.Units), nil
}

func buildUnit(fam *unit.Family, built map[string]*unit.Unit, us UnitSpec) (*unit.Unit, prefix.Mode, error) {
	mode, err := prefix.ParseMode(us.Prefixes)
	if err != nil {
		return nil, prefix.None, err
	}
	system, err := unit.ParseSystem(us.System)
	if err != nil {
		return nil, prefix.None, err
	}
	spec := unit.Spec{
		ID:            us.ID,
		Name:          us.Name,
		Display:       us.Display,
		Textual:       us.Textual,
		Abbreviations: us.Abbreviations,
		Scale:         unit.OffsetLinear(us.FactorOrOne(), us.Offset),
		System:        system,
	}
	if us.RelativeTo == "" {
		u, err := unit.New(fam, spec)
		return u, mode, err
	}
	ref, ok := built[us.RelativeTo]
	if !ok {
		return nil, prefix.None, fmt.Errorf("%w: %q", ErrUnknownReference, us.RelativeTo)
	}
	if us.System == "" {
		spec.System = "" // inherit from ref
	}
	u, err := ref.DeriveLinear(us.FactorOrOne(), spec)
	return u, mode, err
}

func sourceName(f *File) string {
	if f.Source == "" {
		return "catalog"
	}
	return f.Source
}

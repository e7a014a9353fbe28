// Package ui renders unitary's terminal output: dimension reports, family
// and unit tables, conversions and diagnostics.
package ui

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/papapumpkin/unitary/internal/catalog"
	"github.com/papapumpkin/unitary/internal/dimension"
	"github.com/papapumpkin/unitary/internal/quantity"
	"github.com/papapumpkin/unitary/internal/store"
	"github.com/papapumpkin/unitary/internal/unit"
)

// Printer writes results to Out and status or diagnostics to Err.
type Printer struct {
	Out io.Writer
	Err io.Writer
	// Separator selects the "kg.m/s2" dimension notation over "kgm/s2".
	Separator bool
}

func New() *Printer {
	return &Printer{Out: os.Stdout, Err: os.Stderr}
}

func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.Err, "%s %s\n", styleError.Render("error:"), msg)
}

func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.Err, styleMuted.Render(msg))
}

func (p *Printer) Success(msg string) {
	fmt.Fprintf(p.Err, "%s %s\n", styleSuccess.Render(iconOK), msg)
}

func (p *Printer) dim(v dimension.Vector) string {
	return v.Format(true, p.Separator)
}

// Dimension prints every notation of v and the families that share it.
func (p *Printer) Dimension(v dimension.Vector, families []*unit.Family) {
	fmt.Fprintf(p.Out, "%s\n", styleDimension.Render(p.dim(v)))
	fmt.Fprintf(p.Out, "  divided:    %s\n", v.Format(true, false))
	fmt.Fprintf(p.Out, "  separated:  %s\n", v.Format(true, true))
	fmt.Fprintf(p.Out, "  exponents:  %s\n", v.Format(false, false))
	fmt.Fprintf(p.Out, "  vector:     %s\n", v.String())
	if len(families) == 0 {
		fmt.Fprintf(p.Out, "  families:   %s\n", styleMuted.Render("(none)"))
		return
	}
	names := make([]string, len(families))
	for i, f := range families {
		names[i] = styleFamily.Render(f.Name())
	}
	fmt.Fprintf(p.Out, "  families:   %s\n", strings.Join(names, ", "))
}

// Families prints one row per family: name, dimension, standard unit and
// number of registered ids.
func (p *Printer) Families(families []*unit.Family) {
	if len(families) == 0 {
		fmt.Fprintln(p.Out, styleMuted.Render("(no families)"))
		return
	}
	nameW, dimW := len("FAMILY"), len("DIMENSION")
	for _, f := range families {
		nameW = max(nameW, len(f.Name()))
		dimW = max(dimW, len(p.dim(f.Dimension())))
	}
	fmt.Fprintln(p.Out, styleHeading.Render(fmt.Sprintf("%-*s  %-*s  %-10s  %s", nameW, "FAMILY", dimW, "DIMENSION", "STANDARD", "UNITS")))
	for _, f := range families {
		fmt.Fprintf(p.Out, "%s  %s  %-10s  %s\n",
			styleFamily.Render(fmt.Sprintf("%-*s", nameW, f.Name())),
			styleDimension.Render(fmt.Sprintf("%-*s", dimW, p.dim(f.Dimension()))),
			f.StandardUnit().DisplayAbbreviation(),
			humanize.Comma(int64(f.Len())))
	}
}

// Units prints the units of f in registration order. Generated units are
// listed only when showGenerated is set.
func (p *Printer) Units(f *unit.Family, showGenerated bool) {
	fmt.Fprintf(p.Out, "%s %s\n", styleHeading.Render(f.Name()), styleDimension.Render(p.dim(f.Dimension())))

	var rows [][]string
	hidden := 0
	for _, u := range f.Units() {
		if u.IsGenerated() && !showGenerated {
			hidden++
			continue
		}
		rows = append(rows, []string{u.ID(), u.DisplayAbbreviation(), u.Name(), FormatScale(u.Scale()), string(u.System())})
	}
	widths := []int{len("ID"), len("ABBR"), len("NAME"), len("SCALE")}
	for _, r := range rows {
		for i := range widths {
			widths[i] = max(widths[i], len([]rune(r[i])))
		}
	}
	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", w-len([]rune(s)))
	}
	fmt.Fprintln(p.Out, styleHeading.Render(
		pad("ID", widths[0])+"  "+pad("ABBR", widths[1])+"  "+pad("NAME", widths[2])+"  "+pad("SCALE", widths[3])+"  SYSTEM"))
	for _, r := range rows {
		line := pad(r[0], widths[0]) + "  " + pad(r[1], widths[1]) + "  " + pad(r[2], widths[2]) + "  " + pad(r[3], widths[3]) + "  " + r[4]
		fmt.Fprintln(p.Out, line)
	}
	if hidden > 0 {
		fmt.Fprintln(p.Out, styleMuted.Render(fmt.Sprintf("(%s generated units hidden; use --generated)", humanize.Comma(int64(hidden)))))
	}
}

// Conversion prints "from → to".
func (p *Printer) Conversion(from, to quantity.Quantity) {
	fmt.Fprintf(p.Out, "%s %s %s\n", p.quantity(from), styleMuted.Render(iconArrow), p.quantity(to))
}

// Derived prints a product or quotient and the families it can be
// expressed in.
func (p *Printer) Derived(d quantity.Derived) {
	fmt.Fprintf(p.Out, "%s %s\n", styleValue.Render(FormatNumber(d.SI)), styleDimension.Render(p.dim(d.Dimension)))
	for _, f := range d.Families {
		fmt.Fprintf(p.Out, "  %s %s %s\n", iconBullet, styleFamily.Render(f.Name()),
			styleMuted.Render("("+f.StandardUnit().DisplayAbbreviation()+")"))
	}
	if len(d.Families) == 0 {
		fmt.Fprintf(p.Out, "  %s\n", styleMuted.Render("no published family has this dimension"))
	}
}

func (p *Printer) quantity(q quantity.Quantity) string {
	return styleValue.Render(FormatNumber(q.Value)) + " " + q.Unit.DisplayAbbreviation()
}

// ValidateResult prints the outcome of catalog validation.
func (p *Printer) ValidateResult(f *catalog.File, errs []catalog.ValidationError) {
	units := 0
	for _, fam := range f.Families {
		units += len(fam.Units)
	}
	if len(errs) == 0 {
		fmt.Fprintf(p.Err, "%s catalog %s — %s families, %s units, no errors\n",
			styleSuccess.Render(iconOK), f.Source,
			humanize.Comma(int64(len(f.Families))), humanize.Comma(int64(units)))
		return
	}
	fmt.Fprintf(p.Err, "%s catalog %s — %d error(s):\n", styleError.Render(iconFailed), f.Source, len(errs))
	for _, e := range errs {
		fmt.Fprintf(p.Err, "  %s %s %s\n", styleError.Render(iconBullet), e.Error(), styleMuted.Render("["+string(e.Category)+"]"))
	}
}

// InstallReport prints the counts of an install.
func (p *Printer) InstallReport(r catalog.Report) {
	p.Success(fmt.Sprintf("loaded %s: %s families, %s units (%s generated)",
		r.Source, humanize.Comma(int64(r.Families)),
		humanize.Comma(int64(r.Explicit+r.Generated)), humanize.Comma(int64(r.Generated))))
}

// Reload prints the outcome of a watched catalog reload.
func (p *Printer) Reload(r catalog.Reload) {
	if r.Err != nil {
		p.Error(fmt.Sprintf("reload %s: %v", r.Path, r.Err))
		return
	}
	p.InstallReport(r.Report)
}

// Snapshot prints one saved snapshot.
func (p *Printer) Snapshot(s store.Snapshot) {
	fmt.Fprintf(p.Out, "%s  %s  %s families  %s units  %s\n",
		styleValue.Render(s.ID), s.Source,
		humanize.Comma(int64(s.Families)), humanize.Comma(int64(s.Units)),
		styleMuted.Render(humanize.Time(s.CreatedAt)))
}

// SnapshotFamilies prints the family rows of a stored snapshot.
func (p *Printer) SnapshotFamilies(rows []store.FamilyRow) {
	if len(rows) == 0 {
		fmt.Fprintln(p.Out, styleMuted.Render("(no families)"))
		return
	}
	nameW := len("FAMILY")
	for _, r := range rows {
		nameW = max(nameW, len(r.Name))
	}
	fmt.Fprintln(p.Out, styleHeading.Render(fmt.Sprintf("%-*s  %-16s  %s", nameW, "FAMILY", "DIMENSION", "STANDARD")))
	for _, r := range rows {
		fmt.Fprintf(p.Out, "%s  %s  %s\n",
			styleFamily.Render(fmt.Sprintf("%-*s", nameW, r.Name)),
			styleDimension.Render(fmt.Sprintf("%-16s", r.Dimension)),
			r.Standard)
	}
}

// FormatNumber renders v with thousands separators when it is of ordinary
// magnitude and in exponent form otherwise.
func FormatNumber(v float64) string {
	a := math.Abs(v)
	if v == 0 || (a >= 1e-3 && a < 1e15) {
		return humanize.CommafWithDigits(v, 9)
	}
	return strconv.FormatFloat(v, 'g', 10, 64)
}

// FormatScale renders a unit scale for tables: "×1,000" or "(v+273.15)×1".
func FormatScale(s unit.Scale) string {
	if s.IsLinear() {
		return "×" + FormatNumber(s.Factor)
	}
	return fmt.Sprintf("(v%+g)×%s", s.Offset, FormatNumber(s.Factor))
}

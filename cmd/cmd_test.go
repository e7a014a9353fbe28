package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/papapumpkin/unitary/internal/unit"
)

// execute runs rootCmd with args and returns everything written to stdout
// and stderr. Flags are reset afterwards because cobra keeps their values
// on the shared command tree.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		resetFlags(rootCmd)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func writeCatalog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func assertContains(t *testing.T, output string, substrs ...string) {
	t.Helper()
	for _, s := range substrs {
		if !strings.Contains(output, s) {
			t.Errorf("output missing %q:\n%s", s, output)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	t.Parallel()

	want := []string{"dim", "families", "units", "convert", "calc", "catalog", "snapshot", "watch", "events"}
	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("expected %q subcommand to be registered on rootCmd", name)
		}
	}
}

func TestDimParse(t *testing.T) {
	out, err := execute(t, "dim", "parse", "kg.m/s2")
	if err != nil {
		t.Fatalf("dim parse: %v", err)
	}
	assertContains(t, out, "kgm/s2", "kgms-2", "Force")
}

func TestDimMul_SharedDimension(t *testing.T) {
	out, err := execute(t, "dim", "mul", "kgm/s2", "m")
	if err != nil {
		t.Fatalf("dim mul: %v", err)
	}
	assertContains(t, out, "kgm2/s2", "Energy", "Torque")
}

func TestDimParse_Invalid(t *testing.T) {
	if _, err := execute(t, "dim", "parse", "kgx"); err == nil {
		t.Error("dim parse kgx returned nil error")
	}
}

func TestFamilies_ByDimension(t *testing.T) {
	out, err := execute(t, "families", "1/s")
	if err != nil {
		t.Fatalf("families: %v", err)
	}
	assertContains(t, out, "Frequency", "Radioactivity")
	if strings.Contains(out, "Length") {
		t.Errorf("families 1/s listed Length:\n%s", out)
	}
}

func TestUnits(t *testing.T) {
	out, err := execute(t, "units", "Length")
	if err != nil {
		t.Fatalf("units: %v", err)
	}
	assertContains(t, out, "meter", "inch", "generated units hidden")

	out, err = execute(t, "units", "Length", "--generated")
	if err != nil {
		t.Fatalf("units --generated: %v", err)
	}
	assertContains(t, out, "kilometer")

	if _, err := execute(t, "units", "Nonsense"); err == nil {
		t.Error("units Nonsense returned nil error")
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"value from to", []string{"convert", "1", "km", "m"}, "1,000 m"},
		{"quantity to", []string{"convert", "100 degC", "degF"}, "212"},
		{"family qualified", []string{"convert", "2", "Mass:kg", "g"}, "2,000 g"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("%v: %v", tt.args, err)
			}
			assertContains(t, out, tt.want)
		})
	}
}

func TestConvert_Incompatible(t *testing.T) {
	if _, err := execute(t, "convert", "1", "km", "h"); err == nil {
		t.Error("convert km to h returned nil error")
	}
}

func TestCalcMul(t *testing.T) {
	out, err := execute(t, "calc", "mul", "2 kN", "3 m")
	if err != nil {
		t.Fatalf("calc mul: %v", err)
	}
	assertContains(t, out, "6,000", "kgm2/s2", "Energy", "Torque")

	out, err = execute(t, "calc", "mul", "2 kN", "3 m", "--as", "Torque")
	if err != nil {
		t.Fatalf("calc mul --as: %v", err)
	}
	assertContains(t, out, "6,000 N.m")

	out, err = execute(t, "calc", "mul", "2 kN", "3 m", "--in", "kJ")
	if err != nil {
		t.Fatalf("calc mul --in: %v", err)
	}
	assertContains(t, out, "6 kJ")
}

func TestCalcDiv(t *testing.T) {
	out, err := execute(t, "calc", "div", "100 km", "2 h", "--in", "km/h")
	if err != nil {
		t.Fatalf("calc div: %v", err)
	}
	assertContains(t, out, "50 km/h")
}

const conflictCatalog = `
[[family]]
name = "Duration"
dimension = "s"

  [[family.unit]]
  id = "s"
  name = "second"

  [[family.unit]]
  id = "sec"
  name = "second"
  abbreviations = ["s"]
`

func TestCatalogValidate(t *testing.T) {
	if _, err := execute(t, "catalog", "validate"); err != nil {
		t.Fatalf("validating the embedded catalog: %v", err)
	}

	bad := writeCatalog(t, "bad.toml", "[[family]]\nname = \"X\"\ndimension = \"zz\"\n\n  [[family.unit]]\n  id = \"x\"\n  name = \"x\"\n")
	out, err := execute(t, "catalog", "validate", bad)
	if err == nil {
		t.Fatal("validating a catalog with a bad dimension returned nil error")
	}
	assertContains(t, out, "bad_dimension")

	conflict := writeCatalog(t, "conflict.toml", conflictCatalog)
	_, err = execute(t, "catalog", "validate", conflict)
	var dup *unit.DuplicateUnitError
	if !errors.As(err, &dup) {
		t.Errorf("validating a conflicting catalog = %v, want *unit.DuplicateUnitError", err)
	}
}

func TestCatalogShow(t *testing.T) {
	path := writeCatalog(t, "small.toml", "[[family]]\nname = \"Length\"\ndimension = \"m\"\n\n  [[family.unit]]\n  id = \"m\"\n  name = \"meter\"\n")
	out, err := execute(t, "catalog", "show", path, "--format", "yaml")
	if err != nil {
		t.Fatalf("catalog show: %v", err)
	}
	assertContains(t, out, "family:", "name: Length", "id: m")

	if _, err := execute(t, "catalog", "show", path, "--format", "json"); err == nil {
		t.Error("catalog show --format json returned nil error")
	}
}

func TestSnapshot(t *testing.T) {
	t.Setenv("UNITARY_DB_PATH", filepath.Join(t.TempDir(), "snap.db"))

	out, err := execute(t, "snapshot", "save")
	if err != nil {
		t.Fatalf("snapshot save: %v", err)
	}
	assertContains(t, out, "saved snapshot", "builtin:si.toml")

	out, err = execute(t, "snapshot", "list")
	if err != nil {
		t.Fatalf("snapshot list: %v", err)
	}
	assertContains(t, out, "builtin:si.toml")

	out, err = execute(t, "snapshot", "show", "--family", "Temperature")
	if err != nil {
		t.Fatalf("snapshot show: %v", err)
	}
	assertContains(t, out, "degC", "kelvin")
}

func TestEvents(t *testing.T) {
	dir := t.TempDir()
	events := filepath.Join(dir, "events.jsonl")
	t.Setenv("UNITARY_TELEMETRY_PATH", events)

	if _, err := execute(t, "families"); err != nil {
		t.Fatalf("families: %v", err)
	}

	out, err := execute(t, "events", "--kind", "catalog_loaded")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	assertContains(t, out, "catalog_loaded", "source=builtin:si.toml", "families=")
	if strings.Contains(out, "unit_registered") {
		t.Errorf("--kind filter let other events through:\n%s", out)
	}
}

func TestPrintEvent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printEvent(&buf, `{"ts":"2026-01-02T15:04:05Z","kind":"family_published","family":"Length","data":{"units":23,"dimension":"m"}}`, "")
	got := buf.String()
	want := "[15:04:05] family_published family=Length dimension=m units=23\n"
	if got != want {
		t.Errorf("printEvent = %q, want %q", got, want)
	}

	buf.Reset()
	printEvent(&buf, "not json", "")
	if got := buf.String(); got != "??? not json\n" {
		t.Errorf("printEvent(garbage) = %q", got)
	}
}

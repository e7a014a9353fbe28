package dimension

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
)

// randomVector returns a vector with exponents in [-4, 4].
func randomVector(r *rand.Rand) Vector {
	var exps [Count]int8
	for i := range exps {
		exps[i] = int8(r.IntN(9) - 4)
	}
	return New(exps)
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Vector
	}{
		{"", Zero()},
		{"1", Zero()},
		{"kgm/s2", Of(0, 0, 1, 1, -2, 0, 0, 0, 0)},
		{"kgms-2", Of(0, 0, 1, 1, -2, 0, 0, 0, 0)},
		{"kg.m/s2", Of(0, 0, 1, 1, -2, 0, 0, 0, 0)},
		{"kg.m.s-2", Of(0, 0, 1, 1, -2, 0, 0, 0, 0)},
		{"m/m", Zero()},
		{"1/s", Of(0, 0, 0, 0, -1, 0, 0, 0, 0)},
		{"m2", Of(0, 0, 0, 2, 0, 0, 0, 0, 0)},
		{"m0", Zero()},
		{"kgm2/s3A", Of(0, 0, 1, 2, -3, -1, 0, 0, 0)},
		{"mol", Of(0, 0, 0, 0, 0, 0, 0, 1, 0)},
		{"mmol", Of(0, 0, 0, 1, 0, 0, 0, 1, 0)},
		{"mol/m3", Of(0, 0, 0, -3, 0, 0, 0, 1, 0)},
		{"radsr", Of(1, 1, 0, 0, 0, 0, 0, 0, 0)},
		{"cd/m2", Of(0, 0, 0, -2, 0, 0, 0, 0, 1)},
		{"K", Of(0, 0, 0, 0, 0, 0, 1, 0, 0)},
		{"s-9", Of(0, 0, 0, 0, -9, 0, 0, 0, 0)},
		{"m/", Of(0, 0, 0, 1, 0, 0, 0, 0, 0)},
		{"/s", Of(0, 0, 0, 0, -1, 0, 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		reason string
	}{
		{"kg-", "ends with a minus sign"},
		{"kg-m", "minus sign for unit kg but no exponent"},
		{"m/s/s", "more than one division sign"},
		{"mkg", `trailing information "kg"`},
		{"ft", `trailing information "ft"`},
		{"m.", `trailing information "."`},
		{"kg/s-", "ends with a minus sign"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tt.in)
			if err == nil {
				t.Fatalf("Parse(%q) returned nil error", tt.in)
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("Parse(%q) error %v does not wrap ErrParse", tt.in, err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse(%q) error %T is not *ParseError", tt.in, err)
			}
			if pe.Reason != tt.reason {
				t.Errorf("reason = %q, want %q", pe.Reason, tt.reason)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	force := Of(0, 0, 1, 1, -2, 0, 0, 0, 0)
	tests := []struct {
		name      string
		v         Vector
		divided   bool
		separator bool
		want      string
	}{
		{"divided", force, true, false, "kgm/s2"},
		{"divided separator", force, true, true, "kg.m/s2"},
		{"inline", force, false, false, "kgms-2"},
		{"inline separator", force, false, true, "kg.m.s-2"},
		{"zero divided", Zero(), true, true, "1"},
		{"zero inline", Zero(), false, false, "1"},
		{"frequency", Of(0, 0, 0, 0, -1, 0, 0, 0, 0), true, false, "1/s"},
		{"frequency inline", Of(0, 0, 0, 0, -1, 0, 0, 0, 0), false, false, "s-1"},
		{"resistance", MustParse("kgm2/s3A2"), true, true, "kg.m2/s3.A2"},
		{"amount", Of(0, 0, 0, 0, 0, 0, 0, 1, 0), true, false, "mol"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.v.Format(tt.divided, tt.separator); got != tt.want {
				t.Errorf("Format(%v, %v) = %q, want %q", tt.divided, tt.separator, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(1, 2))

	for n := 0; n < 2000; n++ {
		v := randomVector(r)
		for _, mode := range []struct{ divided, separator bool }{
			{false, false}, {true, false}, {true, true}, {false, true},
		} {
			text := v.Format(mode.divided, mode.separator)
			got, err := Parse(text)
			if err != nil {
				t.Fatalf("Parse(%q) for %v: %v", text, v, err)
			}
			if got != v {
				t.Fatalf("Parse(Format(%v)) = %v via %q", v, got, text)
			}
		}
	}
}

func TestAlgebra(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(3, 4))

	for n := 0; n < 500; n++ {
		a, b, c := randomVector(r), randomVector(r), randomVector(r)
		if got := a.Plus(a.Invert()); got != Zero() {
			t.Fatalf("%v + inverse = %v, want zero", a, got)
		}
		if a.Plus(b) != b.Plus(a) {
			t.Fatalf("Plus not commutative for %v, %v", a, b)
		}
		if a.Plus(b).Plus(c) != a.Plus(b.Plus(c)) {
			t.Fatalf("Plus not associative for %v, %v, %v", a, b, c)
		}
		if a.Minus(b) != a.Plus(b.Invert()) {
			t.Fatalf("Minus(%v, %v) differs from adding the inverse", a, b)
		}
		if Add(a, b) != a.Plus(b) || Subtract(a, b) != a.Minus(b) {
			t.Fatalf("package forms disagree with methods for %v, %v", a, b)
		}
	}
}

func TestArithmeticDoesNotMutate(t *testing.T) {
	t.Parallel()
	a := MustParse("m/s")
	b := MustParse("s")
	_ = a.Plus(b)
	_ = a.Invert()
	if a != MustParse("m/s") || b != MustParse("s") {
		t.Errorf("operands changed: a=%v b=%v", a, b)
	}
	if got := a.Plus(b); got != MustParse("m") {
		t.Errorf("m/s * s = %v, want m", got)
	}
}

func TestArithmeticDropsDenominator(t *testing.T) {
	t.Parallel()

	half, err := FromFraction(
		[Count]int8{0, 0, 0, 1, 0, 0, 0, 0, 0},
		[Count]int8{1, 1, 1, 2, 1, 1, 1, 1, 1},
	)
	if err != nil {
		t.Fatalf("FromFraction: %v", err)
	}

	tests := []struct {
		name string
		got  Vector
		want Vector
	}{
		{"plus", half.Plus(MustParse("m")), MustParse("m2")},
		{"minus", half.Minus(MustParse("s")), MustParse("m/s")},
		{"invert", half.Invert(), MustParse("1/m")},
	}
	for _, tt := range tests {
		if tt.got.IsFractional() {
			t.Errorf("%s: result %v is still fractional", tt.name, tt.got)
		}
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestBaseString(t *testing.T) {
	t.Parallel()

	want := []string{"rad", "sr", "kg", "m", "s", "A", "K", "mol", "cd"}
	for i, w := range want {
		if got := Base(i).String(); got != w {
			t.Errorf("Base(%d).String() = %q, want %q", i, got, w)
		}
	}
	if got := Base(Count).String(); got != "Base(9)" {
		t.Errorf("out of range base = %q, want Base(9)", got)
	}
}

func TestOverflowPanics(t *testing.T) {
	t.Parallel()
	big := Of(0, 0, 0, 100, 0, 0, 0, 0, 0)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on exponent overflow")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrExponentOverflow) {
			t.Errorf("panic value %v does not wrap ErrExponentOverflow", r)
		}
	}()
	_ = big.Plus(big)
}

func TestFromInts(t *testing.T) {
	t.Parallel()

	v, err := FromInts([]int{0, 0, 1, 2, -2, 0, 0, 0, 0})
	if err != nil {
		t.Fatalf("FromInts: %v", err)
	}
	if v != MustParse("kgm2/s2") {
		t.Errorf("FromInts = %v, want kgm2/s2", v)
	}

	if _, err := FromInts([]int{1, 2}); !errors.Is(err, ErrWrongLength) {
		t.Errorf("short slice: got %v, want ErrWrongLength", err)
	}
	if _, err := FromInts([]int{}); !errors.Is(err, ErrWrongLength) {
		t.Errorf("empty slice: got %v, want ErrWrongLength", err)
	}
	if _, err := FromInts([]int{0, 0, 0, 300, 0, 0, 0, 0, 0}); !errors.Is(err, ErrExponentOverflow) {
		t.Errorf("out of range: got %v, want ErrExponentOverflow", err)
	}
}

func TestFromFraction(t *testing.T) {
	t.Parallel()

	num := [Count]int8{0, 0, 0, 1, 0, 0, 0, 0, 0}
	den := [Count]int8{1, 1, 1, 2, 1, 1, 1, 1, 1}
	v, err := FromFraction(num, den)
	if err != nil {
		t.Fatalf("FromFraction: %v", err)
	}
	if !v.IsFractional() {
		t.Error("IsFractional() = false, want true")
	}
	if v == MustParse("m") {
		t.Error("fractional vector equals its integer numerator")
	}
	if got, want := v.String(), "[0 0 0 1/2 0 0 0 0 0]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	unit, err := FromFraction(num, [Count]int8{1, 1, 1, 1, 1, 1, 1, 1, 1})
	if err != nil {
		t.Fatalf("FromFraction: %v", err)
	}
	if unit.IsFractional() || unit != MustParse("m") {
		t.Errorf("unit denominator vector = %v, want plain m", unit)
	}

	den[4] = 0
	if _, err := FromFraction(num, den); !errors.Is(err, ErrZeroDenominator) {
		t.Errorf("got %v, want ErrZeroDenominator", err)
	}
}

func TestVectorAsMapKey(t *testing.T) {
	t.Parallel()
	m := map[Vector]string{
		MustParse("kgm2/s2"): "energy",
	}
	if got := m[Of(0, 0, 1, 2, -2, 0, 0, 0, 0)]; got != "energy" {
		t.Errorf("lookup by structurally equal vector = %q, want energy", got)
	}
}

func Example() {
	force := MustParse("kgm/s2")
	distance := MustParse("m")
	energy := force.Plus(distance)

	fmt.Println(energy.Format(true, false))
	fmt.Println(energy.Format(false, true))
	fmt.Println(energy.Minus(MustParse("s")).Format(true, true))
	fmt.Println(energy)
	// Output:
	// kgm2/s2
	// kg.m2.s-2
	// kg.m2/s3
	// [0 0 1 2 -2 0 0 0 0]
}

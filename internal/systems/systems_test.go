package systems

import (
	"errors"
	"math"
	"testing"
)

func TestCatalogNames(t *testing.T) {
	names := Names()
	if len(names) != len(catalog) {
		t.Fatalf("Names() returned %d entries, want %d", len(names), len(catalog))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
	for _, name := range names {
		sys, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if sys.Name() != name {
			t.Errorf("New(%q).Name() = %q", name, sys.Name())
		}
		if sys.Description() == "" {
			t.Errorf("%s has no description", name)
		}
		if !sys.Field().Valid() {
			t.Errorf("%s field is incomplete", name)
		}
	}
}

func TestLookupAppliesParams(t *testing.T) {
	sys, err := Lookup("vanderpol", map[string]float64{"mu": 3})
	if err != nil {
		t.Fatal(err)
	}
	if got := sys.GetParams()["mu"]; got != 3 {
		t.Errorf("mu = %v, want 3", got)
	}

	_, err = Lookup("vanderpol", map[string]float64{"omega": 1})
	if !errors.Is(err, ErrUnknownParam) {
		t.Errorf("unknown param err = %v", err)
	}
	_, err = Lookup("lorenz", nil)
	if !errors.Is(err, ErrUnknownSystem) {
		t.Errorf("unknown system err = %v", err)
	}
}

func TestHarmonicField(t *testing.T) {
	f := NewHarmonic().Field()
	dx, dy := f.Evaluate(2, 3, 0)
	if dx != 3 || dy != -2 {
		t.Errorf("harmonic at (2, 3) = (%v, %v), want (3, -2)", dx, dy)
	}
}

func TestLinearInvariants(t *testing.T) {
	l := NewLinear()
	if l.Trace() != -2 || l.Det() != 1 {
		t.Errorf("trace %v det %v, want -2 and 1", l.Trace(), l.Det())
	}
	if err := l.SetParam("d", 3); err != nil {
		t.Fatal(err)
	}
	if l.Det() != -3 {
		t.Errorf("det after d=3 is %v, want -3", l.Det())
	}
}

func TestFieldIsSnapshot(t *testing.T) {
	l := NewLinear()
	f := l.Field()
	_ = l.SetParam("a", 100)

	dx, _ := f.Evaluate(1, 0, 0)
	if dx != -1 {
		t.Errorf("field changed after SetParam: dx = %v, want -1", dx)
	}
}

func TestPendulumEquilibrium(t *testing.T) {
	p := NewPendulum()
	p.Damping = 0
	f := p.Field()

	dx, dy := f.Evaluate(0, 0, 0)
	if math.Abs(dx) > 1e-10 || math.Abs(dy) > 1e-10 {
		t.Errorf("expected rest at the bottom, got (%v, %v)", dx, dy)
	}

	_, alpha := f.Evaluate(math.Pi/2, 0, 0)
	if want := -p.Gravity / p.Length; math.Abs(alpha-want) > 1e-9 {
		t.Errorf("alpha at pi/2 = %v, want %v", alpha, want)
	}
}

func TestDuffingForcing(t *testing.T) {
	d := NewDuffing()
	if !d.Field().Autonomous() {
		t.Error("unforced Duffing should be autonomous")
	}

	if err := d.SetParam("gamma", 0.5); err != nil {
		t.Fatal(err)
	}
	f := d.Field()
	if f.Autonomous() {
		t.Error("forced Duffing should depend on time")
	}
	_, a0 := f.Evaluate(0, 0, 0)
	_, a1 := f.Evaluate(0, 0, math.Pi/d.Omega)
	if math.Abs(a0-0.5) > 1e-12 || math.Abs(a1+0.5) > 1e-12 {
		t.Errorf("forcing at t=0 and half period = %v, %v, want 0.5 and -0.5", a0, a1)
	}
}

func TestDoubleWellMinima(t *testing.T) {
	d := NewDoubleWell()
	f := d.Field()
	for _, x := range []float64{-1, 0, 1} {
		dx, dy := f.Evaluate(x, 0, 0)
		if dx != 0 || dy != 0 {
			t.Errorf("(%v, 0) is not an equilibrium: (%v, %v)", x, dx, dy)
		}
	}
	if d.Energy(1, 0) != 0 {
		t.Errorf("energy at minimum = %v", d.Energy(1, 0))
	}
}

func TestLotkaVolterraCoexistence(t *testing.T) {
	l := NewLotkaVolterra()
	p := l.Coexistence()
	dx, dy := l.Field().Evaluate(p.X, p.Y, 0)
	if math.Abs(dx) > 1e-12 || math.Abs(dy) > 1e-12 {
		t.Errorf("coexistence %v is not stationary: (%v, %v)", p, dx, dy)
	}
}

func TestSetParamRejectsUnknown(t *testing.T) {
	for _, name := range Names() {
		sys, _ := New(name)
		if err := sys.SetParam("nonexistent", 1); !errors.Is(err, ErrUnknownParam) {
			t.Errorf("%s.SetParam(nonexistent) = %v", name, err)
		}
		for k, v := range sys.GetParams() {
			if err := sys.SetParam(k, v); err != nil {
				t.Errorf("%s.SetParam(%q) = %v", name, k, err)
			}
		}
	}
}

package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/phaseplot/internal/dynamo"
)

func TestRK45_Step(t *testing.T) {
	integrator := NewRK45()
	x := dynamo.State{1.0, 0.0}
	dt := 0.01

	for i := 0; i < 1000; i++ {
		x = integrator.Step(harmonic{}, x, float64(i)*dt, dt)
	}

	if !x.IsValid() {
		t.Error("RK45 produced invalid state")
	}
}

func TestRK45_EnergyConservation(t *testing.T) {
	integrator := NewRK45()
	dyn := harmonic{}
	x0 := dynamo.State{1.0, 0.0}

	initialEnergy := dyn.Energy(x0)
	x := x0.Clone()
	dt := 0.01

	for i := 0; i < 10000; i++ {
		x = integrator.Step(dyn, x, float64(i)*dt, dt)
	}

	finalEnergy := dyn.Energy(x)
	drift := math.Abs(finalEnergy-initialEnergy) / initialEnergy

	if drift > 1e-6 {
		t.Errorf("RK45 energy drift too high: %e", drift)
	}
}

func TestRK45_AdaptiveStep(t *testing.T) {
	integrator := NewRK45()
	x0 := dynamo.State{1.0, 0.0}

	x, errNorm, newDt := integrator.StepAdaptive(harmonic{}, x0, 0, 0.1, dynamo.Tolerance{Abs: 1e-8, Rel: 1e-8})

	if !x.IsValid() {
		t.Error("StepAdaptive produced invalid state")
	}
	if errNorm < 0 || math.IsNaN(errNorm) {
		t.Errorf("StepAdaptive returned invalid error norm: %f", errNorm)
	}
	if newDt <= 0 {
		t.Errorf("StepAdaptive returned invalid dt: %f", newDt)
	}
}

func TestRK45_ShrinksOnLargeError(t *testing.T) {
	integrator := NewRK45()
	tight := dynamo.Tolerance{Abs: 1e-14, Rel: 1e-14}

	_, errNorm, newDt := integrator.StepAdaptive(harmonic{}, dynamo.State{1, 0}, 0, 1.0, tight)
	if errNorm <= 1 {
		t.Fatalf("expected rejected step at dt=1, got error norm %e", errNorm)
	}
	if newDt >= 1.0 {
		t.Errorf("expected shrinking step, got %f", newDt)
	}

	_, _, backDt := integrator.StepAdaptive(harmonic{}, dynamo.State{1, 0}, 0, -1.0, tight)
	if backDt >= 0 {
		t.Errorf("backward suggestion lost its sign: %f", backDt)
	}
}

func TestRK45_VsRK4_Accuracy(t *testing.T) {
	rk4 := NewRK4()
	rk45 := NewRK45()
	x0 := dynamo.State{1.0, 0.0}

	x4 := x0.Clone()
	x45 := x0.Clone()
	dt := 0.1

	for i := 0; i < 100; i++ {
		x4 = rk4.Step(harmonic{}, x4, float64(i)*dt, dt)
		x45 = rk45.Step(harmonic{}, x45, float64(i)*dt, dt)
	}

	t.Logf("RK4 final: [%.6f, %.6f]", x4[0], x4[1])
	t.Logf("RK45 final: [%.6f, %.6f]", x45[0], x45[1])

	e4 := harmonic{}.Energy(x4)
	e45 := harmonic{}.Energy(x45)

	if math.Abs(e45-0.5) > math.Abs(e4-0.5) {
		t.Log("Warning: RK45 not more accurate than RK4 for this case")
	}
}

func TestDormandPrinceTableau(t *testing.T) {
	tab := dormandPrince
	if len(tab.a) != len(tab.c) || len(tab.b) != len(tab.c) || len(tab.err) != len(tab.c) {
		t.Fatalf("tableau shape mismatch: c=%d a=%d b=%d err=%d", len(tab.c), len(tab.a), len(tab.b), len(tab.err))
	}

	for i, row := range tab.a {
		if len(row) != i {
			t.Errorf("row %d has %d weights, want %d", i, len(row), i)
		}
		sum := 0.0
		for _, w := range row {
			sum += w
		}
		if math.Abs(sum-tab.c[i]) > 1e-13 {
			t.Errorf("row %d sums to %v, want c = %v", i, sum, tab.c[i])
		}
	}

	sumB, sumE := 0.0, 0.0
	for i := range tab.b {
		sumB += tab.b[i]
		sumE += tab.err[i]
	}
	if math.Abs(sumB-1) > 1e-14 {
		t.Errorf("b weights sum to %v, want 1", sumB)
	}
	if math.Abs(sumE) > 1e-14 {
		t.Errorf("error weights sum to %v, want 0", sumE)
	}
}

func TestRK45FifthOrderOnPolynomial(t *testing.T) {
	// x' = 5 t^4 is integrated exactly by a fifth-order method.
	quartic := systemFunc(func(x dynamo.State, t float64) dynamo.State {
		return dynamo.State{5 * t * t * t * t}
	})
	x, errNorm, _ := NewRK45().StepAdaptive(quartic, dynamo.State{0}, 0, 1, dynamo.DefaultTolerance())
	if math.Abs(x[0]-1) > 1e-13 {
		t.Errorf("x(1) = %.16f, want 1", x[0])
	}
	if math.IsNaN(errNorm) {
		t.Error("error estimate is NaN")
	}
}

type systemFunc func(x dynamo.State, t float64) dynamo.State

func (f systemFunc) Derive(x dynamo.State, t float64) dynamo.State { return f(x, t) }
func (f systemFunc) StateDim() int                                 { return 1 }

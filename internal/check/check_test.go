package check

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/fwdiff/internal/dual"
	"github.com/san-kum/fwdiff/internal/expr"
	"github.com/san-kum/fwdiff/internal/scalar"
)

type f64 = scalar.Float64

func TestAgainstAgreesForElementaryFunctions(t *testing.T) {
	tests := []struct {
		src string
		xs  []float64
	}{
		{"x*x + sin(x)", []float64{-3, 0, 3.14}},
		{"exp(-x*x/2)", []float64{-1, 0, 0.5, 2}},
		{"x / (1 + x*x)", []float64{-2, 0, 1}},
		{"tanh(x) * atan(x)", []float64{-1, 0.3, 2}},
		{"asin(x) + acos(x/2) + atanh(x)", []float64{-0.5, 0, 0.4}},
		{"ln(cosh(x)) + asinh(x)", []float64{-1, 0, 1}},
		{"sqrt(x) * acosh(x + 1)", []float64{0.5, 2}},
		{"pow(x, 4) - pow(x, -1)", []float64{0.7, 1.3}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			f := expr.MustCompile[f64](tt.src)
			r, err := Against(f, tt.xs, Options{})
			if err != nil {
				t.Fatalf("Against: %v", err)
			}
			if !r.OK() {
				w := r.Samples[r.Worst]
				t.Errorf("x=%v: automatic %v, numerical %v (error %v)", w.X, w.Automatic, w.Numerical, w.MixedError)
			}
		})
	}
}

func TestAgainstFloat32(t *testing.T) {
	tests := []struct {
		src string
		xs  []float64
	}{
		{"x*x + sin(x)", []float64{0.5, 1, 2.5}},
		{"ln(1 + exp(x))", []float64{-6, -2, 0, 2.5, 6}},
		{"exp(-x/4) * cos(2*x)", []float64{0, 3, 11.5}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			f := expr.MustCompile[scalar.Float32](tt.src)
			r, err := Against(f, tt.xs, Options{})
			if err != nil {
				t.Fatalf("Against: %v", err)
			}
			if !r.OK() {
				w := r.Samples[r.Worst]
				t.Errorf("x=%v: automatic %v, numerical %v (error %v, tolerance %v)",
					w.X, w.Automatic, w.Numerical, w.MixedError, r.Tolerance)
			}
		})
	}
}

func TestAgainstFloat32DetectsWrongDerivative(t *testing.T) {
	wrong := func(x dual.Dual[scalar.Float32]) dual.Dual[scalar.Float32] {
		return dual.New(x.Real().Sin(), x.Grad().Mul(x.Real().Cos()).Mul(2))
	}

	r, err := Against[scalar.Float32](wrong, []float64{0, 1}, Options{})
	if err != nil {
		t.Fatalf("Against: %v", err)
	}
	if r.OK() {
		t.Error("expected mismatch to be reported")
	}
}

func TestEpsilon(t *testing.T) {
	if got, want := Epsilon[f64](), math.Pow(2, -52); got != want {
		t.Errorf("Epsilon[Float64]() = %v, want %v", got, want)
	}
	if got, want := Epsilon[scalar.Float32](), math.Pow(2, -23); got != want {
		t.Errorf("Epsilon[Float32]() = %v, want %v", got, want)
	}
}

func TestAgainstStepAndTolerance(t *testing.T) {
	f := expr.MustCompile[f64]("sin(x)")

	r, err := Against(f, []float64{0.5, 100}, Options{})
	if err != nil {
		t.Fatalf("Against: %v", err)
	}
	if r.Tolerance != DefaultTolerance {
		t.Errorf("float64 tolerance = %v, want %v", r.Tolerance, DefaultTolerance)
	}
	if r.Samples[1].Step != 100*r.Samples[0].Step {
		t.Errorf("step does not scale with |x|: %v vs %v", r.Samples[0].Step, r.Samples[1].Step)
	}

	r, err = Against(f, []float64{0.5}, Options{Step: 1e-4, Tolerance: 1e-3})
	if err != nil {
		t.Fatalf("Against: %v", err)
	}
	if r.Samples[0].Step != 1e-4 || r.Tolerance != 1e-3 {
		t.Errorf("explicit options ignored: step %v, tolerance %v", r.Samples[0].Step, r.Tolerance)
	}

	r32, err := Against(expr.MustCompile[scalar.Float32]("sin(x)"), []float64{0.5}, Options{})
	if err != nil {
		t.Fatalf("Against: %v", err)
	}
	if r32.Tolerance <= DefaultTolerance {
		t.Errorf("float32 tolerance = %v, want above %v", r32.Tolerance, DefaultTolerance)
	}
}

func TestAgainstDetectsWrongDerivative(t *testing.T) {
	// value of sin, derivative of 2*cos
	wrong := func(x dual.Dual[f64]) dual.Dual[f64] {
		return dual.New(x.Real().Sin(), x.Grad().Mul(x.Real().Cos()).Mul(2))
	}

	r, err := Against[f64](wrong, []float64{0, 1}, Options{})
	if err != nil {
		t.Fatalf("Against: %v", err)
	}
	if r.OK() {
		t.Error("expected mismatch to be reported")
	}
	if r.MaxError() < 0.5 {
		t.Errorf("MaxError() = %v, want >= 0.5", r.MaxError())
	}
}

func TestAgainstSkipsNonFinite(t *testing.T) {
	f := expr.MustCompile[f64]("ln(x)")
	r, err := Against(f, []float64{-1, 0}, Options{})
	if err != nil {
		t.Fatalf("Against: %v", err)
	}
	for _, s := range r.Samples {
		if !s.Skipped {
			t.Errorf("x=%v should be skipped", s.X)
		}
	}
	if !r.OK() || r.MaxError() != 0 {
		t.Errorf("all-skipped report: OK=%v MaxError=%v", r.OK(), r.MaxError())
	}
}

func TestAgainstNoPoints(t *testing.T) {
	_, err := Against(expr.MustCompile[f64]("x"), nil, Options{})
	if !errors.Is(err, ErrNoPoints) {
		t.Errorf("err = %v, want ErrNoPoints", err)
	}
}

// Package check cross-validates dual-number derivatives against central
// finite differences.
package check

import (
	"errors"
	"math"

	"github.com/san-kum/fwdiff/internal/dual"
	"github.com/san-kum/fwdiff/internal/scalar"
)

// ErrNoPoints indicates Against was called without evaluation points.
var ErrNoPoints = errors.New("check: no evaluation points")

// DefaultTolerance is the lowest tolerance picked when Options leaves it zero.
const DefaultTolerance = 1e-5

type Options struct {
	// Step is the finite-difference half width h. Zero uses
	// cbrt(eps) * max(1, |x|) for the scalar type's machine epsilon.
	Step float64
	// Tolerance bounds the mixed error |ad - fd| / max(1, |fd|). Zero uses
	// max(DefaultTolerance, 100 * eps^(2/3)).
	Tolerance float64
}

// Epsilon returns the machine epsilon of R, the gap between 1 and the next
// representable value.
func Epsilon[R scalar.Real[R]]() float64 {
	one := scalar.One[R]()
	half := scalar.From[R](0.5)
	eps := one
	for one.Add(eps.Mul(half)) != one {
		eps = eps.Mul(half)
	}
	return eps.Float64()
}

// Sample compares both derivatives at one point.
type Sample struct {
	X          float64 `json:"x"`
	Step       float64 `json:"step"`
	Automatic  float64 `json:"automatic"`
	Numerical  float64 `json:"numerical"`
	AbsError   float64 `json:"abs_error"`
	MixedError float64 `json:"mixed_error"`
	// Skipped marks points where either derivative is not finite.
	Skipped bool `json:"skipped"`
}

type Report struct {
	Samples   []Sample `json:"samples"`
	Worst     int      `json:"worst"`
	Tolerance float64  `json:"tolerance"`
}

// OK reports whether every compared sample is within tolerance.
func (r *Report) OK() bool {
	if r.Worst < 0 {
		return true
	}
	return r.Samples[r.Worst].MixedError <= r.Tolerance
}

// MaxError is the worst mixed error, 0 when nothing was compared.
func (r *Report) MaxError() float64 {
	if r.Worst < 0 {
		return 0
	}
	return r.Samples[r.Worst].MixedError
}

// Against evaluates f at each of xs and compares its dual derivative with the
// central difference (f(x+h) - f(x-h)) / 2h. The perturbed points are rounded
// to R first and the divisor is their actual distance.
func Against[R scalar.Real[R]](f dual.Func[R], xs []float64, opts Options) (*Report, error) {
	if len(xs) == 0 {
		return nil, ErrNoPoints
	}
	eps := Epsilon[R]()
	tol := opts.Tolerance
	if tol <= 0 {
		tol = math.Max(DefaultTolerance, 100*math.Pow(eps, 2.0/3))
	}

	value := func(x R) float64 {
		return f(dual.Constant(x)).Real().Float64()
	}

	r := &Report{Samples: make([]Sample, len(xs)), Worst: -1, Tolerance: tol}
	for i, x := range xs {
		h := opts.Step
		if h <= 0 {
			h = math.Cbrt(eps) * math.Max(1, math.Abs(x))
		}
		hi, lo := scalar.From[R](x+h), scalar.From[R](x-h)

		ad := f(dual.Variable(scalar.From[R](x))).Grad().Float64()
		fd := (value(hi) - value(lo)) / (hi.Float64() - lo.Float64())

		s := Sample{X: x, Step: h, Automatic: ad, Numerical: fd}
		if !finite(ad) || !finite(fd) {
			s.Skipped = true
			r.Samples[i] = s
			continue
		}
		s.AbsError = math.Abs(ad - fd)
		s.MixedError = s.AbsError / math.Max(1, math.Abs(fd))
		r.Samples[i] = s

		if r.Worst < 0 || s.MixedError > r.Samples[r.Worst].MixedError {
			r.Worst = i
		}
	}
	return r, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

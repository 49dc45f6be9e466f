package scalar

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Float64 is a double precision Real.
type Float64 float64

// Float32 is a single precision Real. Transcendental functions are evaluated
// in double precision and rounded back.
type Float32 float32

func implements[R Real[R]]() {}

var (
	_ = implements[Float64]
	_ = implements[Float32]
)

func (a Float64) Add(b Float64) Float64       { return a + b }
func (a Float64) Sub(b Float64) Float64       { return a - b }
func (a Float64) Mul(b Float64) Float64       { return a * b }
func (a Float64) Div(b Float64) Float64       { return a / b }
func (a Float64) Neg() Float64                { return -a }
func (a Float64) Less(b Float64) bool         { return a < b }
func (a Float64) Abs() Float64                { return abs(a) }
func (a Float64) Signum() Float64             { return signum(a) }
func (a Float64) Sqrt() Float64               { return apply(math.Sqrt, a) }
func (a Float64) Exp() Float64                { return apply(math.Exp, a) }
func (a Float64) Ln() Float64                 { return apply(math.Log, a) }
func (a Float64) Sin() Float64                { return apply(math.Sin, a) }
func (a Float64) Cos() Float64                { return apply(math.Cos, a) }
func (a Float64) Tan() Float64                { return apply(math.Tan, a) }
func (a Float64) Asin() Float64               { return apply(math.Asin, a) }
func (a Float64) Acos() Float64               { return apply(math.Acos, a) }
func (a Float64) Atan() Float64               { return apply(math.Atan, a) }
func (a Float64) Sinh() Float64               { return apply(math.Sinh, a) }
func (a Float64) Cosh() Float64               { return apply(math.Cosh, a) }
func (a Float64) Tanh() Float64               { return apply(math.Tanh, a) }
func (a Float64) Asinh() Float64              { return apply(math.Asinh, a) }
func (a Float64) Acosh() Float64              { return apply(math.Acosh, a) }
func (a Float64) Atanh() Float64              { return apply(math.Atanh, a) }
func (Float64) FromFloat64(v float64) Float64 { return Float64(v) }
func (a Float64) Float64() float64            { return float64(a) }
func (a Float64) IsFinite() bool              { return isFinite(a) }

func (a Float32) Add(b Float32) Float32       { return a + b }
func (a Float32) Sub(b Float32) Float32       { return a - b }
func (a Float32) Mul(b Float32) Float32       { return a * b }
func (a Float32) Div(b Float32) Float32       { return a / b }
func (a Float32) Neg() Float32                { return -a }
func (a Float32) Less(b Float32) bool         { return a < b }
func (a Float32) Abs() Float32                { return abs(a) }
func (a Float32) Signum() Float32             { return signum(a) }
func (a Float32) Sqrt() Float32               { return apply(math.Sqrt, a) }
func (a Float32) Exp() Float32                { return apply(math.Exp, a) }
func (a Float32) Ln() Float32                 { return apply(math.Log, a) }
func (a Float32) Sin() Float32                { return apply(math.Sin, a) }
func (a Float32) Cos() Float32                { return apply(math.Cos, a) }
func (a Float32) Tan() Float32                { return apply(math.Tan, a) }
func (a Float32) Asin() Float32               { return apply(math.Asin, a) }
func (a Float32) Acos() Float32               { return apply(math.Acos, a) }
func (a Float32) Atan() Float32               { return apply(math.Atan, a) }
func (a Float32) Sinh() Float32               { return apply(math.Sinh, a) }
func (a Float32) Cosh() Float32               { return apply(math.Cosh, a) }
func (a Float32) Tanh() Float32               { return apply(math.Tanh, a) }
func (a Float32) Asinh() Float32              { return apply(math.Asinh, a) }
func (a Float32) Acosh() Float32              { return apply(math.Acosh, a) }
func (a Float32) Atanh() Float32              { return apply(math.Atanh, a) }
func (Float32) FromFloat64(v float64) Float32 { return Float32(v) }
func (a Float32) Float64() float64            { return float64(a) }
func (a Float32) IsFinite() bool              { return isFinite(a) }

func apply[F constraints.Float](fn func(float64) float64, x F) F {
	return F(fn(float64(x)))
}

func abs[F constraints.Float](x F) F {
	return F(math.Abs(float64(x)))
}

func signum[F constraints.Float](x F) F {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	case x == 0:
		return 0
	default:
		return x // NaN
	}
}

func isFinite[F constraints.Float](x F) bool {
	f := float64(x)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

package scalar

// Real is the set of operations a scalar type must support to be carried by a
// dual number. Methods never mutate the receiver.
type Real[R any] interface {
	comparable

	Add(R) R
	Sub(R) R
	Mul(R) R
	Div(R) R
	Neg() R
	Less(R) bool

	Abs() R
	// Signum returns -1, 0 or +1. NaN maps to NaN.
	Signum() R
	Sqrt() R
	Exp() R
	Ln() R

	Sin() R
	Cos() R
	Tan() R
	Asin() R
	Acos() R
	Atan() R

	Sinh() R
	Cosh() R
	Tanh() R
	Asinh() R
	Acosh() R
	Atanh() R

	// FromFloat64 converts a constant into the receiver's type. The receiver's
	// value is ignored, so the zero value can be used as a factory.
	FromFloat64(float64) R
	Float64() float64
	IsFinite() bool
}

// From converts v into R using R's zero value as the factory.
func From[R Real[R]](v float64) R {
	var zero R
	return zero.FromFloat64(v)
}

// One returns the multiplicative identity of R.
func One[R Real[R]]() R {
	return From[R](1)
}

// Zero returns the additive identity of R.
func Zero[R Real[R]]() R {
	var zero R
	return zero
}

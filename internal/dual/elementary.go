package dual

import "github.com/san-kum/fwdiff/internal/scalar"

// Abs has derivative signum(x), which is 0 at the origin.
func (a Dual[R]) Abs() Dual[R] {
	return Dual[R]{real: a.real.Abs(), grad: a.grad.Mul(a.real.Signum())}
}

func (a Dual[R]) Sqrt() Dual[R] {
	s := a.real.Sqrt()
	return Dual[R]{real: s, grad: a.grad.Div(s.Add(s))}
}

func (a Dual[R]) Exp() Dual[R] {
	e := a.real.Exp()
	return Dual[R]{real: e, grad: a.grad.Mul(e)}
}

// Ln is the natural logarithm.
func (a Dual[R]) Ln() Dual[R] {
	return Dual[R]{real: a.real.Ln(), grad: a.grad.Div(a.real)}
}

func (a Dual[R]) Sin() Dual[R] {
	return Dual[R]{real: a.real.Sin(), grad: a.grad.Mul(a.real.Cos())}
}

func (a Dual[R]) Cos() Dual[R] {
	return Dual[R]{real: a.real.Cos(), grad: a.grad.Neg().Mul(a.real.Sin())}
}

func (a Dual[R]) Tan() Dual[R] {
	c := a.real.Cos()
	return Dual[R]{real: a.real.Tan(), grad: a.grad.Div(c.Mul(c))}
}

func (a Dual[R]) Asin() Dual[R] {
	return Dual[R]{real: a.real.Asin(), grad: a.grad.Div(oneMinusSquare(a.real).Sqrt())}
}

func (a Dual[R]) Acos() Dual[R] {
	return Dual[R]{real: a.real.Acos(), grad: a.grad.Neg().Div(oneMinusSquare(a.real).Sqrt())}
}

func (a Dual[R]) Atan() Dual[R] {
	return Dual[R]{real: a.real.Atan(), grad: a.grad.Div(onePlusSquare(a.real))}
}

func (a Dual[R]) Sinh() Dual[R] {
	return Dual[R]{real: a.real.Sinh(), grad: a.grad.Mul(a.real.Cosh())}
}

func (a Dual[R]) Cosh() Dual[R] {
	return Dual[R]{real: a.real.Cosh(), grad: a.grad.Mul(a.real.Sinh())}
}

// Tanh has derivative 1 - tanh²(x).
func (a Dual[R]) Tanh() Dual[R] {
	t := a.real.Tanh()
	return Dual[R]{real: t, grad: a.grad.Mul(oneMinusSquare(t))}
}

func (a Dual[R]) Asinh() Dual[R] {
	return Dual[R]{real: a.real.Asinh(), grad: a.grad.Div(onePlusSquare(a.real).Sqrt())}
}

// Acosh is defined for x >= 1; the derivative diverges at x = 1.
func (a Dual[R]) Acosh() Dual[R] {
	sq := a.real.Mul(a.real).Sub(scalar.One[R]())
	return Dual[R]{real: a.real.Acosh(), grad: a.grad.Div(sq.Sqrt())}
}

func (a Dual[R]) Atanh() Dual[R] {
	return Dual[R]{real: a.real.Atanh(), grad: a.grad.Div(oneMinusSquare(a.real))}
}

func oneMinusSquare[R scalar.Real[R]](x R) R {
	return scalar.One[R]().Sub(x.Mul(x))
}

func onePlusSquare[R scalar.Real[R]](x R) R {
	return scalar.One[R]().Add(x.Mul(x))
}

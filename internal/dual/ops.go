package dual

import "github.com/san-kum/fwdiff/internal/scalar"

func (a Dual[R]) Add(b Dual[R]) Dual[R] {
	return Dual[R]{real: a.real.Add(b.real), grad: a.grad.Add(b.grad)}
}

func (a Dual[R]) Sub(b Dual[R]) Dual[R] {
	return Dual[R]{real: a.real.Sub(b.real), grad: a.grad.Sub(b.grad)}
}

// Mul applies the product rule.
func (a Dual[R]) Mul(b Dual[R]) Dual[R] {
	return Dual[R]{
		real: a.real.Mul(b.real),
		grad: a.real.Mul(b.grad).Add(a.grad.Mul(b.real)),
	}
}

// Div applies the quotient rule (a'b - ab') / b².
func (a Dual[R]) Div(b Dual[R]) Dual[R] {
	return Dual[R]{
		real: a.real.Div(b.real),
		grad: a.grad.Mul(b.real).Sub(a.real.Mul(b.grad)).Div(b.real.Mul(b.real)),
	}
}

func (a Dual[R]) Neg() Dual[R] {
	return Dual[R]{real: a.real.Neg(), grad: a.grad.Neg()}
}

func (a *Dual[R]) AddAssign(b Dual[R]) { *a = a.Add(b) }
func (a *Dual[R]) SubAssign(b Dual[R]) { *a = a.Sub(b) }
func (a *Dual[R]) MulAssign(b Dual[R]) { *a = a.Mul(b) }
func (a *Dual[R]) DivAssign(b Dual[R]) { *a = a.Div(b) }

// Pow raises a to an integer power by repeated multiplication. Pow(0) is the
// constant one; negative exponents go through Div.
func (a Dual[R]) Pow(n int) Dual[R] {
	m := magnitude(n)
	if m == 0 {
		return Constant(scalar.One[R]())
	}
	result := a
	for i := uint(1); i < m; i++ {
		result = result.Mul(a)
	}
	if n < 0 {
		return Constant(scalar.One[R]()).Div(result)
	}
	return result
}

// magnitude is |n| as an unsigned value, exact for math.MinInt.
func magnitude(n int) uint {
	if n < 0 {
		return uint(-(n + 1)) + 1
	}
	return uint(n)
}

package dual

import (
	"fmt"

	"github.com/san-kum/fwdiff/internal/scalar"
)

// Dual is a value paired with its derivative.
type Dual[R scalar.Real[R]] struct {
	real R
	grad R
}

// Func is a differentiable scalar function.
type Func[R scalar.Real[R]] func(Dual[R]) Dual[R]

// New builds a dual number from an explicit value and derivative seed.
func New[R scalar.Real[R]](value, grad R) Dual[R] {
	return Dual[R]{real: value, grad: grad}
}

// Variable seeds x as the independent variable (derivative 1).
func Variable[R scalar.Real[R]](x R) Dual[R] {
	return Dual[R]{real: x, grad: scalar.One[R]()}
}

// Constant lifts c to a dual number with zero derivative.
func Constant[R scalar.Real[R]](c R) Dual[R] {
	return Dual[R]{real: c}
}

func (a Dual[R]) Real() R { return a.real }
func (a Dual[R]) Grad() R { return a.grad }

// Equal reports whether both parts are identical. NaN parts never compare
// equal.
func (a Dual[R]) Equal(b Dual[R]) bool {
	return a.real == b.real && a.grad == b.grad
}

func (a Dual[R]) String() string {
	return fmt.Sprintf("(%g, %g)", a.real.Float64(), a.grad.Float64())
}

// Derivative evaluates f at x and returns its value and first derivative.
func Derivative[R scalar.Real[R]](f Func[R], x R) (value, grad R) {
	d := f(Variable(x))
	return d.real, d.grad
}

// Compose returns fs applied left to right. Compose() is the identity.
func Compose[R scalar.Real[R]](fs ...Func[R]) Func[R] {
	return func(d Dual[R]) Dual[R] {
		for _, f := range fs {
			d = f(d)
		}
		return d
	}
}

// Package dual implements forward-mode automatic differentiation with dual
// numbers.
//
// A [Dual] carries a value and its derivative with respect to one independent
// variable. Every operation applies the chain rule to both parts, so composing
// operations on a seeded variable yields the exact derivative of the composed
// function:
//
//	f := func(x dual.Dual[scalar.Float64]) dual.Dual[scalar.Float64] {
//	    return x.Mul(x).Add(x.Sin())
//	}
//	d := f(dual.Variable(scalar.Float64(3.14)))
//	d.Real() // 3.14² + sin(3.14)
//	d.Grad() // 2·3.14 + cos(3.14)
//
// Go has no operator overloading, so the arithmetic operators are the methods
// Add, Sub, Mul, Div and Neg. The *Assign variants reassign the receiver.
//
// Inputs outside a function's real domain are not rejected. The result carries
// whatever NaN or Inf the scalar type produces.
package dual

// Package scalar defines the real-number capability set carried by dual
// numbers.
//
// [Real] is a method-set constraint: any type that provides arithmetic,
// ordering and the elementary transcendental functions can be the payload of a
// [github.com/san-kum/fwdiff/internal/dual.Dual]. Two implementations ship with
// the package:
//
//   - [Float64]: IEEE-754 double precision
//   - [Float32]: IEEE-754 single precision
//
// Both share one generic implementation over [constraints.Float], so adding
// another float width does not duplicate the math.
//
// Invalid operations never panic or return errors. They produce NaN or ±Inf
// exactly as the underlying float type does.
package scalar

// Package sweep evaluates a differentiable function over an evenly spaced grid.
//
// The grid is split into contiguous chunks handled by separate goroutines.
// Each goroutine seeds its own dual numbers and writes a disjoint range of the
// result, so no locking is needed:
//
//	f := expr.MustCompile[scalar.Float64]("x*x + sin(x)")
//	res, err := sweep.Run(ctx, f, sweep.Grid{From: -3, To: 3, N: 601}, sweep.Options{})
//
// Samples where the function leaves its real domain are kept as NaN/Inf and
// counted in [Summary].NonFinite.
package sweep

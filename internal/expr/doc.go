// Package expr compiles textual functions of one variable into differentiable
// [github.com/san-kum/fwdiff/internal/dual.Func] values.
//
// Sources use Go expression syntax over the variable x:
//
//	x*x + sin(x)
//	exp(-x*x / 2) / sqrt(2*pi)
//	pow(x, 3) - 2*ln(abs(x) + 1)
//
// Supported are the binary operators + - * /, unary - and +, parentheses,
// numeric literals, the constants pi and e, every elementary function of the
// dual package (log is an alias of ln) and pow(expr, n) for an integer
// literal n. The ^ operator is rejected because Go parses it with additive
// precedence.
//
// A compiled function holds no mutable state and may be called from several
// goroutines at once.
package expr

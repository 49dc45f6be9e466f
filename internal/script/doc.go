// Package script runs Starlark programs that define a function to
// differentiate.
//
// A script must define f(x). The argument is a dual value; arithmetic with
// + - * / works between duals and plain numbers, and the elementary functions
// (sin, exp, ln, ...) plus pow(v, n) are predeclared:
//
//	def f(x):
//	    y = x * x
//	    if x.real > 0:
//	        return y + sin(x)
//	    return y - sin(x)
//
// Each evaluation runs on its own starlark.Thread, so a loaded [Program] can
// be shared across goroutines.
package script

package expr

import (
	"math"
	"sort"

	"github.com/san-kum/fwdiff/internal/dual"
	"github.com/san-kum/fwdiff/internal/scalar"
)

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

func functions[R scalar.Real[R]]() map[string]dual.Func[R] {
	return map[string]dual.Func[R]{
		"abs":   dual.Dual[R].Abs,
		"sqrt":  dual.Dual[R].Sqrt,
		"exp":   dual.Dual[R].Exp,
		"ln":    dual.Dual[R].Ln,
		"log":   dual.Dual[R].Ln,
		"sin":   dual.Dual[R].Sin,
		"cos":   dual.Dual[R].Cos,
		"tan":   dual.Dual[R].Tan,
		"asin":  dual.Dual[R].Asin,
		"acos":  dual.Dual[R].Acos,
		"atan":  dual.Dual[R].Atan,
		"sinh":  dual.Dual[R].Sinh,
		"cosh":  dual.Dual[R].Cosh,
		"tanh":  dual.Dual[R].Tanh,
		"asinh": dual.Dual[R].Asinh,
		"acosh": dual.Dual[R].Acosh,
		"atanh": dual.Dual[R].Atanh,
	}
}

// Builtins returns a fresh copy of the single-argument function table.
func Builtins[R scalar.Real[R]]() map[string]dual.Func[R] {
	return functions[R]()
}

// Constants returns the named constants.
func Constants() map[string]float64 {
	out := make(map[string]float64, len(constants))
	for k, v := range constants {
		out[k] = v
	}
	return out
}

// Functions lists the callable names, including pow.
func Functions() []string {
	fns := functions[scalar.Float64]()
	names := make([]string, 0, len(fns)+1)
	for name := range fns {
		names = append(names, name)
	}
	names = append(names, "pow")
	sort.Strings(names)
	return names
}

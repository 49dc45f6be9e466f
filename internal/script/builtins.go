package script

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/san-kum/fwdiff/internal/dual"
	"github.com/san-kum/fwdiff/internal/expr"
	"github.com/san-kum/fwdiff/internal/scalar"
)

func predeclared() starlark.StringDict {
	env := starlark.StringDict{
		"pow":  starlark.NewBuiltin("pow", builtinPow),
		"dual": starlark.NewBuiltin("dual", builtinDual),
	}
	for name, fn := range expr.Builtins[scalar.Float64]() {
		env[name] = starlark.NewBuiltin(name, unary(fn))
	}
	for name, v := range expr.Constants() {
		env[name] = starlark.Float(v)
	}
	return env
}

func unary(fn dual.Func[scalar.Float64]) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var x starlark.Value
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &x); err != nil {
			return nil, err
		}
		d, ok := toDual(x)
		if !ok {
			return nil, fmt.Errorf("%s: got %s, want dual or number", b.Name(), x.Type())
		}
		return Value{d: fn(d)}, nil
	}
}

// builtinPow implements pow(v, n) for an integer n with |n| <= expr.MaxExponent.
func builtinPow(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x starlark.Value
	var exp starlark.Int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &x, &exp); err != nil {
		return nil, err
	}
	n, ok := exp.Int64()
	if !ok || n < -expr.MaxExponent || n > expr.MaxExponent {
		return nil, fmt.Errorf("pow: exponent %s out of range [-%d, %d]", exp, expr.MaxExponent, expr.MaxExponent)
	}
	d, ok := toDual(x)
	if !ok {
		return nil, fmt.Errorf("pow: got %s, want dual or number", x.Type())
	}
	return Value{d: d.Pow(int(n))}, nil
}

// builtinDual implements dual(real, grad=0).
func builtinDual(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var re, grad starlark.Value = starlark.Float(0), starlark.Float(0)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "real", &re, "grad?", &grad); err != nil {
		return nil, err
	}
	r, ok := starlark.AsFloat(re)
	if !ok {
		return nil, fmt.Errorf("dual: real: got %s, want number", re.Type())
	}
	g, ok := starlark.AsFloat(grad)
	if !ok {
		return nil, fmt.Errorf("dual: grad: got %s, want number", grad.Type())
	}
	return Value{d: dual.New(scalar.Float64(r), scalar.Float64(g))}, nil
}

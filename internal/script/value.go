package script

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/san-kum/fwdiff/internal/dual"
	"github.com/san-kum/fwdiff/internal/scalar"
)

type number = dual.Dual[scalar.Float64]

// Value exposes a dual number to Starlark.
type Value struct {
	d number
}

var (
	_ starlark.Value     = Value{}
	_ starlark.HasBinary = Value{}
	_ starlark.HasUnary  = Value{}
	_ starlark.HasAttrs  = Value{}
)

// NewValue wraps d.
func NewValue(d number) Value { return Value{d: d} }

// Dual returns the wrapped number.
func (v Value) Dual() number { return v.d }

func (v Value) String() string        { return "dual" + v.d.String() }
func (v Value) Type() string          { return "dual" }
func (v Value) Freeze()               {}
func (v Value) Truth() starlark.Bool  { return v.d.Real() != 0 || v.d.Grad() != 0 }
func (v Value) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: dual") }

func (v Value) Attr(name string) (starlark.Value, error) {
	switch name {
	case "real":
		return starlark.Float(v.d.Real()), nil
	case "grad":
		return starlark.Float(v.d.Grad()), nil
	}
	return nil, nil
}

func (v Value) AttrNames() []string { return []string{"grad", "real"} }

func (v Value) Unary(op syntax.Token) (starlark.Value, error) {
	switch op {
	case syntax.MINUS:
		return Value{d: v.d.Neg()}, nil
	case syntax.PLUS:
		return v, nil
	}
	return nil, nil
}

func (v Value) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	other, ok := toDual(y)
	if !ok {
		return nil, nil
	}
	a, b := v.d, other
	if side == starlark.Right {
		a, b = other, v.d
	}

	switch op {
	case syntax.PLUS:
		return Value{d: a.Add(b)}, nil
	case syntax.MINUS:
		return Value{d: a.Sub(b)}, nil
	case syntax.STAR:
		return Value{d: a.Mul(b)}, nil
	case syntax.SLASH:
		return Value{d: a.Div(b)}, nil
	}
	return nil, nil
}

// toDual accepts duals and plain numbers; numbers become constants.
func toDual(v starlark.Value) (number, bool) {
	switch v := v.(type) {
	case Value:
		return v.d, true
	case starlark.Float, starlark.Int:
		f, ok := starlark.AsFloat(v)
		if !ok {
			return number{}, false
		}
		return dual.Constant(scalar.Float64(f)), true
	}
	return number{}, false
}

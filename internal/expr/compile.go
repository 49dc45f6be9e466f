package expr

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"strconv"

	"github.com/san-kum/fwdiff/internal/dual"
	"github.com/san-kum/fwdiff/internal/scalar"
)

// Variable is the name of the independent variable.
const Variable = "x"

// MaxExponent bounds |n| in pow(x, n). Pow multiplies |n| times.
const MaxExponent = 4096

type compiler[R scalar.Real[R]] struct {
	src   string
	funcs map[string]dual.Func[R]
}

// Compile parses src and returns it as a differentiable function of x.
func Compile[R scalar.Real[R]](src string) (dual.Func[R], error) {
	node, err := parser.ParseExpr(src)
	if err != nil {
		offset := 0
		if list, ok := err.(scanner.ErrorList); ok && len(list) > 0 {
			offset = list[0].Pos.Offset
		}
		return nil, &Error{Source: src, Offset: offset, Wrapped: fmt.Errorf("%w: %v", ErrSyntax, err)}
	}

	c := &compiler[R]{src: src, funcs: functions[R]()}
	return c.compile(node)
}

// MustCompile is like Compile but panics on error. It is meant for sources
// known at build time.
func MustCompile[R scalar.Real[R]](src string) dual.Func[R] {
	f, err := Compile[R](src)
	if err != nil {
		panic(err)
	}
	return f
}

func (c *compiler[R]) fail(n ast.Node, err error) error {
	return &Error{Source: c.src, Offset: int(n.Pos()) - 1, Wrapped: err}
}

func (c *compiler[R]) compile(n ast.Expr) (dual.Func[R], error) {
	switch n := n.(type) {
	case *ast.ParenExpr:
		return c.compile(n.X)

	case *ast.BasicLit:
		if n.Kind != token.INT && n.Kind != token.FLOAT {
			return nil, c.fail(n, fmt.Errorf("%w: %s literal", ErrUnsupported, n.Kind))
		}
		v, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, c.fail(n, fmt.Errorf("%w: %v", ErrSyntax, err))
		}
		return constant[R](v), nil

	case *ast.Ident:
		if n.Name == Variable {
			return func(x dual.Dual[R]) dual.Dual[R] { return x }, nil
		}
		if v, ok := constants[n.Name]; ok {
			return constant[R](v), nil
		}
		return nil, c.fail(n, fmt.Errorf("%w: %s", ErrUnknownIdent, n.Name))

	case *ast.UnaryExpr:
		x, err := c.compile(n.X)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case token.SUB:
			return func(d dual.Dual[R]) dual.Dual[R] { return x(d).Neg() }, nil
		case token.ADD:
			return x, nil
		}
		return nil, c.fail(n, fmt.Errorf("%w: unary %s", ErrUnsupported, n.Op))

	case *ast.BinaryExpr:
		return c.binary(n)

	case *ast.CallExpr:
		return c.call(n)
	}

	return nil, c.fail(n, fmt.Errorf("%w: %T", ErrUnsupported, n))
}

func (c *compiler[R]) binary(n *ast.BinaryExpr) (dual.Func[R], error) {
	if n.Op == token.XOR {
		return nil, c.fail(n, fmt.Errorf("%w: ^ (use pow(x, n))", ErrUnsupported))
	}

	var op func(a, b dual.Dual[R]) dual.Dual[R]
	switch n.Op {
	case token.ADD:
		op = dual.Dual[R].Add
	case token.SUB:
		op = dual.Dual[R].Sub
	case token.MUL:
		op = dual.Dual[R].Mul
	case token.QUO:
		op = dual.Dual[R].Div
	default:
		return nil, c.fail(n, fmt.Errorf("%w: operator %s", ErrUnsupported, n.Op))
	}

	left, err := c.compile(n.X)
	if err != nil {
		return nil, err
	}
	right, err := c.compile(n.Y)
	if err != nil {
		return nil, err
	}
	return func(d dual.Dual[R]) dual.Dual[R] { return op(left(d), right(d)) }, nil
}

func (c *compiler[R]) call(n *ast.CallExpr) (dual.Func[R], error) {
	ident, ok := n.Fun.(*ast.Ident)
	if !ok {
		return nil, c.fail(n, fmt.Errorf("%w: call of %T", ErrUnsupported, n.Fun))
	}

	if ident.Name == "pow" {
		if len(n.Args) != 2 {
			return nil, c.fail(n, fmt.Errorf("%w: pow takes 2, got %d", ErrArity, len(n.Args)))
		}
		base, err := c.compile(n.Args[0])
		if err != nil {
			return nil, err
		}
		exp, err := c.exponent(n.Args[1])
		if err != nil {
			return nil, err
		}
		return func(d dual.Dual[R]) dual.Dual[R] { return base(d).Pow(exp) }, nil
	}

	fn, ok := c.funcs[ident.Name]
	if !ok {
		return nil, c.fail(ident, fmt.Errorf("%w: %s", ErrUnknownFunc, ident.Name))
	}
	if len(n.Args) != 1 {
		return nil, c.fail(n, fmt.Errorf("%w: %s takes 1, got %d", ErrArity, ident.Name, len(n.Args)))
	}
	arg, err := c.compile(n.Args[0])
	if err != nil {
		return nil, err
	}
	return func(d dual.Dual[R]) dual.Dual[R] { return fn(arg(d)) }, nil
}

func (c *compiler[R]) exponent(n ast.Expr) (int, error) {
	sign := 1
	if u, ok := n.(*ast.UnaryExpr); ok && (u.Op == token.SUB || u.Op == token.ADD) {
		if u.Op == token.SUB {
			sign = -1
		}
		n = u.X
	}
	lit, ok := n.(*ast.BasicLit)
	if !ok || lit.Kind != token.INT {
		return 0, c.fail(n, ErrExponent)
	}
	v, err := strconv.Atoi(lit.Value)
	if err != nil {
		return 0, c.fail(n, fmt.Errorf("%w: %v", ErrExponent, err))
	}
	if v > MaxExponent {
		return 0, c.fail(n, fmt.Errorf("%w: |%d| exceeds %d", ErrExponent, v, MaxExponent))
	}
	return sign * v, nil
}

func constant[R scalar.Real[R]](v float64) dual.Func[R] {
	k := dual.Constant(scalar.From[R](v))
	return func(dual.Dual[R]) dual.Dual[R] { return k }
}

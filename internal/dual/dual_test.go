package dual

import (
	"math"
	"testing"

	"github.com/san-kum/fwdiff/internal/scalar"
)

type f64 = scalar.Float64

func quadSin(x Dual[f64]) Dual[f64] {
	return x.Mul(x).Add(x.Sin())
}

func TestQuadSinAtZero(t *testing.T) {
	d := quadSin(New[f64](0.0, 1.0))
	if d.Grad() >= 1.1 || d.Grad() <= 0.9 {
		t.Errorf("grad at 0 = %v, want within (0.9, 1.1)", d.Grad())
	}
}

func TestQuadSinAtPi(t *testing.T) {
	d := quadSin(New[f64](3.14, 1.0))
	if d.Grad() >= 5.3 || d.Grad() <= 5.2 {
		t.Errorf("grad at 3.14 = %v, want within (5.2, 5.3)", d.Grad())
	}
}

func TestQuadSinMatchesClosedForm(t *testing.T) {
	for _, x := range []float64{-2, -0.5, 0, 1, 3.14, 10} {
		d := quadSin(Variable(f64(x)))
		want := 2*x + math.Cos(x)
		if math.Abs(float64(d.Grad())-want) > 1e-12 {
			t.Errorf("x=%v: grad = %v, want %v", x, d.Grad(), want)
		}
	}
}

func TestLinearity(t *testing.T) {
	pairs := []struct{ a, b Dual[f64] }{
		{New[f64](1, 2), New[f64](3, 4)},
		{New[f64](-1.5, 0.25), New[f64](2, -7)},
		{New[f64](0, 0), New[f64](1e10, 1e-10)},
	}

	for _, p := range pairs {
		sum := p.a.Add(p.b)
		if sum.Real() != p.a.Real()+p.b.Real() || sum.Grad() != p.a.Grad()+p.b.Grad() {
			t.Errorf("Add(%v, %v) = %v", p.a, p.b, sum)
		}
		diff := p.a.Sub(p.b)
		if diff.Real() != p.a.Real()-p.b.Real() || diff.Grad() != p.a.Grad()-p.b.Grad() {
			t.Errorf("Sub(%v, %v) = %v", p.a, p.b, diff)
		}
	}
}

func TestProductRule(t *testing.T) {
	a := New[f64](2, 3)
	b := New[f64](-5, 0.5)

	got := a.Mul(b)
	if got.Real() != -10 {
		t.Errorf("real = %v, want -10", got.Real())
	}
	if want := a.Real()*b.Grad() + a.Grad()*b.Real(); got.Grad() != want {
		t.Errorf("grad = %v, want %v", got.Grad(), want)
	}
}

func TestQuotientRule(t *testing.T) {
	a := New[f64](3, 2)
	b := New[f64](4, 5)

	got := a.Div(b)
	if got.Real() != 0.75 {
		t.Errorf("real = %v, want 0.75", got.Real())
	}
	want := (2.0*4 - 3.0*5) / 16
	if math.Abs(float64(got.Grad())-want) > 1e-15 {
		t.Errorf("grad = %v, want %v", got.Grad(), want)
	}

	// d/dx (1/x) = -1/x²
	x := Variable(f64(2))
	inv := Constant(f64(1)).Div(x)
	if inv.Grad() != -0.25 {
		t.Errorf("d/dx 1/x at 2 = %v, want -0.25", inv.Grad())
	}
}

func TestNeg(t *testing.T) {
	got := New[f64](2, 7).Neg()
	if got.Real() != -2 || got.Grad() != -7 {
		t.Errorf("Neg = %v, want (-2, -7)", got)
	}
}

func TestAssignVariants(t *testing.T) {
	a := New[f64](2, 1)
	b := New[f64](3, 4)

	tests := []struct {
		name   string
		assign func(*Dual[f64], Dual[f64])
		pure   func(Dual[f64], Dual[f64]) Dual[f64]
	}{
		{"add", (*Dual[f64]).AddAssign, Dual[f64].Add},
		{"sub", (*Dual[f64]).SubAssign, Dual[f64].Sub},
		{"mul", (*Dual[f64]).MulAssign, Dual[f64].Mul},
		{"div", (*Dual[f64]).DivAssign, Dual[f64].Div},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a
			tt.assign(&got, b)
			if want := tt.pure(a, b); !got.Equal(want) {
				t.Errorf("%sAssign = %v, want %v", tt.name, got, want)
			}
		})
	}
}

func TestPow(t *testing.T) {
	x := Variable(f64(1.5))

	tests := []struct {
		n    int
		real float64
		grad float64
	}{
		{0, 1, 0},
		{1, 1.5, 1},
		{2, 2.25, 3},
		{3, 3.375, 6.75},
		{5, math.Pow(1.5, 5), 5 * math.Pow(1.5, 4)},
		{-1, 1 / 1.5, -1 / 2.25},
		{-2, 1 / 2.25, -2 / 3.375},
	}

	for _, tt := range tests {
		got := x.Pow(tt.n)
		if math.Abs(float64(got.Real())-tt.real) > 1e-12 || math.Abs(float64(got.Grad())-tt.grad) > 1e-12 {
			t.Errorf("Pow(%d) = %v, want (%v, %v)", tt.n, got, tt.real, tt.grad)
		}
	}
}

func TestPowMagnitude(t *testing.T) {
	tests := []struct {
		n    int
		want uint
	}{
		{0, 0},
		{3, 3},
		{-3, 3},
		{math.MaxInt, uint(math.MaxInt)},
		{math.MinInt, uint(math.MaxInt) + 1},
	}
	for _, tt := range tests {
		if got := magnitude(tt.n); got != tt.want {
			t.Errorf("magnitude(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestChainRule(t *testing.T) {
	tests := []struct {
		name  string
		f     Func[f64]
		value func(float64) float64
		deriv func(float64) float64
		xs    []float64
	}{
		{"abs", Dual[f64].Abs, math.Abs, func(x float64) float64 { return math.Copysign(1, x) }, []float64{-2, 1.5}},
		{"sqrt", Dual[f64].Sqrt, math.Sqrt, func(x float64) float64 { return 0.5 / math.Sqrt(x) }, []float64{0.25, 4}},
		{"exp", Dual[f64].Exp, math.Exp, math.Exp, []float64{-1, 0, 2}},
		{"ln", Dual[f64].Ln, math.Log, func(x float64) float64 { return 1 / x }, []float64{0.5, 2, 10}},
		{"sin", Dual[f64].Sin, math.Sin, math.Cos, []float64{-1.2, 0, 0.3}},
		{"cos", Dual[f64].Cos, math.Cos, func(x float64) float64 { return -math.Sin(x) }, []float64{-1.2, 0, 0.3}},
		{"tan", Dual[f64].Tan, math.Tan, func(x float64) float64 { return 1 / (math.Cos(x) * math.Cos(x)) }, []float64{-1.2, 0, 0.3}},
		{"asin", Dual[f64].Asin, math.Asin, func(x float64) float64 { return 1 / math.Sqrt(1-x*x) }, []float64{-0.5, 0, 0.7}},
		{"acos", Dual[f64].Acos, math.Acos, func(x float64) float64 { return -1 / math.Sqrt(1-x*x) }, []float64{-0.5, 0, 0.7}},
		{"atan", Dual[f64].Atan, math.Atan, func(x float64) float64 { return 1 / (1 + x*x) }, []float64{-2, 0, 3}},
		{"sinh", Dual[f64].Sinh, math.Sinh, math.Cosh, []float64{-1, 0, 0.5}},
		{"cosh", Dual[f64].Cosh, math.Cosh, math.Sinh, []float64{-1, 0, 0.5}},
		{"tanh", Dual[f64].Tanh, math.Tanh, func(x float64) float64 { return 1 - math.Tanh(x)*math.Tanh(x) }, []float64{-1, 0, 0.5}},
		{"asinh", Dual[f64].Asinh, math.Asinh, func(x float64) float64 { return 1 / math.Sqrt(1+x*x) }, []float64{-1, 0, 2}},
		{"acosh", Dual[f64].Acosh, math.Acosh, func(x float64) float64 { return 1 / math.Sqrt(x*x-1) }, []float64{1.5, 3}},
		{"atanh", Dual[f64].Atanh, math.Atanh, func(x float64) float64 { return 1 / (1 - x*x) }, []float64{-0.5, 0, 0.3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, x := range tt.xs {
				d := tt.f(Variable(f64(x)))
				if got, want := float64(d.Real()), tt.value(x); math.Abs(got-want) > 1e-12 {
					t.Errorf("%s(%v) real = %v, want %v", tt.name, x, got, want)
				}
				if got, want := float64(d.Grad()), tt.deriv(x); math.Abs(got-want) > 1e-12*math.Max(1, math.Abs(want)) {
					t.Errorf("%s(%v) grad = %v, want %v", tt.name, x, got, want)
				}
			}
		})
	}
}

func TestChainRuleScalesBySeed(t *testing.T) {
	// seed 3 scales every derivative by 3
	x := New[f64](0.4, 3)
	if got, want := float64(x.Sin().Grad()), 3*math.Cos(0.4); math.Abs(got-want) > 1e-15 {
		t.Errorf("sin grad = %v, want %v", got, want)
	}
	if got, want := float64(x.Exp().Grad()), 3*math.Exp(0.4); math.Abs(got-want) > 1e-15 {
		t.Errorf("exp grad = %v, want %v", got, want)
	}
}

func TestAbsAtOrigin(t *testing.T) {
	d := Variable(f64(0)).Abs()
	if d.Real() != 0 || d.Grad() != 0 {
		t.Errorf("Abs at 0 = %v, want (0, 0)", d)
	}
}

func TestUnitConstantAtOrigin(t *testing.T) {
	x := Variable(f64(0))
	for name, d := range map[string]Dual[f64]{
		"atan":  x.Atan(),
		"asin":  x.Asin(),
		"asinh": x.Asinh(),
		"atanh": x.Atanh(),
	} {
		if d.Grad() != 1 {
			t.Errorf("%s'(0) = %v, want 1", name, d.Grad())
		}
	}
	if d := x.Acos(); d.Grad() != -1 {
		t.Errorf("acos'(0) = %v, want -1", d.Grad())
	}
}

func TestAccessorsArePure(t *testing.T) {
	d := New[f64](1.25, -4)
	for i := 0; i < 3; i++ {
		if d.Real() != 1.25 || d.Grad() != -4 {
			t.Fatalf("read %d changed value: %v", i, d)
		}
	}
}

func TestOperandsUnchanged(t *testing.T) {
	a := New[f64](2, 1)
	b := New[f64](3, 1)
	_ = a.Mul(b).Div(b).Sin().Pow(3)
	if !a.Equal(New[f64](2, 1)) || !b.Equal(New[f64](3, 1)) {
		t.Errorf("operands mutated: a=%v b=%v", a, b)
	}
}

func TestDerivative(t *testing.T) {
	value, grad := Derivative[f64](quadSin, 1)
	if want := 1 + math.Sin(1); math.Abs(float64(value)-want) > 1e-15 {
		t.Errorf("value = %v, want %v", value, want)
	}
	if want := 2 + math.Cos(1); math.Abs(float64(grad)-want) > 1e-15 {
		t.Errorf("grad = %v, want %v", grad, want)
	}
}

func TestString(t *testing.T) {
	if got := New[f64](1.5, -2).String(); got != "(1.5, -2)" {
		t.Errorf("String() = %q", got)
	}
}

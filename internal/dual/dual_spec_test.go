package dual_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fwdiff/internal/dual"
	"github.com/san-kum/fwdiff/internal/scalar"
)

var _ = Describe("Dual", func() {
	Context("over single precision", func() {
		type f32 = scalar.Float32

		It("differentiates x² + sin(x)", func() {
			f := func(x dual.Dual[f32]) dual.Dual[f32] { return x.Mul(x).Add(x.Sin()) }
			d := f(dual.Variable(f32(3.14)))
			Expect(float64(d.Grad())).To(BeNumerically("~", 2*3.14+math.Cos(3.14), 1e-5))
		})

		It("keeps the float32 payload type", func() {
			d := dual.Variable(f32(0.5)).Exp()
			var _ f32 = d.Real()
			Expect(float64(d.Grad())).To(BeNumerically("~", math.Exp(0.5), 1e-6))
		})
	})

	Context("outside the real domain", func() {
		type f64 = scalar.Float64

		It("propagates NaN from ln of a negative number", func() {
			d := dual.Variable(f64(-1)).Ln()
			Expect(math.IsNaN(float64(d.Real()))).To(BeTrue())
			Expect(d.Real().IsFinite()).To(BeFalse())
		})

		It("propagates NaN from asin beyond one", func() {
			d := dual.Variable(f64(2)).Asin()
			Expect(math.IsNaN(float64(d.Real()))).To(BeTrue())
			Expect(math.IsNaN(float64(d.Grad()))).To(BeTrue())
		})

		It("returns Inf when dividing by a zero constant", func() {
			d := dual.Variable(f64(1)).Div(dual.Constant(f64(0)))
			Expect(math.IsInf(float64(d.Real()), 1)).To(BeTrue())
		})

		It("diverges at the acosh boundary", func() {
			d := dual.Variable(f64(1)).Acosh()
			Expect(float64(d.Real())).To(Equal(0.0))
			Expect(math.IsInf(float64(d.Grad()), 1)).To(BeTrue())
		})
	})

	Describe("Compose", func() {
		type f64 = scalar.Float64

		It("applies functions left to right", func() {
			f := dual.Compose[f64](dual.Dual[f64].Sin, dual.Dual[f64].Exp)
			value, grad := dual.Derivative(f, f64(0.7))
			Expect(float64(value)).To(BeNumerically("~", math.Exp(math.Sin(0.7)), 1e-15))
			Expect(float64(grad)).To(BeNumerically("~", math.Exp(math.Sin(0.7))*math.Cos(0.7), 1e-15))
		})

		It("is the identity with no functions", func() {
			d := dual.New[f64](2, 3)
			Expect(dual.Compose[f64]()(d).Equal(d)).To(BeTrue())
		})
	})

	DescribeTable("Constant has zero derivative through every function",
		func(f dual.Func[scalar.Float64]) {
			Expect(float64(f(dual.Constant(scalar.Float64(0.5))).Grad())).To(Equal(0.0))
		},
		Entry("sin", dual.Func[scalar.Float64](dual.Dual[scalar.Float64].Sin)),
		Entry("exp", dual.Func[scalar.Float64](dual.Dual[scalar.Float64].Exp)),
		Entry("ln", dual.Func[scalar.Float64](dual.Dual[scalar.Float64].Ln)),
		Entry("atanh", dual.Func[scalar.Float64](dual.Dual[scalar.Float64].Atanh)),
		Entry("tanh", dual.Func[scalar.Float64](dual.Dual[scalar.Float64].Tanh)),
	)
})

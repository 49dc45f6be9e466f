package sweep_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fwdiff/internal/dual"
	"github.com/san-kum/fwdiff/internal/expr"
	"github.com/san-kum/fwdiff/internal/scalar"
	"github.com/san-kum/fwdiff/internal/sweep"
)

var _ = Describe("Run", func() {
	var f dual.Func[scalar.Float64]

	BeforeEach(func() {
		f = expr.MustCompile[scalar.Float64]("x*x + sin(x)")
	})

	It("evaluates value and derivative at every grid point", func() {
		res, err := sweep.Run(context.Background(), f, sweep.Grid{From: -2, To: 2, N: 401}, sweep.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Points).To(HaveLen(401))

		for _, p := range res.Points {
			Expect(p.Value).To(BeNumerically("~", p.X*p.X+math.Sin(p.X), 1e-12))
			Expect(p.Grad).To(BeNumerically("~", 2*p.X+math.Cos(p.X), 1e-12))
		}
		Expect(res.Points[0].X).To(Equal(-2.0))
		Expect(res.Points[400].X).To(Equal(2.0))
	})

	It("does not depend on the worker count", func() {
		g := sweep.Grid{From: 0, To: 10, N: 1000}
		serial, err := sweep.Run(context.Background(), f, g, sweep.Options{Workers: 1})
		Expect(err).NotTo(HaveOccurred())
		parallel, err := sweep.Run(context.Background(), f, g, sweep.Options{Workers: 8, MinChunk: 10})
		Expect(err).NotTo(HaveOccurred())
		Expect(parallel.Points).To(Equal(serial.Points))
		Expect(parallel.Summary).To(Equal(serial.Summary))
	})

	It("summarizes finite samples and counts the rest", func() {
		ln := expr.MustCompile[scalar.Float64]("ln(x)")
		res, err := sweep.Run(context.Background(), ln, sweep.Grid{From: -1, To: 1, N: 3}, sweep.Options{})
		Expect(err).NotTo(HaveOccurred())

		// ln(-1) is NaN, ln(0) is -Inf with grad +Inf, ln(1) is finite
		Expect(res.Summary.NonFinite).To(Equal(2))
		Expect(res.Summary.MinValue).To(Equal(0.0))
		Expect(res.Summary.MaxGrad).To(Equal(1.0))
		Expect(res.Summary.Metrics()).To(HaveKeyWithValue("non_finite", 2.0))
	})

	It("runs over single precision", func() {
		f32 := expr.MustCompile[scalar.Float32]("exp(x)")
		res, err := sweep.Run(context.Background(), f32, sweep.Grid{From: 0, To: 1, N: 2}, sweep.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Points[1].Grad).To(BeNumerically("~", math.E, 1e-6))
		Expect(res.Values()).To(HaveLen(2))
		Expect(res.Grads()[0]).To(Equal(1.0))
	})

	It("rejects invalid grids", func() {
		_, err := sweep.Run(context.Background(), f, sweep.Grid{From: 0, To: 1, N: 0}, sweep.Options{})
		Expect(err).To(MatchError(sweep.ErrInvalidGrid))

		_, err = sweep.Run(context.Background(), f, sweep.Grid{From: math.Inf(-1), To: 1, N: 10}, sweep.Options{})
		Expect(err).To(MatchError(sweep.ErrInvalidGrid))
	})

	It("stops on a canceled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := sweep.Run(ctx, f, sweep.Grid{From: 0, To: 1, N: 100}, sweep.Options{})
		Expect(err).To(MatchError(sweep.ErrCanceled))
	})
})

package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/san-kum/fwdiff/internal/dual"
	"github.com/san-kum/fwdiff/internal/scalar"
)

var (
	// ErrInvalidGrid indicates a grid with fewer than one sample or
	// non-finite bounds.
	ErrInvalidGrid = errors.New("sweep: invalid grid")

	// ErrCanceled indicates the sweep was interrupted by its context.
	ErrCanceled = errors.New("sweep: canceled by context")
)

// Grid describes N evenly spaced points from From to To inclusive. N == 1
// samples From only.
type Grid struct {
	From float64
	To   float64
	N    int
}

func (g Grid) Validate() error {
	if g.N < 1 {
		return fmt.Errorf("%w: %d samples", ErrInvalidGrid, g.N)
	}
	if math.IsNaN(g.From) || math.IsInf(g.From, 0) || math.IsNaN(g.To) || math.IsInf(g.To, 0) {
		return fmt.Errorf("%w: bounds [%v, %v]", ErrInvalidGrid, g.From, g.To)
	}
	return nil
}

// At returns the i-th grid point.
func (g Grid) At(i int) float64 {
	if g.N == 1 {
		return g.From
	}
	if i == g.N-1 {
		return g.To
	}
	return g.From + (g.To-g.From)*float64(i)/float64(g.N-1)
}

// Step is the spacing between consecutive points.
func (g Grid) Step() float64 {
	if g.N <= 1 {
		return 0
	}
	return (g.To - g.From) / float64(g.N-1)
}

// Point is one evaluated sample.
type Point struct {
	X     float64 `json:"x"`
	Value float64 `json:"value"`
	Grad  float64 `json:"grad"`
}

// Summary aggregates the finite samples of a sweep.
type Summary struct {
	MinValue  float64 `json:"min_value"`
	MaxValue  float64 `json:"max_value"`
	MinGrad   float64 `json:"min_grad"`
	MaxGrad   float64 `json:"max_grad"`
	NonFinite int     `json:"non_finite"`
}

// Metrics flattens the summary for run metadata.
func (s Summary) Metrics() map[string]float64 {
	return map[string]float64{
		"min_value":  s.MinValue,
		"max_value":  s.MaxValue,
		"min_grad":   s.MinGrad,
		"max_grad":   s.MaxGrad,
		"non_finite": float64(s.NonFinite),
	}
}

type Result struct {
	Grid    Grid
	Points  []Point
	Summary Summary
}

type Options struct {
	// Workers bounds the goroutines used; <= 0 means GOMAXPROCS.
	Workers int
	// MinChunk is the smallest number of points given to one goroutine.
	MinChunk int
	Logger   *zerolog.Logger
}

const defaultMinChunk = 64

// Run evaluates f at every grid point with derivative seed 1.
func Run[R scalar.Real[R]](ctx context.Context, f dual.Func[R], g Grid, opts Options) (*Result, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	minChunk := opts.MinChunk
	if minChunk <= 0 {
		minChunk = defaultMinChunk
	}

	points := make([]Point, g.N)
	ParallelFor(g.N, minChunk, opts.Workers, func(start, end int) {
		for i := start; i < end; i++ {
			if ctx.Err() != nil {
				return
			}
			x := g.At(i)
			d := f(dual.Variable(scalar.From[R](x)))
			points[i] = Point{X: x, Value: d.Real().Float64(), Grad: d.Grad().Float64()}
		}
	})
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCanceled, err)
	}

	res := &Result{Grid: g, Points: points, Summary: summarize(points)}
	if opts.Logger != nil {
		opts.Logger.Debug().
			Int("samples", g.N).
			Int("non_finite", res.Summary.NonFinite).
			Msg("sweep complete")
	}
	return res, nil
}

func summarize(points []Point) Summary {
	s := Summary{
		MinValue: math.Inf(1), MaxValue: math.Inf(-1),
		MinGrad: math.Inf(1), MaxGrad: math.Inf(-1),
	}
	finite := 0
	for _, p := range points {
		if !isFinite(p.Value) || !isFinite(p.Grad) {
			s.NonFinite++
			continue
		}
		finite++
		s.MinValue = math.Min(s.MinValue, p.Value)
		s.MaxValue = math.Max(s.MaxValue, p.Value)
		s.MinGrad = math.Min(s.MinGrad, p.Grad)
		s.MaxGrad = math.Max(s.MaxGrad, p.Grad)
	}
	if finite == 0 {
		s.MinValue, s.MaxValue, s.MinGrad, s.MaxGrad = 0, 0, 0, 0
	}
	return s
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Values returns the value column.
func (r *Result) Values() []float64 {
	out := make([]float64, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.Value
	}
	return out
}

// Grads returns the derivative column.
func (r *Result) Grads() []float64 {
	out := make([]float64, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.Grad
	}
	return out
}

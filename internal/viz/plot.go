package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fwdiff/internal/sweep"
)

type PlotOptions struct {
	Width  int
	Height int
	// Title prefixes both captions, usually the function source.
	Title string
}

func (o PlotOptions) withDefaults() PlotOptions {
	if o.Width <= 0 {
		o.Width = 80
	}
	if o.Height <= 0 {
		o.Height = 12
	}
	return o
}

// PlotSweep draws the value and derivative of a sweep as two stacked charts.
// Non-finite samples are left as gaps.
func PlotSweep(points []sweep.Point, opts PlotOptions) (string, error) {
	if len(points) == 0 {
		return "", fmt.Errorf("viz: no data to plot")
	}
	opts = opts.withDefaults()

	values := make([]float64, len(points))
	grads := make([]float64, len(points))
	for i, p := range points {
		values[i] = gap(p.Value)
		grads[i] = gap(p.Grad)
	}
	if allNaN(values) && allNaN(grads) {
		return "", fmt.Errorf("viz: every sample is non-finite")
	}

	from, to := points[0].X, points[len(points)-1].X
	var out string
	for _, series := range []struct {
		name  string
		data  []float64
		color asciigraph.AnsiColor
	}{
		{"f(x)", values, asciigraph.Cyan},
		{"f'(x)", grads, asciigraph.Magenta},
	} {
		if allNaN(series.data) {
			continue
		}
		caption := fmt.Sprintf("%s on [%g, %g]", series.name, from, to)
		if opts.Title != "" {
			caption = opts.Title + ": " + caption
		}
		out += asciigraph.Plot(series.data,
			asciigraph.Height(opts.Height),
			asciigraph.Width(opts.Width),
			asciigraph.SeriesColors(series.color),
			asciigraph.Caption(caption),
		) + "\n\n"
	}
	return out, nil
}

func gap(v float64) float64 {
	if math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

func allNaN(data []float64) bool {
	for _, v := range data {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}

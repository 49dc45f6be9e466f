package viz

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/fwdiff/internal/sweep"
)

var ErrNoData = errors.New("no finite samples to draw")

// SVGOptions sizes the image. Zero fields take defaults.
type SVGOptions struct {
	Width  int
	Height int
	Theme  Theme
}

// WriteSVG draws the value and derivative curves as two stacked panels, each
// scaled to its own range. Non-finite samples break the path.
func WriteSVG(w io.Writer, points []sweep.Point, opts SVGOptions) error {
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 500
	}
	if opts.Theme.Name == "" {
		opts.Theme = Themes[0]
	}

	panel := float64(opts.Height) / 2
	value := svgPath(points, func(p sweep.Point) float64 { return p.Value }, float64(opts.Width), panel, 0)
	grad := svgPath(points, func(p sweep.Point) float64 { return p.Grad }, float64(opts.Width), panel, panel)
	if value == "" && grad == "" {
		return ErrNoData
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="%s" stroke-width="0.5"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, panel, opts.Width, panel, opts.Theme.Muted))

	if value != "" {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="%s"/>
`, opts.Theme.Value, value))
	}
	if grad != "" {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="%s"/>
`, opts.Theme.Grad, grad))
	}
	sb.WriteString(fmt.Sprintf(`<text x="8" y="16" fill="%s" font-family="monospace" font-size="12">f(x)</text>
<text x="8" y="%.0f" fill="%s" font-family="monospace" font-size="12">f'(x)</text>
</svg>
`, opts.Theme.Value, panel+16, opts.Theme.Grad))

	_, err := io.WriteString(w, sb.String())
	return err
}

// svgPath maps the selected series into a width x height box at yOffset,
// padded by 10% vertically.
func svgPath(points []sweep.Point, pick func(sweep.Point) float64, width, height, yOffset float64) string {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		y := pick(p)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	if math.IsInf(minY, 1) {
		return ""
	}

	rangeX := maxX - minX
	if rangeX == 0 {
		rangeX = 1
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2

	var sb strings.Builder
	pen := false
	for _, p := range points {
		y := pick(p)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			pen = false
			continue
		}
		px := (p.X - minX) / rangeX * width
		py := yOffset + height - (y-minY)/rangeY*height
		if pen {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px, py))
		} else {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", px, py))
			pen = true
		}
	}
	return sb.String()
}

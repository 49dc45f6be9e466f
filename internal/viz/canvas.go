package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a Braille character grid addressed in world coordinates. Each
// cell holds 2x4 dots, so the dot resolution is (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune

	xMin, xMax float64
	yMin, yMax float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		xMin:   0, xMax: 1,
		yMin: 0, yMax: 1,
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// SetBounds maps the world rectangle onto the canvas. Degenerate ranges are
// widened by one unit.
func (c *Canvas) SetBounds(xMin, xMax, yMin, yMax float64) {
	if xMax <= xMin {
		xMin, xMax = xMin-0.5, xMin+0.5
	}
	if yMax <= yMin {
		yMin, yMax = yMin-0.5, yMin+0.5
	}
	c.xMin, c.xMax, c.yMin, c.yMax = xMin, xMax, yMin, yMax
}

// Set lights the dot at (x, y) in dot coordinates. Out-of-range dots are
// ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// toDots converts world coordinates; y grows upwards in world space.
func (c *Canvas) toDots(x, y float64) (int, int, bool) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return 0, 0, false
	}
	w := float64(c.Width*2 - 1)
	h := float64(c.Height*4 - 1)
	px := (x - c.xMin) / (c.xMax - c.xMin) * w
	py := h - (y-c.yMin)/(c.yMax-c.yMin)*h
	// clamp far-away points so line clipping stays in int range
	px = math.Max(-4*w, math.Min(5*w, px))
	py = math.Max(-4*h, math.Min(5*h, py))
	return int(math.Round(px)), int(math.Round(py)), true
}

// Point lights the dot nearest to world (x, y).
func (c *Canvas) Point(x, y float64) {
	if px, py, ok := c.toDots(x, y); ok {
		c.Set(px, py)
	}
}

// Line draws a world-space segment. Segments with a non-finite end are
// skipped.
func (c *Canvas) Line(x0, y0, x1, y1 float64) {
	px0, py0, ok0 := c.toDots(x0, y0)
	px1, py1, ok1 := c.toDots(x1, y1)
	if ok0 && ok1 {
		c.DrawLine(px0, py0, px1, py1)
	}
}

// Polyline connects consecutive finite points.
func (c *Canvas) Polyline(xs, ys []float64) {
	for i := 1; i < len(xs) && i < len(ys); i++ {
		c.Line(xs[i-1], ys[i-1], xs[i], ys[i])
	}
	if len(xs) == 1 && len(ys) == 1 {
		c.Point(xs[0], ys[0])
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line in dot coordinates using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

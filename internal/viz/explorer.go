package viz

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fwdiff/internal/dual"
	"github.com/san-kum/fwdiff/internal/scalar"
)

const (
	canvasWidth  = 60
	canvasHeight = 16
	curveSamples = canvasWidth * 2
	minStep      = 1e-6
	maxStep      = 1e3
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(36)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
)

// Explorer is a Bubble Tea model that walks x along a function and shows its
// value, derivative and tangent line.
type Explorer struct {
	f      dual.Func[scalar.Float64]
	source string

	x, x0       float64
	step, step0 float64
	span, span0 float64

	theme  int
	canvas *Canvas
}

// NewExplorer starts at x0, moving by step per key press and plotting
// [x-span, x+span].
func NewExplorer(f dual.Func[scalar.Float64], source string, x0, step, span float64) Explorer {
	if step <= 0 {
		step = 0.1
	}
	if span <= 0 {
		span = 3
	}
	return Explorer{
		f:      f,
		source: source,
		x:      x0, x0: x0,
		step: step, step0: step,
		span: span, span0: span,
		canvas: NewCanvas(canvasWidth, canvasHeight),
	}
}

func (m Explorer) Init() tea.Cmd { return nil }

// X is the current evaluation point.
func (m Explorer) X() float64 { return m.x }

// Step is the current key-press increment.
func (m Explorer) Step() float64 { return m.step }

// At evaluates the function at the current point.
func (m Explorer) At() dual.Dual[scalar.Float64] {
	return m.f(dual.Variable(scalar.Float64(m.x)))
}

func (m Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		m.x -= m.step
	case "right", "l":
		m.x += m.step
	case "up", "k":
		m.step = math.Min(m.step*2, maxStep)
	case "down", "j":
		m.step = math.Max(m.step/2, minStep)
	case "+", "=":
		m.span = math.Max(m.span/2, minStep)
	case "-", "_":
		m.span = math.Min(m.span*2, maxStep)
	case "r":
		m.x, m.step, m.span = m.x0, m.step0, m.span0
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
	}
	return m, nil
}

func (m Explorer) View() string {
	theme := Themes[m.theme]
	d := m.At()
	value, grad := float64(d.Real()), float64(d.Grad())

	m.draw(value, grad)

	header := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).MarginBottom(1).
		Render("f(x) = " + m.source)

	number := func(v float64, c lipgloss.Color) string {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			c = theme.Error
		}
		return lipgloss.NewStyle().Foreground(c).Render(fmt.Sprintf("%.10g", v))
	}

	var stats strings.Builder
	fmt.Fprintf(&stats, "%s%s\n", labelStyle.Render("x"), number(m.x, theme.Text))
	fmt.Fprintf(&stats, "%s%s\n", labelStyle.Render("f(x)"), number(value, theme.Value))
	fmt.Fprintf(&stats, "%s%s\n", labelStyle.Render("f'(x)"), number(grad, theme.Grad))
	fmt.Fprintf(&stats, "%s%s\n", labelStyle.Render("step"), number(m.step, theme.Muted))
	fmt.Fprintf(&stats, "%s%s\n", labelStyle.Render("window"), number(2*m.span, theme.Muted))
	fmt.Fprintf(&stats, "%s%s", labelStyle.Render("theme"), theme.Name)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Foreground(theme.Value).Render(m.canvas.String()),
		statsStyle.Render(stats.String()),
	)
	help := lipgloss.NewStyle().Foreground(theme.Muted).MarginTop(1).
		Render("←/→ move  ↑/↓ step  +/- zoom  r reset  t theme  q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, body, help)
}

// draw plots the curve and the tangent at x onto the canvas.
func (m Explorer) draw(value, grad float64) {
	lo, hi := m.x-m.span, m.x+m.span
	xs := make([]float64, curveSamples)
	ys := make([]float64, curveSamples)
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for i := range xs {
		xs[i] = lo + (hi-lo)*float64(i)/float64(curveSamples-1)
		ys[i] = float64(m.f(dual.Constant(scalar.Float64(xs[i]))).Real())
		if !math.IsNaN(ys[i]) && !math.IsInf(ys[i], 0) {
			yMin = math.Min(yMin, ys[i])
			yMax = math.Max(yMax, ys[i])
		}
	}
	if math.IsInf(yMin, 1) {
		yMin, yMax = -1, 1
	}
	pad := (yMax - yMin) * 0.1

	m.canvas.Clear()
	m.canvas.SetBounds(lo, hi, yMin-pad, yMax+pad)
	m.canvas.Polyline(xs, ys)
	m.canvas.Line(lo, value+grad*(lo-m.x), hi, value+grad*(hi-m.x))
}

// RunExplorer starts the explorer on the terminal.
func RunExplorer(m Explorer) error {
	_, err := tea.NewProgram(m).Run()
	return err
}

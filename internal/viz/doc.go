// Package viz renders sweeps and provides a terminal explorer for a
// differentiable function.
//
//   - [PlotSweep]: asciigraph chart of f and f' over a sweep
//   - [Canvas]: Braille canvas with world coordinates
//   - [Explorer]: Bubble Tea model showing f(x), f'(x) and the tangent line
//
// # Key Bindings
//
//	←/→, h/l - Move x by one step
//	↑/↓, k/j - Double or halve the step
//	+/-      - Zoom the plotted window
//	R        - Reset x, step and zoom
//	T        - Cycle color themes
//	Q        - Quit
package viz

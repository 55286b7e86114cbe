// Package viz is the terminal host for a live flock.
//
// It is a Bubble Tea program that draws agents onto a [Canvas] of braille
// dots, places obstacles where the mouse is clicked, and resizes the world to
// the terminal. A side panel shows the perf readout, a polarization history
// and the tunable parameters.
//
// # Key Bindings
//
//	Space    - Pause/Resume
//	R        - Reset flock, obstacles and parameters
//	Tab      - Select next parameter (shift+tab: previous)
//	Up/Down  - Adjust selected parameter by 1% of its range
//	+/-      - Grow/shrink the flock by 50
//	C        - Clear obstacles
//	T        - Cycle color themes
//	Q        - Quit
package viz

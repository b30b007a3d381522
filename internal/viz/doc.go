// Package viz provides a terminal live view of a point-charge universe.
//
// The view is a Bubble Tea program with two panels:
//
//   - the field: the potential rendered through the color table, two pixels
//     per character cell using upper half blocks
//   - the orbits: a [Canvas] of Braille dots with velocity arrows and
//     predicted paths
//
// next to a statistics panel with conserved quantities and solver health.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	b g h - Bilinear, precise or Barnes–Hut field
//	- = 0 - Zoom out, in, reset
//	9     - Recenter universe and view
//	m     - Add a random particle
//	r     - Reverse all velocities
//	f     - Flip the selected handle
//	c v x - Copy, paste, cut the selected particle
//	p     - Toggle predicted paths
//	Tab   - Switch between field and orbits
//	R     - Toggle GIF recording
//	T     - Cycle color themes
//	?     - Show help overlay
//
// The mouse grabs handles the same way as the window host does.
package viz

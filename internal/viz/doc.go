// Package viz draws the spring-driven Bézier curve in the terminal.
//
// The view is a Bubble Tea program: the mouse drives the spring targets,
// window resizes resize the scene, and every tick advances the scene one
// frame before drawing it onto a braille [Canvas].
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Send the springs back to rest
//	G     - Toggle grid
//	T     - Toggle tangents
//	C     - Cycle colour themes
//	+/-   - Stiffness
//	]/[   - Damping
//	S     - Save an SVG snapshot
//	?     - Show help
//	Q     - Quit
package viz

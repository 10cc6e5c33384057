// Package viz is the terminal host for the repulsion animator.
//
// The terminal is treated as a small browser window: each cell stands for a
// block of page pixels, mouse motion becomes pointer movement, the wheel
// scrolls the page, and a fixed-rate tick plays the role of the animation
// frame loop. Headings and letters are drawn at their layout position plus
// their current offset; the scroll line is drawn on a Braille canvas behind
// them.
//
// # Key Bindings
//
//	j/k, PgDn/PgUp - Scroll
//	L              - Toggle the scroll line
//	T              - Cycle color themes
//	R              - Reload the scene
//	?              - Show help overlay
//	Q              - Quit
//
// When started with a scene file, the file is watched and reloaded on save.
package viz

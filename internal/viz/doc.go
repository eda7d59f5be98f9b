// Package viz draws a phase portrait into the terminal.
//
// A [Canvas] is a grid of braille characters, each holding a 2×4 block of
// sub-pixels, so a 60×20 character canvas resolves 120×80 dots. [Plot] maps a
// viewport onto a canvas and draws direction arrows, trajectories, circles
// and points on it; [Preview] frames the result with lipgloss and adds a
// legend.
package viz

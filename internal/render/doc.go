// Package render draws computed phase portraits with gonum/plot.
//
// All styling lives in a [Context] value passed to [Render]; nothing is kept
// in package state between calls. Output format follows the file extension:
// png, jpg, svg or pdf.
package render

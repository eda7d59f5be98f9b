// Package export writes computed phase portraits to CSV, JSON and SVG, and
// keeps them as run directories on disk.
package export

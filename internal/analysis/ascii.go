package analysis

import (
	"strings"

	"github.com/san-kum/phaseplot/internal/field"
)

// Bounds returns the padded bounding box of all paths. Degenerate extents are
// widened to 1.
func Bounds(paths ...[]field.Point) (field.Viewport, bool) {
	var vp field.Viewport
	seen := false
	for _, path := range paths {
		for _, p := range path {
			if !p.IsFinite() {
				continue
			}
			if !seen {
				vp = field.Viewport{XStart: p.X, XEnd: p.X, YStart: p.Y, YEnd: p.Y}
				seen = true
				continue
			}
			vp.XStart = min(vp.XStart, p.X)
			vp.XEnd = max(vp.XEnd, p.X)
			vp.YStart = min(vp.YStart, p.Y)
			vp.YEnd = max(vp.YEnd, p.Y)
		}
	}
	if !seen {
		return vp, false
	}

	rangeX := vp.XEnd - vp.XStart
	rangeY := vp.YEnd - vp.YStart
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	vp.XStart -= rangeX * 0.1
	vp.XEnd += rangeX * 0.1
	vp.YStart -= rangeY * 0.1
	vp.YEnd += rangeY * 0.1
	return vp, true
}

// ToASCII plots paths as dots on a width × height character grid. With a nil
// viewport the bounds are fitted to the data. Axes are drawn where they
// cross the visible area.
func ToASCII(vp *field.Viewport, width, height int, paths ...[]field.Point) string {
	if width < 2 || height < 2 {
		return ""
	}
	var view field.Viewport
	if vp != nil {
		view = *vp
	} else {
		var ok bool
		if view, ok = Bounds(paths...); !ok {
			return ""
		}
	}
	rangeX := view.Width()
	rangeY := view.Height()

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, path := range paths {
		for _, p := range path {
			if !view.Contains(p) {
				continue
			}
			col := int((p.X - view.XStart) / rangeX * float64(width-1))
			row := height - 1 - int((p.Y-view.YStart)/rangeY*float64(height-1))
			canvas[row][col] = '•'
		}
	}

	if view.XStart <= 0 && view.XEnd >= 0 {
		col := int((0 - view.XStart) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if view.YStart <= 0 && view.YEnd >= 0 {
		row := height - 1 - int((0-view.YStart)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			switch canvas[row][col] {
			case ' ':
				canvas[row][col] = '─'
			case '│':
				canvas[row][col] = '┼'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// Crossings returns where a time-ordered path crosses the vertical line
// x = threshold moving in the +x direction, linearly interpolated between
// samples.
func Crossings(times []float64, path []field.Point, threshold float64) (ts []float64, pts []field.Point) {
	for i := 1; i < len(path) && i < len(times); i++ {
		prev, curr := path[i-1], path[i]
		if !(prev.X < threshold && curr.X >= threshold) {
			continue
		}
		frac := (threshold - prev.X) / (curr.X - prev.X)
		ts = append(ts, times[i-1]+frac*(times[i]-times[i-1]))
		pts = append(pts, field.Point{
			X: threshold,
			Y: prev.Y + frac*(curr.Y-prev.Y),
		})
	}
	return ts, pts
}

package viz

import (
	"math"

	"github.com/san-kum/phaseplot/internal/field"
)

// Ink layers, drawn in increasing priority.
const (
	InkAxis = iota + 1
	InkField
	InkCircle
	InkTrajectory
	InkPoint
)

// Plot maps a viewport onto a canvas. Sub-pixel y grows downward, so
// YEnd is the top row.
type Plot struct {
	Canvas   *Canvas
	Viewport field.Viewport
}

func NewPlot(vp field.Viewport, cols, rows int) *Plot {
	return &Plot{Canvas: NewCanvas(cols, rows), Viewport: vp}
}

// Project returns the sub-pixel for p and whether it lies inside the
// viewport.
func (p *Plot) Project(pt field.Point) (x, y int, ok bool) {
	if !pt.IsFinite() {
		return 0, 0, false
	}
	vp := p.Viewport
	fx := (pt.X - vp.XStart) / vp.Width() * float64(p.Canvas.DotsWide()-1)
	fy := (vp.YEnd - pt.Y) / vp.Height() * float64(p.Canvas.DotsHigh()-1)
	return int(math.Round(fx)), int(math.Round(fy)), vp.Contains(pt)
}

// Axes draws x = 0 and y = 0 where they cross the viewport.
func (p *Plot) Axes() {
	vp := p.Viewport
	if vp.XStart <= 0 && vp.XEnd >= 0 {
		x, _, _ := p.Project(field.Point{X: 0, Y: vp.YStart})
		p.Canvas.Line(x, 0, x, p.Canvas.DotsHigh()-1, InkAxis)
	}
	if vp.YStart <= 0 && vp.YEnd >= 0 {
		_, y, _ := p.Project(field.Point{X: vp.XStart, Y: 0})
		p.Canvas.Line(0, y, p.Canvas.DotsWide()-1, y, InkAxis)
	}
}

// Field draws each non-singular sample as a short stroke in its unit
// direction, length dots long. Equilibria become single dots.
func (p *Plot) Field(g *field.Grid, length float64) {
	for _, s := range g.Samples {
		if s.Singular() {
			continue
		}
		x0, y0, ok := p.Project(field.Point{X: s.X, Y: s.Y})
		if !ok {
			continue
		}
		x1 := x0 + int(math.Round(s.DX*length))
		y1 := y0 - int(math.Round(s.DY*length))
		p.Canvas.Line(x0, y0, x1, y1, InkField)
	}
}

// Path joins consecutive in-view samples. A segment leaving the viewport
// breaks the path.
func (p *Plot) Path(points []field.Point, ink int) {
	prevX, prevY, prevOK := 0, 0, false
	for _, pt := range points {
		x, y, ok := p.Project(pt)
		if ok && prevOK {
			p.Canvas.Line(prevX, prevY, x, y, ink)
		} else if ok {
			p.Canvas.Set(x, y, ink)
		}
		prevX, prevY, prevOK = x, y, ok
	}
}

// Circle outlines the circle of radius r around c. Dashed skips every other
// arc segment.
func (p *Plot) Circle(c field.Point, r float64, dashed bool, ink int) {
	const segments = 96
	pts := make([]field.Point, 0, segments+1)
	for k := 0; k <= segments; k++ {
		theta := 2 * math.Pi * float64(k) / segments
		pts = append(pts, field.Point{X: c.X + r*math.Cos(theta), Y: c.Y + r*math.Sin(theta)})
	}
	if !dashed {
		p.Path(pts, ink)
		return
	}
	for k := 0; k+1 < len(pts); k += 4 {
		end := min(k+2, len(pts)-1)
		p.Path(pts[k:end+1], ink)
	}
}

// Dot marks a point with a small plus.
func (p *Plot) Dot(pt field.Point, ink int) {
	x, y, ok := p.Project(pt)
	if !ok {
		return
	}
	p.Canvas.Set(x, y, ink)
	p.Canvas.Set(x-1, y, ink)
	p.Canvas.Set(x+1, y, ink)
	p.Canvas.Set(x, y-1, ink)
	p.Canvas.Set(x, y+1, ink)
}

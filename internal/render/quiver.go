package render

import (
	"image/color"
	"math"

	"github.com/san-kum/phaseplot/internal/field"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// barbAngle is the half-angle of an arrow head.
const barbAngle = 25 * math.Pi / 180

// quiver draws a direction field as arrows of equal length, colored by the
// raw field magnitude.
type quiver struct {
	grid   *field.Grid
	length float64
	cmap   palette.ColorMap
	width  vg.Length
}

func newQuiver(g *field.Grid, length float64, names []string) (*quiver, error) {
	cmap, err := magnitudeMap(names)
	if err != nil {
		return nil, err
	}
	cmap.SetMin(0)
	cmap.SetMax(math.Max(g.MaxMagnitude(), math.SmallestNonzeroFloat64))
	return &quiver{grid: g, length: length, cmap: cmap, width: vg.Points(0.6)}, nil
}

// magnitudeMap interpolates the named colors by luminance. Colors that
// cannot form a luminance ramp fall back to the extended black body map.
func magnitudeMap(names []string) (palette.ColorMap, error) {
	if len(names) < 2 {
		return moreland.ExtendedBlackBody(), nil
	}
	controls := make([]color.Color, len(names))
	for i, n := range names {
		c, err := Color(n, nil)
		if err != nil {
			return nil, err
		}
		controls[i] = c
	}
	cmap, err := moreland.NewLuminance(controls)
	if err != nil {
		return moreland.ExtendedBlackBody(), nil
	}
	return cmap, nil
}

func (q *quiver) color(mag float64) color.Color {
	mag = math.Min(math.Max(mag, q.cmap.Min()), q.cmap.Max())
	c, err := q.cmap.At(mag)
	if err != nil {
		return color.Black
	}
	return c
}

// cell is the smaller grid spacing in data units.
func (q *quiver) cell() float64 {
	g := q.grid
	dx := (g.Xs[g.Nx-1] - g.Xs[0]) / float64(g.Nx-1)
	dy := (g.Ys[g.Ny-1] - g.Ys[0]) / float64(g.Ny-1)
	return math.Min(dx, dy)
}

// Plot implements plot.Plotter. Singular samples and exact equilibria are
// left blank.
func (q *quiver) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	scale := q.length * q.cell()

	for _, s := range q.grid.Samples {
		if s.Singular() || s.Equilibrium() {
			continue
		}
		tail := vg.Point{X: trX(s.X), Y: trY(s.Y)}
		head := vg.Point{X: trX(s.X + s.DX*scale), Y: trY(s.Y + s.DY*scale)}
		if !c.Contains(tail) {
			continue
		}

		style := draw.LineStyle{Color: q.color(s.Magnitude), Width: q.width}
		c.StrokeLine2(style, tail.X, tail.Y, head.X, head.Y)

		sx, sy := float64(head.X-tail.X), float64(head.Y-tail.Y)
		shaft := math.Hypot(sx, sy)
		if shaft == 0 {
			continue
		}
		barb := 0.3 * shaft
		theta := math.Atan2(sy, sx)
		for _, side := range []float64{-1, 1} {
			phi := theta + math.Pi + side*barbAngle
			c.StrokeLine2(style, head.X, head.Y,
				head.X+vg.Length(barb*math.Cos(phi)),
				head.Y+vg.Length(barb*math.Sin(phi)))
		}
	}
}

// DataRange implements plot.DataRanger.
func (q *quiver) DataRange() (xmin, xmax, ymin, ymax float64) {
	g := q.grid
	return g.Xs[0], g.Xs[g.Nx-1], g.Ys[0], g.Ys[g.Ny-1]
}

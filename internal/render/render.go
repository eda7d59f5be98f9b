package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/phaseplot/internal/field"
	"github.com/san-kum/phaseplot/internal/portrait"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

const circleSegments = 180

var dashes = map[portrait.LineStyle][]vg.Length{
	portrait.LineSolid:   nil,
	portrait.LineDashed:  {vg.Points(5), vg.Points(3)},
	portrait.LineDotted:  {vg.Points(1), vg.Points(2)},
	portrait.LineDashDot: {vg.Points(5), vg.Points(2), vg.Points(1), vg.Points(2)},
}

// Plot builds the figure for art. The axes span exactly the viewport.
func Plot(rc Context, art *portrait.Artifacts) (*plot.Plot, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = rc.Title
	p.Legend.Top = true

	if rc.Grid {
		p.Add(plotter.NewGrid())
	}

	vp := art.Viewport
	if rc.AxesThroughOrigin {
		if err := addOriginAxes(p, vp); err != nil {
			return nil, err
		}
	}

	if art.Field != nil {
		q, err := newQuiver(art.Field, rc.ArrowLength, rc.Colormap)
		if err != nil {
			return nil, err
		}
		p.Add(q)
	}

	for i, c := range art.Circles {
		if err := addCircle(p, c, rc.Legend); err != nil {
			return nil, fmt.Errorf("circle %d: %w", i, err)
		}
	}

	for i, r := range art.Trajectories {
		if err := addTrajectory(p, i, r, vp, rc); err != nil {
			return nil, fmt.Errorf("trajectory %d: %w", i, err)
		}
	}

	if err := addPoints(p, art.Points, rc.Legend); err != nil {
		return nil, err
	}

	p.X.Min, p.X.Max = vp.XStart, vp.XEnd
	p.Y.Min, p.Y.Max = vp.YStart, vp.YEnd
	if rc.HideZeroTick {
		p.X.Tick.Marker = zeroless{p.X.Tick.Marker}
		p.Y.Tick.Marker = zeroless{p.Y.Tick.Marker}
	}
	return p, nil
}

func addOriginAxes(p *plot.Plot, vp field.Viewport) error {
	style := draw.LineStyle{Color: color.Black, Width: vg.Points(0.8)}
	var axes []plotter.XYs
	if vp.YStart <= 0 && vp.YEnd >= 0 {
		axes = append(axes, plotter.XYs{{X: vp.XStart, Y: 0}, {X: vp.XEnd, Y: 0}})
	}
	if vp.XStart <= 0 && vp.XEnd >= 0 {
		axes = append(axes, plotter.XYs{{X: 0, Y: vp.YStart}, {X: 0, Y: vp.YEnd}})
	}
	for _, xys := range axes {
		l, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		l.LineStyle = style
		p.Add(l)
	}
	return nil
}

func addCircle(p *plot.Plot, c portrait.CircleAnnotation, legend bool) error {
	col, err := Color(c.Color, color.Black)
	if err != nil {
		return err
	}
	xys := make(plotter.XYs, circleSegments+1)
	for k := range xys {
		theta := 2 * math.Pi * float64(k) / circleSegments
		xys[k] = plotter.XY{X: c.X + c.Radius*math.Cos(theta), Y: c.Y + c.Radius*math.Sin(theta)}
	}
	l, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	style := c.LineStyle
	if style == "" {
		style = portrait.LineDashed
	}
	l.LineStyle.Color = col
	l.LineStyle.Dashes = dashes[style]
	p.Add(l)
	if legend && c.Label != "" {
		p.Legend.Add(c.Label, l)
	}
	return nil
}

func addTrajectory(p *plot.Plot, i int, r portrait.Result, vp field.Viewport, rc Context) error {
	col, err := Color(r.Condition.Color, plotutil.Color(i))
	if err != nil {
		return err
	}
	legend := rc.Legend && r.Condition.Legend && r.Condition.Label != ""

	_, path := r.Trajectory.Chronological()
	if len(path) == 0 {
		if r.Err != nil {
			return nil
		}
		return addStart(p, r.Condition, col, vp, rc.ClipTrajectories, legend)
	}

	runs := [][]field.Point{path}
	if rc.ClipTrajectories {
		runs = inView(vp, path)
	}
	var first *plotter.Line
	for _, run := range runs {
		if len(run) < 2 {
			continue
		}
		xys := make(plotter.XYs, len(run))
		for k, pt := range run {
			xys[k] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		l.LineStyle.Color = col
		l.LineStyle.Width = vg.Points(1.2)
		p.Add(l)
		if first == nil {
			first = l
		}
	}

	if legend && first != nil {
		p.Legend.Add(r.Condition.Label, first)
	}
	return nil
}

// addStart marks the initial condition of a trajectory with no extent.
func addStart(p *plot.Plot, ic portrait.InitialCondition, col color.Color, vp field.Viewport, clip, legend bool) error {
	if clip && !vp.Contains(ic.Point()) {
		return nil
	}
	s, err := plotter.NewScatter(plotter.XYs{{X: ic.X, Y: ic.Y}})
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = col
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = vg.Points(2)
	p.Add(s)
	if legend {
		p.Legend.Add(ic.Label, s)
	}
	return nil
}

// inView splits path into maximal runs of consecutive samples inside vp.
func inView(vp field.Viewport, path []field.Point) [][]field.Point {
	var (
		runs [][]field.Point
		cur  []field.Point
	)
	for _, pt := range path {
		if vp.Contains(pt) {
			cur = append(cur, pt)
			continue
		}
		if len(cur) > 0 {
			runs = append(runs, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	return runs
}

func addPoints(p *plot.Plot, points []portrait.PointAnnotation, legend bool) error {
	var (
		labelled plotter.XYs
		labels   []string
	)
	for _, pt := range points {
		col, err := Color(pt.Color, color.Black)
		if err != nil {
			return fmt.Errorf("point (%g, %g): %w", pt.X, pt.Y, err)
		}
		s, err := plotter.NewScatter(plotter.XYs{{X: pt.X, Y: pt.Y}})
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = col
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(3)
		p.Add(s)

		if pt.Label != "" {
			labelled = append(labelled, plotter.XY{X: pt.X, Y: pt.Y})
			labels = append(labels, pt.Label)
			if legend {
				p.Legend.Add(pt.Label, s)
			}
		}
	}
	if len(labels) == 0 {
		return nil
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: labelled, Labels: labels})
	if err != nil {
		return err
	}
	l.Offset = vg.Point{X: vg.Points(4), Y: vg.Points(4)}
	p.Add(l)
	return nil
}

// Render writes the figure to path in the format named by its extension.
func Render(rc Context, art *portrait.Artifacts, path string) (err error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if !Supported(format) {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(rc, art, f, format)
}

// Supported reports whether format is a known output format.
func Supported(format string) bool {
	switch format {
	case "png", "jpg", "jpeg", "svg", "pdf":
		return true
	}
	return false
}

// Write draws the figure onto a canvas of the given format and writes it to
// w. Raster formats honor rc.DPI.
func Write(rc Context, art *portrait.Artifacts, w io.Writer, format string) error {
	p, err := Plot(rc, art)
	if err != nil {
		return err
	}

	var out io.WriterTo
	switch format {
	case "png", "jpg", "jpeg":
		c := vgimg.NewWith(vgimg.UseWH(rc.Width, rc.Height), vgimg.UseDPI(rc.DPI))
		p.Draw(draw.New(c))
		if format == "png" {
			out = vgimg.PngCanvas{Canvas: c}
		} else {
			out = vgimg.JpegCanvas{Canvas: c}
		}
	case "svg":
		c := vgsvg.New(rc.Width, rc.Height)
		p.Draw(draw.New(c))
		out = c
	case "pdf":
		c := vgpdf.New(rc.Width, rc.Height)
		p.Draw(draw.New(c))
		out = c
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	_, err = out.WriteTo(w)
	return err
}

package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/phaseplot/internal/portrait"
)

var (
	Frame = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4444"))
)

// inkColors maps ink layers to terminal colors.
var inkColors = map[int]lipgloss.Color{
	InkAxis:       lipgloss.Color("#555566"),
	InkField:      lipgloss.Color("#3a6ea5"),
	InkCircle:     lipgloss.Color("#ffaa00"),
	InkTrajectory: lipgloss.Color("#00ff88"),
	InkPoint:      lipgloss.Color("#ff4466"),
}

// Colorize renders the canvas with one foreground color per ink layer.
func Colorize(c *Canvas) string {
	styles := make(map[int]lipgloss.Style, len(inkColors))
	for ink, col := range inkColors {
		styles[ink] = lipgloss.NewStyle().Foreground(col)
	}

	var b strings.Builder
	for row := range c.Cells {
		for col, r := range c.Cells[row] {
			if st, ok := styles[c.Ink[row][col]]; ok {
				b.WriteString(st.Render(string(r)))
			} else {
				b.WriteRune(r)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// PreviewOptions sizes the terminal preview.
type PreviewOptions struct {
	Cols, Rows  int
	ArrowLength float64 // in sub-pixels
	Clip        bool
	Color       bool
}

func DefaultPreviewOptions() PreviewOptions {
	return PreviewOptions{Cols: 60, Rows: 24, ArrowLength: 3, Clip: true, Color: true}
}

// Draw plots all artifacts onto a fresh canvas.
func Draw(art *portrait.Artifacts, opts PreviewOptions) *Plot {
	p := NewPlot(art.Viewport, opts.Cols, opts.Rows)
	p.Axes()
	if art.Field != nil {
		p.Field(art.Field, opts.ArrowLength)
	}
	for _, c := range art.Circles {
		p.Circle(c.Center(), c.Radius, c.LineStyle != "" && c.LineStyle != portrait.LineSolid, InkCircle)
	}
	for _, r := range art.Trajectories {
		_, path := r.Trajectory.Chronological()
		if len(path) == 0 && r.Err == nil {
			p.Dot(r.Condition.Point(), InkTrajectory)
			continue
		}
		if opts.Clip {
			path = portrait.Clip(art.Viewport, path)
		}
		p.Path(path, InkTrajectory)
	}
	for _, pt := range art.Points {
		p.Dot(pt.Point(), InkPoint)
	}
	return p
}

// Preview returns the framed plot with a title and legend.
func Preview(title string, art *portrait.Artifacts, opts PreviewOptions) string {
	p := Draw(art, opts)
	body := p.Canvas.String()
	if opts.Color {
		body = Colorize(p.Canvas)
	}

	vp := art.Viewport
	header := Title.Render(title) + " " + Subtle.Render(fmt.Sprintf("x∈[%g, %g] y∈[%g, %g] t∈[%g, %g]",
		vp.XStart, vp.XEnd, vp.YStart, vp.YEnd, art.TimeDomain.Start, art.TimeDomain.End))

	return Frame.Render(lipgloss.JoinVertical(lipgloss.Left, header, strings.TrimSuffix(body, "\n"), Legend(art)))
}

// Legend lists each trajectory and whether it integrated cleanly.
func Legend(art *portrait.Artifacts) string {
	var lines []string
	for i, r := range art.Trajectories {
		name := r.Condition.Label
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		status := MetricValue.Render(fmt.Sprintf("%d pts", r.Trajectory.Negative.Len()+r.Trajectory.Positive.Len()))
		if r.Err != nil {
			status = ErrorText.Render("failed")
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			MetricLabel.Render(name),
			Subtle.Render(fmt.Sprintf("(%g, %g)", r.Condition.X, r.Condition.Y)),
			status))
	}
	if len(lines) == 0 {
		return Subtle.Render("no initial conditions")
	}
	return strings.Join(lines, "\n")
}

package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/phaseplot/internal/viz"
)

// inkFill matches the terminal preview palette.
var inkFill = map[int]string{
	viz.InkAxis:       "#555566",
	viz.InkField:      "#3a6ea5",
	viz.InkCircle:     "#ffaa00",
	viz.InkTrajectory: "#00ff88",
	viz.InkPoint:      "#ff4466",
}

// Braille dot bits by sub-row and sub-column.
var pixelMap = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// CanvasToSVG writes each lit braille dot as a circle, scale pixels apart,
// colored by the ink of its cell.
func CanvasToSVG(w io.Writer, canvas *viz.Canvas, scale float64) error {
	if canvas == nil {
		return fmt.Errorf("export: nil canvas")
	}

	width := float64(canvas.DotsWide()) * scale
	height := float64(canvas.DotsHigh()) * scale
	dotRadius := scale * 0.4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for row := 0; row < canvas.Rows; row++ {
		for col := 0; col < canvas.Cols; col++ {
			pattern := canvas.Cells[row][col] - 0x2800
			if pattern <= 0 {
				continue
			}
			fill, ok := inkFill[canvas.Ink[row][col]]
			if !ok {
				fill = "#cccccc"
			}

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", cx, cy, dotRadius, fill)
				}
			}
		}
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

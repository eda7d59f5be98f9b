package viz

import (
	"math"
	"math/bits"
	"strings"
)

// Each braille cell is a 2×4 block of dots. dotBits maps a sub-pixel's
// position inside the block to its bit in the code point:
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const brailleBlank rune = 0x2800

// Canvas is Cols × Rows braille cells. Ink records which layer last touched
// each cell; 0 means untouched.
type Canvas struct {
	Cols, Rows int
	Cells      [][]rune
	Ink        [][]int
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{Cols: cols, Rows: rows}
	c.Cells = make([][]rune, rows)
	c.Ink = make([][]int, rows)
	for r := 0; r < rows; r++ {
		c.Cells[r] = make([]rune, cols)
		c.Ink[r] = make([]int, cols)
	}
	c.Clear()
	return c
}

// DotsWide and DotsHigh give the canvas size in sub-pixels.
func (c *Canvas) DotsWide() int { return c.Cols * 2 }
func (c *Canvas) DotsHigh() int { return c.Rows * 4 }

// locate returns the cell holding sub-pixel (x, y) and its dot bit.
func (c *Canvas) locate(x, y int) (row, col int, bit rune, ok bool) {
	if x < 0 || y < 0 || x >= c.DotsWide() || y >= c.DotsHigh() {
		return 0, 0, 0, false
	}
	return y / 4, x / 2, dotBits[y%4][x%2], true
}

// Set turns on the sub-pixel (x, y) with ink layer. Out-of-range
// coordinates are ignored.
func (c *Canvas) Set(x, y, ink int) {
	if row, col, bit, ok := c.locate(x, y); ok {
		c.Cells[row][col] |= bit
		c.Ink[row][col] = ink
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	row, col, bit, ok := c.locate(x, y)
	return ok && c.Cells[row][col]&bit != 0
}

func (c *Canvas) Clear() {
	for r, cells := range c.Cells {
		for i := range cells {
			cells[i] = brailleBlank
		}
		clear(c.Ink[r])
	}
}

// Line draws from (x0, y0) to (x1, y1), one dot per step along the longer
// axis.
func (c *Canvas) Line(x0, y0, x1, y1, ink int) {
	dx, dy := x1-x0, y1-y0
	n := max(abs(dx), abs(dy))
	if n == 0 {
		c.Set(x0, y0, ink)
		return
	}
	for i := 0; i <= n; i++ {
		f := float64(i) / float64(n)
		x := x0 + int(math.Round(f*float64(dx)))
		y := y0 + int(math.Round(f*float64(dy)))
		c.Set(x, y, ink)
	}
}

// Lit counts the sub-pixels that are on.
func (c *Canvas) Lit() int {
	n := 0
	for _, cells := range c.Cells {
		for _, r := range cells {
			n += bits.OnesCount32(uint32(r - brailleBlank))
		}
	}
	return n
}

// String renders the canvas without color.
func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow((c.Cols*3 + 1) * c.Rows)
	for _, cells := range c.Cells {
		b.WriteString(string(cells))
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

package sparkline

import (
	"math"
	"strings"
)

// Braille cells hold a 2x4 dot matrix. dotBits[y][x] is the bit for the dot
// at column x, row y within a cell.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

// Canvas is a dot grid backed by braille cells.
type Canvas struct {
	cols, rows int
	cells      []rune
}

// NewCanvas returns a canvas of cols x rows terminal cells, i.e.
// 2*cols x 4*rows dots.
func NewCanvas(cols, rows int) *Canvas {
	cols, rows = max(cols, 1), max(rows, 1)
	return &Canvas{cols: cols, rows: rows, cells: make([]rune, cols*rows)}
}

// Dots returns the dot resolution of the canvas.
func (c *Canvas) Dots() (w, h int) {
	return c.cols * 2, c.rows * 4
}

// Set turns on the dot at (x, y). Out of range dots are ignored.
func (c *Canvas) Set(x, y int) {
	w, h := c.Dots()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	c.cells[(y/4)*c.cols+x/2] |= dotBits[y%4][x%2]
}

// Line draws a straight segment between two dots.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Polyline draws connected segments through pts, which are expected in dot
// coordinates.
func (c *Canvas) Polyline(pts []Point) {
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		c.Line(toDot(a.X), toDot(a.Y), toDot(b.X), toDot(b.Y))
	}
	if len(pts) == 1 {
		c.Set(toDot(pts[0].X), toDot(pts[0].Y))
	}
}

// Lines returns one string per cell row. Empty cells render as spaces.
func (c *Canvas) Lines() []string {
	out := make([]string, c.rows)
	for r := 0; r < c.rows; r++ {
		var b strings.Builder
		for _, bits := range c.cells[r*c.cols : (r+1)*c.cols] {
			if bits == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteRune(brailleBase + bits)
		}
		out[r] = b.String()
	}
	return out
}

// String joins Lines with newlines.
func (c *Canvas) String() string {
	return strings.Join(c.Lines(), "\n")
}

// Render draws series into a cols x rows braille block. It returns false when
// there is nothing to draw.
func Render(series []float64, cols, rows int) (string, bool) {
	c := NewCanvas(cols, rows)
	w, h := c.Dots()
	// A stroke of one dot keeps the extremes inside the grid.
	pts, ok := ComputePolyline(series, float64(w), float64(h), 1)
	if !ok {
		return "", false
	}
	c.Polyline(pts)
	return c.String(), true
}

// toDot maps a box coordinate to the dot containing it.
func toDot(f float64) int {
	return int(math.Floor(f))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

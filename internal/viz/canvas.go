package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	// Marked cells hold an entity dot and render with the mark style.
	Marked [][]bool
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Marked: make([][]bool, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Marked[i] = make([]bool, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set lights the dot at (x, y) in sub-pixel coordinates.
// The canvas is (Width*2) x (Height*4) sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	mask := ^rune(pixelMap[subY][subX])
	c.Grid[row][col] &= mask
	if c.Grid[row][col] < 0x2800 {
		c.Grid[row][col] = 0x2800
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
			c.Marked[i][j] = false
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawEllipse traces an axis-aligned ellipse centered at (cx, cy) with
// semi-axes rx and ry, all in sub-pixels.
func (c *Canvas) DrawEllipse(cx, cy int, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		c.Set(cx, cy)
		return
	}
	// one sample per sub-pixel of circumference is enough to close the curve
	n := int(2*math.Pi*math.Max(rx, ry)) + 8
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		c.Set(cx+int(math.Round(rx*math.Cos(a))), cy-int(math.Round(ry*math.Sin(a))))
	}
}

// Dot lights a 2x2 block at (x, y) and marks its cells.
func (c *Canvas) Dot(x, y int) {
	for dx := 0; dx < 2; dx++ {
		for dy := 0; dy < 2; dy++ {
			px, py := x+dx, y+dy
			c.Set(px, py)
			if px >= 0 && py >= 0 && px/2 < c.Width && py/4 < c.Height {
				c.Marked[py/4][px/2] = true
			}
		}
	}
}

// SubSize returns the canvas size in sub-pixels.
func (c *Canvas) SubSize() (int, int) {
	return c.Width * 2, c.Height * 4
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render draws the canvas with plain cells in base and marked cells in mark.
func (c *Canvas) Render(base, mark lipgloss.Style) string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Marked[i][j] == c.Marked[i][start] {
				continue
			}
			style := base
			if c.Marked[i][start] {
				style = mark
			}
			b.WriteString(style.Render(string(row[start:j])))
			start = j
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

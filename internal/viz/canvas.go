package viz

import (
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

const blank = 0x2800

// Ink tells the renderer how to color a cell.
type Ink uint8

const (
	InkNone Ink = iota
	InkLine
	InkHeading
	InkLetter
)

// Canvas is a Braille dot layer with a text layer on top. Text cells hide
// the dots beneath them.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Ink           [][]Ink
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h}
	c.Resize(w, h)
	return c
}

func (c *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.Ink = make([][]Ink, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Ink[i] = make([]Ink, w)
	}
	c.Clear()
}

// Set sets a dot at (x, y) in sub-pixel coordinates; the canvas is
// (Width*2) x (Height*4) dots.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	if c.Ink[row][col] > InkLine {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.Ink[row][col] = InkLine
}

// Put writes a glyph into a cell, replacing any dots there.
func (c *Canvas) Put(col, row int, r rune, ink Ink) {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] = r
	c.Ink[row][col] = ink
}

// Text writes s left to right starting at (col, row).
func (c *Canvas) Text(col, row int, s string, ink Ink) {
	for _, r := range s {
		c.Put(col, row, r, ink)
		col++
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Ink[i][j] = InkNone
		}
	}
}

// DrawLine draws a dotted line using Bresenham's algorithm.
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

// String renders the canvas without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render colors runs of equal ink with the theme's styles.
func (c *Canvas) Render(th Theme) string {
	styles := map[Ink]lipgloss.Style{
		InkLine:    lipgloss.NewStyle().Foreground(th.Line),
		InkHeading: lipgloss.NewStyle().Foreground(th.Heading).Bold(true),
		InkLetter:  lipgloss.NewStyle().Foreground(th.Letter),
	}

	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Ink[i][j] == c.Ink[i][start] {
				continue
			}
			run := string(row[start:j])
			if st, ok := styles[c.Ink[i][start]]; ok {
				run = st.Render(run)
			}
			b.WriteString(run)
			start = j
		}
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

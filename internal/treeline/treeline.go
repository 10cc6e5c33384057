// Package treeline draws the scroll-driven line down the middle of the page:
// a quadratic curve from the top center that grows with the scroll offset
// and bows slightly to the right.
package treeline

import "github.com/san-kum/repulse/internal/repulse"

// Bow is the horizontal offset of the control point from the center line.
const Bow = 20.0

// Curve is a quadratic Bézier from Start through Control to End.
type Curve struct {
	Start, Control, End repulse.Vec2
}

// For returns the line for a viewport of the given width at scroll offset
// scrollY. Its length tracks the scroll, not the viewport height.
func For(width, scrollY float64) Curve {
	cx := width / 2
	return Curve{
		Start:   repulse.Vec2{X: cx, Y: 0},
		Control: repulse.Vec2{X: cx + Bow, Y: scrollY / 2},
		End:     repulse.Vec2{X: cx, Y: scrollY},
	}
}

func (c Curve) At(t float64) repulse.Vec2 {
	u := 1 - t
	return repulse.Vec2{
		X: u*u*c.Start.X + 2*u*t*c.Control.X + t*t*c.End.X,
		Y: u*u*c.Start.Y + 2*u*t*c.Control.Y + t*t*c.End.Y,
	}
}

// Points samples n+1 evenly spaced parameters including both ends.
func (c Curve) Points(n int) []repulse.Vec2 {
	if n < 1 {
		n = 1
	}
	out := make([]repulse.Vec2, n+1)
	for i := range out {
		out[i] = c.At(float64(i) / float64(n))
	}
	return out
}

package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/repulse/internal/repulse"
	"github.com/san-kum/repulse/internal/treeline"
)

// Dot is one element drawn in a snapshot.
type Dot struct {
	Center repulse.Vec2
	Offset repulse.Vec2
	Class  repulse.Class
}

func header(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
}

// SnapshotToSVG draws elements at their displaced positions with a faint
// mark at rest, plus the scroll line for scrollY.
func SnapshotToSVG(viewport repulse.Vec2, scrollY float64, dots []Dot) string {
	var sb strings.Builder
	header(&sb, viewport.X, viewport.Y)

	c := treeline.For(viewport.X, scrollY)
	fmt.Fprintf(&sb, `<path fill="none" stroke="#ff6f00" stroke-width="2" d="M%.1f,%.1f Q%.1f,%.1f %.1f,%.1f"/>
`, c.Start.X, c.Start.Y, c.Control.X, c.Control.Y, c.End.X, c.End.Y)

	for _, d := range dots {
		rest := d.Center.Sub(repulse.Vec2{Y: scrollY})
		at := rest.Add(d.Offset)
		color, r := "#ffc107", 3.0
		if d.Class == repulse.ClassHeading {
			color, r = "#ffffff", 6.0
		}
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="1" fill="#444444"/>
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#444444"/>
<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, rest.X, rest.Y, rest.X, rest.Y, at.X, at.Y, at.X, at.Y, r, color)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG plots values against their index, e.g. energy per frame.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	points := make([]repulse.Vec2, len(values))
	for i, v := range values {
		points[i] = repulse.Vec2{X: float64(i), Y: v}
	}
	return TrajectoryToSVG(points, width, height, strokeColor)
}

// TrajectoryToSVG creates an SVG path from points, scaled to fit with 10%
// padding. Y grows upward.
func TrajectoryToSVG(points []repulse.Vec2, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor)

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

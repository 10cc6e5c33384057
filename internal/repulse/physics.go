package repulse

import (
	"math"
	"strconv"
)

// State is the physics record of one element.
type State struct {
	OffsetX, OffsetY     float64
	VelocityX, VelocityY float64
}

func (s State) Offset() Vec2   { return Vec2{s.OffsetX, s.OffsetY} }
func (s State) Velocity() Vec2 { return Vec2{s.VelocityX, s.VelocityY} }

// KineticEnergy treats the element as a unit mass.
func (s State) KineticEnergy() float64 {
	return 0.5 * (s.VelocityX*s.VelocityX + s.VelocityY*s.VelocityY)
}

// Repel adds the cursor's push to s and returns the force magnitude applied.
// The direction points from cursor to center; when both coincide the angle
// is atan2(0, 0) = 0 and the whole force goes to +X.
func Repel(s *State, center, cursor Vec2, p Profile) float64 {
	dx := center.X - cursor.X
	dy := center.Y - cursor.Y
	d := math.Sqrt(dx*dx + dy*dy)
	if d >= p.Radius {
		return 0
	}

	force := (1 - d/p.Radius) * p.Strength
	angle := math.Atan2(dy, dx)
	s.VelocityX += math.Cos(angle) * force
	s.VelocityY += math.Sin(angle) * force
	return force
}

// Integrate damps the velocity, applies the spring toward rest and advances
// the offset by one tick.
func Integrate(s *State, p Profile) {
	s.VelocityX *= Damping
	s.VelocityY *= Damping
	s.VelocityX -= s.OffsetX * p.Spring
	s.VelocityY -= s.OffsetY * p.Spring

	s.OffsetX += s.VelocityX
	s.OffsetY += s.VelocityY
}

// Translate formats an offset as a translate transform, e.g.
// "translate(1.5px, -2px)".
func Translate(x, y float64) string {
	return "translate(" + formatPx(x) + "px, " + formatPx(y) + "px)"
}

func formatPx(v float64) string {
	if v == 0 {
		// avoid "-0"
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

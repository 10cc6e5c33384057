package trace

import (
	"math"
	"slices"

	"github.com/san-kum/repulse/internal/repulse"
)

// DefaultDt is the spacing of generated events, one per 60 Hz frame.
const DefaultDt = 1.0 / 60

// Sweep moves the pointer in a straight line from one point to another.
func Sweep(from, to repulse.Vec2, steps int, start, dt float64) []Event {
	steps = max(steps, 0)
	events := make([]Event, 0, steps+1)
	for i := 0; i <= steps; i++ {
		f := 0.0
		if steps > 0 {
			f = float64(i) / float64(steps)
		}
		events = append(events, Event{
			Time: start + float64(i)*dt,
			Kind: Move,
			X:    from.X + (to.X-from.X)*f,
			Y:    from.Y + (to.Y-from.Y)*f,
		})
	}
	return events
}

// Orbit circles the pointer once around center.
func Orbit(center repulse.Vec2, radius float64, steps int, start, dt float64) []Event {
	steps = max(steps, 0)
	events := make([]Event, 0, steps)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		events = append(events, Event{
			Time: start + float64(i)*dt,
			Kind: Move,
			X:    center.X + radius*math.Cos(a),
			Y:    center.Y + radius*math.Sin(a),
		})
	}
	return events
}

// Hold repeats a still pointer, letting displaced elements spring back.
func Hold(at repulse.Vec2, steps int, start, dt float64) []Event {
	if steps <= 0 {
		return []Event{}
	}
	return Sweep(at, at, steps-1, start, dt)
}

// ScrollRamp scrolls linearly between two offsets.
func ScrollRamp(from, to float64, steps int, start, dt float64) []Event {
	steps = max(steps, 0)
	events := make([]Event, 0, steps+1)
	for i := 0; i <= steps; i++ {
		f := 0.0
		if steps > 0 {
			f = float64(i) / float64(steps)
		}
		events = append(events, Event{
			Time: start + float64(i)*dt,
			Kind: Scroll,
			Y:    from + (to-from)*f,
		})
	}
	return events
}

// Merge combines traces ordered by time; ties keep argument order.
func Merge(traces ...[]Event) []Event {
	var out []Event
	for _, t := range traces {
		out = append(out, t...)
	}
	slices.SortStableFunc(out, func(a, b Event) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})
	return out
}

// End returns the time just after the last event.
func End(events []Event, dt float64) float64 {
	if len(events) == 0 {
		return 0
	}
	return events[len(events)-1].Time + dt
}

// Demo sweeps across the title, circles the intro copy, scrolls down under
// a resting pointer and back, then holds still far from everything.
func Demo(viewport repulse.Vec2) []Event {
	w, h := viewport.X, viewport.Y
	dt := DefaultDt

	events := Sweep(repulse.Vec2{X: 0, Y: h * 0.14}, repulse.Vec2{X: w, Y: h * 0.14}, 90, 0, dt)
	events = append(events, Orbit(repulse.Vec2{X: w / 2, Y: h*0.45 + 80}, h*0.12, 120, End(events, dt), dt)...)

	still := repulse.Vec2{X: w / 2, Y: h * 0.5}
	t := End(events, dt)
	events = append(events, Sweep(still, still, 0, t, dt)...)
	t = End(events, dt)
	events = append(events, ScrollRamp(0, h*0.8, 60, t, dt)...)
	t = End(events, dt)
	events = append(events, ScrollRamp(h*0.8, 0, 60, t, dt)...)

	events = append(events, Hold(repulse.Vec2{X: 0, Y: h}, 240, End(events, dt), dt)...)
	return events
}

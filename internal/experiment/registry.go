package experiment

import (
	"fmt"
	"os"
	"sort"

	"github.com/san-kum/repulse/internal/repulse"
	"github.com/san-kum/repulse/internal/trace"
)

// Registry resolves trace names to generated event streams sized for a
// viewport.
type Registry struct {
	traces map[string]func(vp repulse.Vec2) []trace.Event
}

func NewRegistry() *Registry {
	r := &Registry{traces: make(map[string]func(repulse.Vec2) []trace.Event)}

	dt := trace.DefaultDt
	r.traces["demo"] = trace.Demo
	r.traces["sweep"] = func(vp repulse.Vec2) []trace.Event {
		y := vp.Y * 0.14
		return trace.Sweep(repulse.Vec2{X: 0, Y: y}, repulse.Vec2{X: vp.X, Y: y}, 120, 0, dt)
	}
	r.traces["orbit"] = func(vp repulse.Vec2) []trace.Event {
		return trace.Orbit(repulse.Vec2{X: vp.X / 2, Y: vp.Y*0.45 + 80}, vp.Y*0.12, 240, 0, dt)
	}
	r.traces["scroll"] = func(vp repulse.Vec2) []trace.Event {
		events := trace.Hold(repulse.Vec2{X: vp.X / 2, Y: vp.Y / 2}, 1, 0, dt)
		events = append(events, trace.ScrollRamp(0, vp.Y, 120, trace.End(events, dt), dt)...)
		return events
	}
	return r
}

// GetTrace returns the named trace, or loads path when it names a file.
func (r *Registry) GetTrace(nameOrPath string, vp repulse.Vec2) ([]trace.Event, error) {
	if fn, ok := r.traces[nameOrPath]; ok {
		return fn(vp), nil
	}
	if _, err := os.Stat(nameOrPath); err == nil {
		return trace.Load(nameOrPath)
	}
	return nil, fmt.Errorf("unknown trace: %s", nameOrPath)
}

func (r *Registry) ListTraces() []string {
	names := make([]string, 0, len(r.traces))
	for name := range r.traces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

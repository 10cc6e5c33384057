package metrics

import "github.com/san-kum/repulse/internal/repulse"

// Metric accumulates a single number over the ticks of a run.
type Metric interface {
	Name() string
	Observe(t *repulse.Tick)
	Value() float64
	Reset()
}

// Defaults is the set recorded for every stored run.
func Defaults() []Metric {
	return []Metric{
		NewEnergy(),
		NewMaxDisplacement(),
		NewStability(DefaultThreshold),
		NewPushEffort(),
		NewSettle(DefaultEpsilon),
	}
}

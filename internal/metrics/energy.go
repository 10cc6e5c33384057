package metrics

import (
	"math"

	"github.com/san-kum/repulse/internal/repulse"
)

// TickEnergy is the total kinetic energy of all elements in a tick, each
// treated as a unit mass.
func TickEnergy(t *repulse.Tick) float64 {
	total := 0.0
	for _, s := range t.Samples {
		total += s.State.KineticEnergy()
	}
	return total
}

// Energy is the mean TickEnergy over a run.
type Energy struct {
	name    string
	total   float64
	samples int
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(t *repulse.Tick) {
	e.total += TickEnergy(t)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Reset() {
	e.total = 0
	e.samples = 0
}

// MaxDisplacement is the largest offset any element reached.
type MaxDisplacement struct {
	name string
	max  float64
}

func NewMaxDisplacement() *MaxDisplacement {
	return &MaxDisplacement{name: "max_displacement"}
}

func (m *MaxDisplacement) Name() string { return m.name }

func (m *MaxDisplacement) Observe(t *repulse.Tick) {
	for _, s := range t.Samples {
		m.max = math.Max(m.max, s.State.Offset().Len())
	}
}

func (m *MaxDisplacement) Value() float64 { return m.max }
func (m *MaxDisplacement) Reset()         { m.max = 0 }

package metrics

import "github.com/san-kum/repulse/internal/repulse"

const DefaultEpsilon = 0.05

// Settle counts the ticks between the last push and the moment every
// element is back within epsilon of rest. It reports -1 while elements are
// still moving at the end of the run.
type Settle struct {
	name      string
	epsilon   float64
	sincePush int
	settledAt int
	pushed    bool
}

func NewSettle(epsilon float64) *Settle {
	return &Settle{name: "settle_ticks", epsilon: epsilon, settledAt: -1}
}

func (s *Settle) Name() string { return s.name }

func (s *Settle) Observe(t *repulse.Tick) {
	pushed := false
	resting := true
	for _, sample := range t.Samples {
		if sample.Force > 0 {
			pushed = true
		}
		if sample.State.Offset().Len() >= s.epsilon || sample.State.Velocity().Len() >= s.epsilon {
			resting = false
		}
	}

	if pushed {
		s.pushed = true
		s.sincePush = 0
		s.settledAt = -1
		return
	}
	if !s.pushed {
		return
	}
	s.sincePush++
	if resting && s.settledAt < 0 {
		s.settledAt = s.sincePush
	} else if !resting {
		s.settledAt = -1
	}
}

func (s *Settle) Value() float64 {
	if !s.pushed {
		return 0
	}
	return float64(s.settledAt)
}

func (s *Settle) Reset() {
	s.sincePush = 0
	s.settledAt = -1
	s.pushed = false
}

package metrics

import "github.com/san-kum/repulse/internal/repulse"

const DefaultThreshold = 20.0

// Stability is the fraction of ticks in which every element stayed within
// threshold pixels of rest.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(t *repulse.Tick) {
	s.samples++
	for _, sample := range t.Samples {
		if sample.State.Offset().Len() > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

package metrics

import "github.com/san-kum/repulse/internal/repulse"

// PushEffort is the mean total repulsion force applied per tick.
type PushEffort struct {
	name    string
	sum     float64
	samples int
}

func NewPushEffort() *PushEffort {
	return &PushEffort{
		name: "push_effort",
	}
}

func (p *PushEffort) Name() string {
	return p.name
}

func (p *PushEffort) Observe(t *repulse.Tick) {
	for _, s := range t.Samples {
		p.sum += s.Force
	}
	p.samples++
}

func (p *PushEffort) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.sum / float64(p.samples)
}

func (p *PushEffort) Reset() {
	p.sum = 0
	p.samples = 0
}

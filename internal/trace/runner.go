package trace

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/repulse/internal/metrics"
	"github.com/san-kum/repulse/internal/repulse"
)

// Page is the document a runner drives: queryable and scrollable.
type Page interface {
	repulse.Document
	SetScroll(x, y float64) repulse.Vec2
}

// Frame is one animator tick as seen by the runner.
type Frame struct {
	Seq       int
	Time      float64
	Cursor    repulse.Vec2
	Synthetic bool
	Energy    float64
	Samples   []repulse.Sample
}

type Result struct {
	Events  int
	Frames  []Frame
	Metrics map[string]float64
}

// Energies returns the per-frame energy series.
func (r *Result) Energies() []float64 {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = f.Energy
	}
	return out
}

type Runner struct {
	page    Page
	anim    *repulse.Animator
	frames  *FrameQueue
	metrics []metrics.Metric
	logger  *slog.Logger

	now    float64
	result *Result
}

func NewRunner(page Page, profiles repulse.Profiles, opts ...repulse.Option) *Runner {
	r := &Runner{
		page:    page,
		frames:  &FrameQueue{},
		metrics: make([]metrics.Metric, 0),
		logger:  slog.Default(),
	}
	r.anim = repulse.New(page, r.frames, profiles, opts...)
	r.anim.AddObserver(r)
	return r
}

func (r *Runner) Animator() *repulse.Animator { return r.anim }
func (r *Runner) AddMetric(m metrics.Metric)  { r.metrics = append(r.metrics, m) }

func (r *Runner) OnTick(t *repulse.Tick) {
	for _, m := range r.metrics {
		m.Observe(t)
	}
	if r.result == nil {
		return
	}
	r.result.Frames = append(r.result.Frames, Frame{
		Seq:       t.Seq,
		Time:      r.now,
		Cursor:    t.Cursor,
		Synthetic: t.Synthetic,
		Energy:    metrics.TickEnergy(t),
		Samples:   t.Samples,
	})
}

// Run registers the page's elements and replays events in order. Pending
// animation frames are flushed after every event. On cancellation the
// partial result is returned with the context error.
func (r *Runner) Run(ctx context.Context, events []Event) (*Result, error) {
	for _, m := range r.metrics {
		m.Reset()
	}
	result := &Result{
		Frames:  make([]Frame, 0, len(events)),
		Metrics: make(map[string]float64),
	}
	r.result = result
	defer func() { r.result = nil }()

	created := r.anim.Init()
	r.logger.Debug("replay starting", "events", len(events), "registered", created)

	for i, ev := range events {
		select {
		case <-ctx.Done():
			r.collect(result)
			return result, ctx.Err()
		default:
		}

		if err := ev.Validate(); err != nil {
			r.collect(result)
			return result, fmt.Errorf("event %d: %w", i, err)
		}

		r.now = ev.Time
		switch ev.Kind {
		case Move:
			r.anim.PointerMove(ev.X, ev.Y)
		case Scroll:
			r.page.SetScroll(ev.X, ev.Y)
			r.anim.Scroll()
		}
		r.frames.Flush()
		result.Events++
	}

	r.collect(result)
	r.logger.Debug("replay finished", "events", result.Events, "frames", len(result.Frames))
	return result, nil
}

func (r *Runner) collect(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/repulse/internal/metrics"
	"github.com/san-kum/repulse/internal/repulse"
	"github.com/san-kum/repulse/internal/scene"
	"github.com/san-kum/repulse/internal/trace"
)

// Config names the inputs of one replay.
type Config struct {
	// Scene is a scene file; empty uses the stock page at Viewport.
	Scene string
	// Trace is a trace file or the name of a generated trace.
	Trace    string
	Viewport repulse.Vec2
	Profiles repulse.Profiles
	Logger   *slog.Logger
}

// Experiment is a page, a trace and a runner ready to replay.
type Experiment struct {
	cfg    Config
	page   *scene.Page
	events []trace.Event
	runner *trace.Runner
}

func New(cfg Config) *Experiment {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(registry *Registry, ms []metrics.Metric) error {
	var spec *scene.Spec
	if e.cfg.Scene == "" {
		spec = scene.Default(e.cfg.Viewport.X, e.cfg.Viewport.Y)
	} else {
		var err error
		if spec, err = scene.Load(e.cfg.Scene); err != nil {
			return err
		}
	}

	page, err := scene.New(spec)
	if err != nil {
		return fmt.Errorf("build page: %w", err)
	}

	events, err := registry.GetTrace(e.cfg.Trace, page.Viewport())
	if err != nil {
		return err
	}

	e.page = page
	e.events = events
	e.runner = trace.NewRunner(page, e.cfg.Profiles, repulse.WithLogger(e.cfg.Logger))
	for _, m := range ms {
		e.runner.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*trace.Result, error) {
	if e.runner == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.runner.Run(ctx, e.events)
}

func (e *Experiment) Page() *scene.Page     { return e.page }
func (e *Experiment) Events() []trace.Event { return e.events }
func (e *Experiment) Runner() *trace.Runner { return e.runner }
func (e *Experiment) Config() Config        { return e.cfg }

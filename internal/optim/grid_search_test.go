package optim

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/san-kum/repulse/internal/experiment"
	"github.com/san-kum/repulse/internal/metrics"
	"github.com/san-kum/repulse/internal/repulse"
)

func builder(t *testing.T) BuildFunc {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return func(params map[string]float64) (*experiment.Experiment, error) {
		profiles, err := experiment.ApplyParams(repulse.DefaultProfiles(), params)
		if err != nil {
			return nil, err
		}
		exp := experiment.New(experiment.Config{
			Trace:    "sweep",
			Viewport: repulse.Vec2{X: 960, Y: 640},
			Profiles: profiles,
			Logger:   logger,
		})
		return exp, exp.Setup(experiment.NewRegistry(), []metrics.Metric{metrics.NewMaxDisplacement()})
	}
}

func TestGridSearchFindsWeakestPush(t *testing.T) {
	g := NewGridSearch(
		[]string{"heading.strength", "letter.strength"},
		[][]float64{{0.5, 1.5, 3}, {0.2, 0.8}},
	)
	if g.Size() != 6 {
		t.Fatalf("size = %d, want 6", g.Size())
	}

	params, best, err := g.Search(context.Background(), builder(t), "max_displacement")
	if err != nil {
		t.Fatal(err)
	}
	if params["heading.strength"] != 0.5 {
		t.Errorf("best params = %v", params)
	}
	if best <= 0 {
		t.Errorf("best = %v, want a positive displacement", best)
	}
}

func TestGridSearchSkipsInvalid(t *testing.T) {
	g := NewGridSearch([]string{"heading.radius"}, [][]float64{{-1, 100}})
	params, _, err := g.Search(context.Background(), builder(t), "max_displacement")
	if err != nil {
		t.Fatal(err)
	}
	if params["heading.radius"] != 100 {
		t.Errorf("params = %v", params)
	}
}

func TestGridSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGridSearch([]string{"heading.spring"}, [][]float64{{0.1, 0.2}})
	if _, _, err := g.Search(ctx, builder(t), "max_displacement"); err == nil {
		t.Error("cancelled search returned no error")
	}
}

func TestGridSearchMismatch(t *testing.T) {
	g := NewGridSearch([]string{"a", "b"}, [][]float64{{1}})
	if _, _, err := g.Search(context.Background(), builder(t), "x"); err == nil {
		t.Error("mismatched grid accepted")
	}
}

package experiment

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/san-kum/repulse/internal/metrics"
	"github.com/san-kum/repulse/internal/repulse"
	"github.com/san-kum/repulse/internal/trace"
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestRegistryTraces(t *testing.T) {
	r := NewRegistry()
	vp := repulse.Vec2{X: 960, Y: 640}

	names := r.ListTraces()
	if len(names) != 4 || names[0] != "demo" {
		t.Fatalf("traces = %v", names)
	}
	for _, name := range names {
		events, err := r.GetTrace(name, vp)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(events) == 0 {
			t.Errorf("%s: empty trace", name)
		}
	}

	if _, err := r.GetTrace("nope", vp); err == nil {
		t.Error("unknown trace accepted")
	}
}

func TestRegistryLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	want := trace.Sweep(repulse.Vec2{}, repulse.Vec2{X: 10}, 2, 0, trace.DefaultDt)
	if err := trace.Save(path, want); err != nil {
		t.Fatal(err)
	}

	got, err := NewRegistry().GetTrace(path, repulse.Vec2{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Errorf("loaded %d events, want %d", len(got), len(want))
	}
}

func TestExperimentRun(t *testing.T) {
	exp := New(Config{
		Trace:    "sweep",
		Viewport: repulse.Vec2{X: 960, Y: 640},
		Profiles: repulse.DefaultProfiles(),
		Logger:   quiet(),
	})

	if _, err := exp.Run(context.Background()); err == nil {
		t.Fatal("run before setup succeeded")
	}
	if err := exp.Setup(NewRegistry(), metrics.Defaults()); err != nil {
		t.Fatal(err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.Events != len(exp.Events()) {
		t.Errorf("events = %d, want %d", result.Events, len(exp.Events()))
	}
	if result.Metrics["max_displacement"] <= 0 {
		t.Errorf("sweep across the title moved nothing: %v", result.Metrics)
	}
}

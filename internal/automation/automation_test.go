package automation

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/repulse/internal/config"
	"github.com/san-kum/repulse/internal/experiment"
)

func newRunner() *Runner {
	return &Runner{
		Base:     config.DefaultConfig(),
		Registry: experiment.NewRegistry(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

const scenarioYAML = `
name: presets on the title
steps:
  - trace: sweep
    preset: calm
  - trace: sweep
    preset: lively
  - trace: orbit
    params:
      letter.strength: 2
`

func TestRunScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(sc.Steps) != 3 || sc.Steps[2].Params["letter.strength"] != 2 {
		t.Fatalf("parsed %+v", sc)
	}

	results, err := newRunner().RunScenario(context.Background(), sc)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}

	calm := results[0].Result.Metrics["max_displacement"]
	lively := results[1].Result.Metrics["max_displacement"]
	if calm >= lively {
		t.Errorf("calm pushed %v, lively %v", calm, lively)
	}
}

func TestRunScenarioStopsOnBadStep(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{{Trace: "sweep"}, {Trace: "sweep", Preset: "nope"}}}
	results, err := newRunner().RunScenario(context.Background(), sc)
	if err == nil {
		t.Fatal("unknown preset accepted")
	}
	if len(results) != 1 {
		t.Errorf("kept %d results, want 1", len(results))
	}
}

func TestLoadScenarioEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte("name: nothing\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScenario(path); err == nil {
		t.Error("empty scenario accepted")
	}
}

func TestRunSweep(t *testing.T) {
	results, err := newRunner().RunSweep(context.Background(), &ParameterSweep{
		Trace:     "sweep",
		ParamName: "heading.strength",
		ParamMin:  0.5,
		ParamMax:  2.5,
		NumSteps:  3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 || results[2].ParamValue != 2.5 {
		t.Fatalf("results = %+v", results)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Metrics["max_displacement"] <= results[i-1].Metrics["max_displacement"] {
			t.Errorf("displacement did not grow with strength at step %d", i)
		}
	}

	if _, err := newRunner().RunSweep(context.Background(), &ParameterSweep{Trace: "sweep", ParamName: "heading.strength", NumSteps: 1}); err == nil {
		t.Error("single-step sweep accepted")
	}
}

// Package automation runs scripted sequences of replays and parameter
// sweeps.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/repulse/internal/config"
	"github.com/san-kum/repulse/internal/experiment"
	"github.com/san-kum/repulse/internal/metrics"
	"github.com/san-kum/repulse/internal/repulse"
	"github.com/san-kum/repulse/internal/trace"
)

// Scenario defines a scripted replay sequence.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single replay in a scenario.
type ScenarioStep struct {
	Trace  string             `yaml:"trace"`
	Scene  string             `yaml:"scene"`
	Preset string             `yaml:"preset"`
	Params map[string]float64 `yaml:"params"`
	SaveAs string             `yaml:"save_as"`
}

// StepResult pairs a step with its replay.
type StepResult struct {
	Step     ScenarioStep
	Page     string
	Elements int
	Profiles repulse.Profiles
	Result   *trace.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s: no steps", path)
	}
	return &scenario, nil
}

// Runner holds what every step shares.
type Runner struct {
	Base     *config.Config
	Registry *experiment.Registry
	Logger   *slog.Logger
}

func (r *Runner) build(step ScenarioStep) (*experiment.Experiment, error) {
	profiles := r.Base.RepulsionProfiles()
	if step.Preset != "" {
		p := config.GetPreset(step.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s", step.Preset)
		}
		profiles = p.RepulsionProfiles()
	}
	profiles, err := experiment.ApplyParams(profiles, step.Params)
	if err != nil {
		return nil, err
	}

	sceneFile := r.Base.Scene
	if step.Scene != "" {
		sceneFile = step.Scene
	}
	exp := experiment.New(experiment.Config{
		Scene:    sceneFile,
		Trace:    step.Trace,
		Viewport: repulse.Vec2{X: r.Base.Viewport.Width, Y: r.Base.Viewport.Height},
		Profiles: profiles,
		Logger:   r.Logger,
	})
	if err := exp.Setup(r.Registry, metrics.Defaults()); err != nil {
		return nil, err
	}
	return exp, nil
}

// RunScenario executes all steps in order and stops at the first failure.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		r.Logger.Info("scenario step", "step", i+1, "of", len(scenario.Steps), "trace", step.Trace)

		exp, err := r.build(step)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{
			Step:     step,
			Page:     exp.Page().Name(),
			Elements: exp.Runner().Animator().Registry().Len(),
			Profiles: exp.Config().Profiles,
			Result:   result,
		})
	}

	return results, nil
}

// ParameterSweep replays one trace across evenly spaced values of a
// "<class>.<field>" parameter.
type ParameterSweep struct {
	Trace     string
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
}

func (r *Runner) RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		exp, err := r.build(ScenarioStep{
			Trace:  sweep.Trace,
			Params: map[string]float64{sweep.ParamName: paramVal},
		})
		if err != nil {
			return results, err
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, err
		}

		results = append(results, SweepResult{ParamValue: paramVal, Metrics: result.Metrics})
		r.Logger.Debug("sweep", "step", i+1, "param", sweep.ParamName, "value", paramVal)
	}

	return results, nil
}

package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/bezspring/internal/dynamo"
	"github.com/san-kum/bezspring/internal/geom"
	"github.com/san-kum/bezspring/internal/metrics"
	"github.com/san-kum/bezspring/internal/sim"
	"github.com/san-kum/bezspring/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of traces.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one trace. Omitted fields take the trace defaults.
type ScenarioStep struct {
	Method    string      `yaml:"method"`
	Stiffness *float64    `yaml:"stiffness"`
	Damping   *float64    `yaml:"damping"`
	Start     *[2]float64 `yaml:"start"`
	Target    *[2]float64 `yaml:"target"`
	Frames    int         `yaml:"frames"`
	Save      bool        `yaml:"save"`
}

// Outcome is the result of one scenario step.
type Outcome struct {
	Step   int
	Config sim.Config
	Result *dynamo.Result
	RunID  string
	Err    error
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%s: scenario has no steps", path)
	}

	return &scenario, nil
}

// Config expands the step into a trace config.
func (s ScenarioStep) Config() sim.Config {
	cfg := sim.DefaultConfig()
	if s.Method != "" {
		cfg.Method = s.Method
	}
	if s.Stiffness != nil {
		cfg.Stiffness = *s.Stiffness
	}
	if s.Damping != nil {
		cfg.Damping = *s.Damping
	}
	if s.Start != nil {
		cfg.Start = geom.Pt(s.Start[0], s.Start[1])
	}
	if s.Target != nil {
		cfg.Target = geom.Pt(s.Target[0], s.Target[1])
	}
	if s.Frames != 0 {
		cfg.Steps = s.Frames
	}
	return cfg
}

// RunScenario runs every step in order. A step that diverges is recorded
// in its Outcome and the scenario continues; configuration and storage
// errors stop it. store may be nil when no step saves.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg := step.Config()
		runner := sim.New()
		for _, m := range metrics.Defaults(cfg.Stiffness, cfg.Target.X, cfg.Target.Y) {
			runner.AddMetric(m)
		}

		result, err := runner.Run(ctx, cfg)
		var simErr *dynamo.SimulationError
		if err != nil && !errors.As(err, &simErr) {
			return outcomes, fmt.Errorf("step %d: %w", i+1, err)
		}

		out := Outcome{Step: i + 1, Config: cfg, Result: result, Err: err}
		if step.Save {
			if store == nil {
				return outcomes, fmt.Errorf("step %d: save requested without a store", i+1)
			}
			id, saveErr := store.Save(runInfo(cfg), result, err)
			if saveErr != nil {
				return outcomes, fmt.Errorf("step %d save: %w", i+1, saveErr)
			}
			out.RunID = id
		}
		outcomes = append(outcomes, out)
	}

	return outcomes, nil
}

func runInfo(cfg sim.Config) storage.RunInfo {
	return storage.RunInfo{
		Method:    cfg.Method,
		Stiffness: cfg.Stiffness,
		Damping:   cfg.Damping,
		Start:     [2]float64{cfg.Start.X, cfg.Start.Y},
		Target:    [2]float64{cfg.Target.X, cfg.Target.Y},
		Steps:     cfg.Steps,
	}
}

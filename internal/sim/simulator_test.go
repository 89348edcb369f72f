package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/bezspring/internal/dynamo"
	"github.com/san-kum/bezspring/internal/geom"
	"github.com/san-kum/bezspring/internal/metrics"
)

type countingObserver struct {
	steps []int
}

func (c *countingObserver) OnStep(x dynamo.State, step int) {
	c.steps = append(c.steps, step)
}

func TestRunnerRun(t *testing.T) {
	cfg := DefaultConfig()
	r := New()
	obs := &countingObserver{}
	r.AddObserver(obs)
	for _, m := range metrics.Defaults(cfg.Stiffness, cfg.Target.X, cfg.Target.Y) {
		r.AddMetric(m)
	}

	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != cfg.Steps+1 {
		t.Errorf("expected %d states, got %d", cfg.Steps+1, len(result.States))
	}
	if result.StepsTaken != cfg.Steps {
		t.Errorf("expected %d steps taken, got %d", cfg.Steps, result.StepsTaken)
	}
	if len(obs.steps) != cfg.Steps+1 || obs.steps[0] != 0 {
		t.Errorf("expected observer to see steps 0..%d, got %d calls", cfg.Steps, len(obs.steps))
	}

	final := result.States[len(result.States)-1]
	if math.Abs(final[dynamo.IdxX]-100) >= 0.01 {
		t.Errorf("expected final x ~100, got %f", final[dynamo.IdxX])
	}
	for i, s := range result.States {
		if math.Abs(s[dynamo.IdxX]) >= 200 {
			t.Fatalf("step %d: |x| = %f exceeds bound", i, s[dynamo.IdxX])
		}
	}

	settle := result.Metrics["settle_step"]
	if settle <= 0 || settle > float64(cfg.Steps) {
		t.Errorf("expected settle step within run, got %f", settle)
	}
}

func TestRunnerAnalytic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Method = MethodAnalytic
	cfg.Start = geom.Pt(0, 50)

	result, err := New().Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	final := result.States[len(result.States)-1]
	if d := final.DistanceTo(100, 0); d >= 0.01 {
		t.Errorf("expected analytic follower to settle, distance %f", d)
	}
}

func TestRunnerUnknownMethod(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Method = "rk4"
	if _, err := New().Run(context.Background(), cfg); err == nil {
		t.Error("expected error for unknown method")
	}
}

func TestRunnerInvalidSteps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Steps = 0
	_, err := New().Run(context.Background(), cfg)
	if !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestRunnerDivergence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stiffness = 5
	cfg.Damping = 0
	cfg.DivergenceLimit = 1e4

	result, err := New().Run(context.Background(), cfg)
	if !errors.Is(err, dynamo.ErrUnstable) {
		t.Fatalf("expected ErrUnstable, got %v", err)
	}
	var simErr *dynamo.SimulationError
	if !errors.As(err, &simErr) {
		t.Fatalf("expected SimulationError, got %T", err)
	}
	if simErr.Step <= 0 || simErr.Step > cfg.Steps {
		t.Errorf("unexpected failing step %d", simErr.Step)
	}
	if result == nil || result.StepsTaken != simErr.Step-1 {
		t.Errorf("expected partial result up to step %d", simErr.Step-1)
	}
}

func TestRunnerFarTargetIsStable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Start = geom.Pt(5e6, -3e6)
	cfg.Target = geom.Pt(5e6+100, -3e6)

	result, err := New().Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("stable trace far from the origin failed: %v", err)
	}
	if result.StepsTaken != cfg.Steps {
		t.Errorf("expected %d steps, got %d", cfg.Steps, result.StepsTaken)
	}
}

func TestRunnerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New().Run(ctx, DefaultConfig())
	if !errors.Is(err, dynamo.ErrContextCanceled) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if len(result.States) != 1 {
		t.Errorf("expected only the initial state, got %d", len(result.States))
	}
}

func TestSweep(t *testing.T) {
	base := DefaultConfig()
	base.DivergenceLimit = 1e4
	tunings := Grid([]float64{0.05, 5}, []float64{0, 0.6})
	if len(tunings) != 4 {
		t.Fatalf("expected 4 tunings, got %d", len(tunings))
	}

	results, err := Sweep(context.Background(), base, tunings, func(cfg Config) []dynamo.Metric {
		return metrics.Defaults(cfg.Stiffness, cfg.Target.X, cfg.Target.Y)
	})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	for i, r := range results {
		if r.Tuning != tunings[i] {
			t.Errorf("result %d out of order: %+v", i, r.Tuning)
		}
	}

	stable := results[1]
	if stable.Err != nil {
		t.Errorf("expected k=0.05 d=0.6 to be stable, got %v", stable.Err)
	}
	if stable.Result.Metrics["settle_step"] < 0 {
		t.Error("expected stable tuning to settle")
	}

	diverging := results[2]
	if !errors.Is(diverging.Err, dynamo.ErrUnstable) {
		t.Errorf("expected k=5 d=0 to diverge, got %v", diverging.Err)
	}
}

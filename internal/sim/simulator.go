package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/bezspring/internal/dynamo"
	"github.com/san-kum/bezspring/internal/spring"
)

// Runner steps a spring toward its target and records the trajectory.
type Runner struct {
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func New() *Runner {
	return &Runner{
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
}

func (r *Runner) AddMetric(m dynamo.Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o dynamo.Observer) { r.observers = append(r.observers, o) }

// Run builds the follower described by cfg and steps it cfg.Steps times.
func (r *Runner) Run(ctx context.Context, cfg Config) (*dynamo.Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	f, err := NewFollower(cfg)
	if err != nil {
		return nil, err
	}
	return r.RunFollower(ctx, f, cfg)
}

// RunFollower steps an existing follower. The partial result is returned
// alongside any error so diverging runs can still be inspected.
func (r *Runner) RunFollower(ctx context.Context, f spring.Follower, cfg Config) (*dynamo.Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	result := &dynamo.Result{
		States:  make([]dynamo.State, 0, cfg.Steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	x := stateOf(f)
	r.observe(x, 0)
	result.States = append(result.States, x)

	var runErr error
	for i := 1; i <= cfg.Steps; i++ {
		if err := ctx.Err(); err != nil {
			runErr = fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, err)
			break
		}

		f.Update()
		x = stateOf(f)

		if cfg.ValidateState && !x.IsValid() {
			runErr = &dynamo.SimulationError{Step: i, State: x, Wrapped: dynamo.ErrInvalidState}
			break
		}
		if cfg.DivergenceLimit > 0 && x.Deviation(cfg.Target.X, cfg.Target.Y) > cfg.DivergenceLimit {
			runErr = &dynamo.SimulationError{Step: i, State: x, Wrapped: dynamo.ErrUnstable}
			break
		}

		r.observe(x, i)
		result.StepsTaken++
		result.States = append(result.States, x)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, runErr
}

func (r *Runner) observe(x dynamo.State, step int) {
	for _, m := range r.metrics {
		m.Observe(x, step)
	}
	for _, obs := range r.observers {
		obs.OnStep(x, step)
	}
}

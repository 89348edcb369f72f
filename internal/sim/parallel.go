package sim

import (
	"context"
	"errors"
	"runtime"

	"github.com/san-kum/bezspring/internal/dynamo"
	"golang.org/x/sync/errgroup"
)

// Tuning is one stiffness/damping pair of a sweep.
type Tuning struct {
	Stiffness float64
	Damping   float64
}

type SweepResult struct {
	Tuning
	Result *dynamo.Result
	// Err is set when the run diverged or produced invalid state. Such runs
	// do not fail the sweep.
	Err error
}

// Sweep runs base once per tuning, in parallel, with a fresh set of metrics
// from newMetrics for every run. Results are returned in input order. Only
// cancellation and configuration errors abort the sweep.
func Sweep(ctx context.Context, base Config, tunings []Tuning, newMetrics func(Config) []dynamo.Metric) ([]SweepResult, error) {
	results := make([]SweepResult, len(tunings))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, tn := range tunings {
		g.Go(func() error {
			cfg := base
			cfg.Stiffness, cfg.Damping = tn.Stiffness, tn.Damping

			r := New()
			if newMetrics != nil {
				for _, m := range newMetrics(cfg) {
					r.AddMetric(m)
				}
			}

			res, err := r.Run(ctx, cfg)
			results[i] = SweepResult{Tuning: tn, Result: res}
			switch {
			case err == nil:
			case errors.Is(err, dynamo.ErrUnstable), errors.Is(err, dynamo.ErrInvalidState):
				results[i].Err = err
			default:
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Grid returns every combination of the given stiffness and damping values.
func Grid(stiffness, damping []float64) []Tuning {
	out := make([]Tuning, 0, len(stiffness)*len(damping))
	for _, k := range stiffness {
		for _, d := range damping {
			out = append(out, Tuning{Stiffness: k, Damping: d})
		}
	}
	return out
}

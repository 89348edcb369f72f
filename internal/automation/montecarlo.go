package automation

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/san-kum/bezspring/internal/dynamo"
	"github.com/san-kum/bezspring/internal/geom"
	"github.com/san-kum/bezspring/internal/metrics"
	"github.com/san-kum/bezspring/internal/sim"
)

// MonteCarloConfig releases the spring from random starts around Base.Start.
type MonteCarloConfig struct {
	Base         sim.Config
	Perturbation float64
	NumTrials    int
	SettleTol    float64
	Seed         int64
}

type MonteCarloResult struct {
	TrialID    int
	Start      geom.Point
	FinalState dynamo.State
	SettleStep int
	Stable     bool
}

// RunMonteCarlo runs NumTrials traces. A trial is stable when it finished
// without diverging.
func RunMonteCarlo(ctx context.Context, cfg MonteCarloConfig) ([]MonteCarloResult, error) {
	results := make([]MonteCarloResult, 0, cfg.NumTrials)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	tol := cfg.SettleTol
	if tol <= 0 {
		tol = 0.01
	}

	for trial := 0; trial < cfg.NumTrials; trial++ {
		run := cfg.Base
		run.Start = geom.Pt(
			cfg.Base.Start.X+(rng.Float64()-0.5)*2*cfg.Perturbation,
			cfg.Base.Start.Y+(rng.Float64()-0.5)*2*cfg.Perturbation,
		)

		settle := metrics.NewSettleStep(tol, run.Target.X, run.Target.Y)
		runner := sim.New()
		runner.AddMetric(settle)

		result, err := runner.Run(ctx, run)
		if err != nil && !errors.Is(err, dynamo.ErrUnstable) && !errors.Is(err, dynamo.ErrInvalidState) {
			return results, err
		}

		var final dynamo.State
		if n := len(result.States); n > 0 {
			final = result.States[n-1]
		}

		results = append(results, MonteCarloResult{
			TrialID:    trial,
			Start:      run.Start,
			FinalState: final,
			SettleStep: int(settle.Value()),
			Stable:     err == nil,
		})
	}

	return results, nil
}

// MonteCarloStats counts stable and unstable trials and averages the
// settle step of trials that settled. meanSettle is -1 when none did.
func MonteCarloStats(results []MonteCarloResult) (stable, unstable int, meanSettle float64) {
	settled, sum := 0, 0
	for _, r := range results {
		if r.Stable {
			stable++
		} else {
			unstable++
		}
		if r.SettleStep >= 0 {
			settled++
			sum += r.SettleStep
		}
	}
	if settled == 0 {
		return stable, unstable, -1
	}
	return stable, unstable, float64(sum) / float64(settled)
}

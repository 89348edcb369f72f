package optim

import (
	"context"
	"errors"
	"math"

	"github.com/san-kum/bezspring/internal/dynamo"
	"github.com/san-kum/bezspring/internal/sim"
)

// ErrNoCandidate is returned when no tuning in the grid produced a score.
var ErrNoCandidate = errors.New("optim: no tuning settled")

// GridSearch looks for the spring tuning that minimises a trace metric.
type GridSearch struct {
	stiffness []float64
	damping   []float64
}

func NewGridSearch(stiffness, damping []float64) *GridSearch {
	return &GridSearch{stiffness: stiffness, damping: damping}
}

// Score turns a sweep result into a value to minimise. Diverged runs and
// negative metric values (an unsettled SettleStep) score +Inf.
func Score(r sim.SweepResult, metricName string) float64 {
	if r.Err != nil || r.Result == nil {
		return math.Inf(1)
	}
	v, ok := r.Result.Metrics[metricName]
	if !ok || v < 0 || math.IsNaN(v) {
		return math.Inf(1)
	}
	return v
}

// Search sweeps the grid and returns the best tuning, its score and every
// result.
func (g *GridSearch) Search(
	ctx context.Context,
	base sim.Config,
	newMetrics func(sim.Config) []dynamo.Metric,
	metricName string,
) (sim.Tuning, float64, []sim.SweepResult, error) {
	results, err := sim.Sweep(ctx, base, sim.Grid(g.stiffness, g.damping), newMetrics)
	if err != nil {
		return sim.Tuning{}, 0, nil, err
	}

	best := math.Inf(1)
	var bestTuning sim.Tuning
	for _, r := range results {
		if v := Score(r, metricName); v < best {
			best, bestTuning = v, r.Tuning
		}
	}
	if math.IsInf(best, 1) {
		return sim.Tuning{}, best, results, ErrNoCandidate
	}
	return bestTuning, best, results, nil
}

// Range returns n evenly spaced values from lo to hi inclusive.
func Range(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

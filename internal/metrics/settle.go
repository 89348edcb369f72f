package metrics

import (
	"math"

	"github.com/san-kum/bezspring/internal/dynamo"
)

// SettleStep records the first step after which the point stays within tol
// of the target. Its value is -1 while the point has not settled.
type SettleStep struct {
	name    string
	tol     float64
	tx, ty  float64
	settled int
}

func NewSettleStep(tol, tx, ty float64) *SettleStep {
	return &SettleStep{name: "settle_step", tol: tol, tx: tx, ty: ty, settled: -1}
}

func (s *SettleStep) Name() string { return s.name }

func (s *SettleStep) Observe(x dynamo.State, step int) {
	if x.DistanceTo(s.tx, s.ty) <= s.tol {
		if s.settled < 0 {
			s.settled = step
		}
		return
	}
	s.settled = -1
}

func (s *SettleStep) Value() float64 { return float64(s.settled) }

func (s *SettleStep) Reset() { s.settled = -1 }

// Overshoot is the furthest the point travels past the target along the
// start-to-target direction, as a fraction of the initial distance.
type Overshoot struct {
	name    string
	tx, ty  float64
	dx, dy  float64
	initial float64
	max     float64
	started bool
}

func NewOvershoot(tx, ty float64) *Overshoot {
	return &Overshoot{name: "overshoot", tx: tx, ty: ty}
}

func (o *Overshoot) Name() string { return o.name }

func (o *Overshoot) Observe(x dynamo.State, step int) {
	ex, ey := x[dynamo.IdxX]-o.tx, x[dynamo.IdxY]-o.ty
	if !o.started {
		o.started = true
		o.initial = math.Hypot(ex, ey)
		if o.initial > 0 {
			o.dx, o.dy = -ex/o.initial, -ey/o.initial
		}
		return
	}
	if o.initial == 0 {
		return
	}
	past := ex*o.dx + ey*o.dy
	o.max = math.Max(o.max, past/o.initial)
}

func (o *Overshoot) Value() float64 { return o.max }

func (o *Overshoot) Reset() {
	o.max, o.initial, o.started = 0, 0, false
}

// PeakDistance is the largest distance from the target seen so far.
type PeakDistance struct {
	name   string
	tx, ty float64
	peak   float64
}

func NewPeakDistance(tx, ty float64) *PeakDistance {
	return &PeakDistance{name: "peak_distance", tx: tx, ty: ty}
}

func (p *PeakDistance) Name() string { return p.name }

func (p *PeakDistance) Observe(x dynamo.State, step int) {
	p.peak = math.Max(p.peak, x.DistanceTo(p.tx, p.ty))
}

func (p *PeakDistance) Value() float64 { return p.peak }

func (p *PeakDistance) Reset() { p.peak = 0 }

// Defaults returns the metrics recorded for a trace toward (tx, ty).
func Defaults(stiffness, tx, ty float64) []dynamo.Metric {
	return []dynamo.Metric{
		NewSettleStep(0.01, tx, ty),
		NewOvershoot(tx, ty),
		NewPeakDistance(tx, ty),
		NewEnergy(stiffness, tx, ty),
		NewEnergyGrowth(stiffness, tx, ty),
	}
}

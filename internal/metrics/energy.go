package metrics

import (
	"math"

	"github.com/san-kum/bezspring/internal/dynamo"
)

// Energy averages the unit-mass spring energy ½|v|² + ½k|x−target|² over
// the observed steps.
type Energy struct {
	name        string
	stiffness   float64
	tx, ty      float64
	samples     int
	totalEnergy float64
}

func NewEnergy(stiffness, tx, ty float64) *Energy {
	return &Energy{
		name:      "energy",
		stiffness: stiffness,
		tx:        tx,
		ty:        ty,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(x dynamo.State, step int) {
	if len(x) < dynamo.StateDim {
		return
	}
	v := x.Speed()
	d := x.DistanceTo(e.tx, e.ty)
	e.totalEnergy += 0.5*v*v + 0.5*e.stiffness*d*d
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyGrowth reports the largest step-to-step increase in spring energy.
// A damped spring with a fixed target never gains energy, so any positive
// value points at an unstable tuning.
type EnergyGrowth struct {
	name      string
	stiffness float64
	tx, ty    float64
	prev      float64
	maxGrowth float64
	samples   int
}

func NewEnergyGrowth(stiffness, tx, ty float64) *EnergyGrowth {
	return &EnergyGrowth{
		name:      "energy_growth",
		stiffness: stiffness,
		tx:        tx,
		ty:        ty,
	}
}

func (e *EnergyGrowth) Name() string { return e.name }

func (e *EnergyGrowth) Observe(x dynamo.State, step int) {
	if len(x) < dynamo.StateDim {
		return
	}
	v := x.Speed()
	d := x.DistanceTo(e.tx, e.ty)
	energy := 0.5*v*v + 0.5*e.stiffness*d*d

	if e.samples > 0 {
		e.maxGrowth = math.Max(e.maxGrowth, energy-e.prev)
	}
	e.prev = energy
	e.samples++
}

func (e *EnergyGrowth) Value() float64 {
	return e.maxGrowth
}

func (e *EnergyGrowth) Reset() {
	e.prev = 0
	e.maxGrowth = 0
	e.samples = 0
}

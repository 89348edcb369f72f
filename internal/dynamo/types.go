package dynamo

import (
	"fmt"
	"math"
)

// Layout of a control point state vector.
const (
	IdxX = iota
	IdxY
	IdxVX
	IdxVY
	StateDim
)

type State []float64

func NewState(x, y, vx, vy float64) State {
	return State{x, y, vx, vy}
}

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Deviation is the larger of the distance from (x, y) and the speed.
func (s State) Deviation(x, y float64) float64 {
	return math.Max(s.DistanceTo(x, y), s.Speed())
}

// Speed is the magnitude of the velocity part of s.
func (s State) Speed() float64 {
	if len(s) < StateDim {
		return 0
	}
	return math.Hypot(s[IdxVX], s[IdxVY])
}

// DistanceTo returns the distance between the position part of s and (x, y).
func (s State) DistanceTo(x, y float64) float64 {
	if len(s) < 2 {
		return 0
	}
	return math.Hypot(s[IdxX]-x, s[IdxY]-y)
}

type Metric interface {
	Name() string
	Observe(x State, step int)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, step int)
}

type Result struct {
	States     []State
	Metrics    map[string]float64
	StepsTaken int
}

type SimError struct {
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d: %s", e.Step, e.Message)
}

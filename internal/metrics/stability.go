package metrics

import (
	"github.com/san-kum/bezspring/internal/dynamo"
)

// Stability is the fraction of steps whose deviation from the target stays
// within threshold.
type Stability struct {
	name       string
	threshold  float64
	targetX    float64
	targetY    float64
	violations int
	samples    int
}

func NewStability(threshold, targetX, targetY float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
		targetX:   targetX,
		targetY:   targetY,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(x dynamo.State, step int) {
	s.samples++
	if x.Deviation(s.targetX, s.targetY) > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

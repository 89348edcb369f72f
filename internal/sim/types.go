package sim

import (
	"fmt"

	"github.com/san-kum/bezspring/internal/dynamo"
	"github.com/san-kum/bezspring/internal/geom"
	"github.com/san-kum/bezspring/internal/spring"
)

const (
	MethodEuler    = "euler"
	MethodAnalytic = "analytic"
)

// Config describes one trace: a single control point released at Start,
// chasing a fixed Target for Steps frames.
type Config struct {
	Start     geom.Point
	Target    geom.Point
	Steps     int
	Stiffness float64
	Damping   float64
	Method    string
	// DivergenceLimit stops the run once the distance from Target or the
	// speed exceeds it. Zero disables the check.
	DivergenceLimit float64
	ValidateState   bool
}

func DefaultConfig() Config {
	return Config{
		Target:          geom.Pt(100, 0),
		Steps:           500,
		Stiffness:       spring.DefaultStiffness,
		Damping:         spring.DefaultDamping,
		Method:          MethodEuler,
		DivergenceLimit: 1e6,
		ValidateState:   true,
	}
}

func (c Config) validate() error {
	if c.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", dynamo.ErrParameterBounds, c.Steps)
	}
	if c.DivergenceLimit < 0 {
		return fmt.Errorf("%w: divergence limit must not be negative, got %g", dynamo.ErrParameterBounds, c.DivergenceLimit)
	}
	return nil
}

// NewFollower builds the spring for cfg.Method, resting at cfg.Start and
// aimed at cfg.Target.
func NewFollower(cfg Config) (spring.Follower, error) {
	var f spring.Follower
	switch cfg.Method {
	case MethodEuler, "":
		cp := spring.NewControlPoint(cfg.Start.X, cfg.Start.Y)
		cp.SetTuning(cfg.Stiffness, cfg.Damping)
		f = cp
	case MethodAnalytic:
		f = spring.NewAnalytic(cfg.Start.X, cfg.Start.Y, cfg.Stiffness, cfg.Damping)
	default:
		return nil, fmt.Errorf("unknown method: %s (available: %s, %s)", cfg.Method, MethodEuler, MethodAnalytic)
	}
	f.SetTarget(cfg.Target.X, cfg.Target.Y)
	return f, nil
}

func Methods() []string {
	return []string{MethodEuler, MethodAnalytic}
}

func stateOf(f spring.Follower) dynamo.State {
	p, v := f.Position(), f.Velocity()
	return dynamo.NewState(p.X, p.Y, v.X, v.Y)
}

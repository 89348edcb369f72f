package spring

import (
	"math"
	"testing"

	"github.com/san-kum/bezspring/internal/dynamo"
	"github.com/san-kum/bezspring/internal/geom"
)

func TestNewControlPoint(t *testing.T) {
	c := NewControlPoint(12, -3)

	if c.Position() != geom.Pt(12, -3) {
		t.Errorf("expected position (12, -3), got %v", c.Position())
	}
	if c.Target() != c.Position() {
		t.Errorf("expected target at position, got %v", c.Target())
	}
	if c.Velocity() != (geom.Vec2{}) {
		t.Errorf("expected zero velocity, got %v", c.Velocity())
	}
	if c.Stiffness != DefaultStiffness || c.Damping != DefaultDamping {
		t.Errorf("expected default tuning, got k=%f d=%f", c.Stiffness, c.Damping)
	}
}

func TestControlPointConverges(t *testing.T) {
	c := NewControlPoint(0, 0)
	c.SetTarget(100, 0)

	for i := 0; i < 500; i++ {
		c.Update()
		if x := math.Abs(c.Position().X); x >= 200 {
			t.Fatalf("step %d: diverged, |x| = %f", i, x)
		}
	}

	if err := math.Abs(c.Position().X - 100); err >= 0.01 {
		t.Errorf("expected |x-100| < 0.01 after 500 steps, got %f", err)
	}
	if c.Position().Y != 0 {
		t.Errorf("expected y to stay 0, got %f", c.Position().Y)
	}
}

func TestControlPointApproachesMonotonicallyInTheLimit(t *testing.T) {
	c := NewControlPoint(0, 0)
	c.SetTarget(100, 0)

	prev := math.Inf(1)
	for i := 0; i < 300; i++ {
		c.Update()
		if i < 100 {
			continue
		}
		dist := math.Abs(c.Position().X - 100)
		if dist > prev {
			t.Fatalf("step %d: distance grew from %g to %g", i, prev, dist)
		}
		prev = dist
	}
}

// reference replays the update rule with plain scalars.
type reference struct {
	x, y, vx, vy, tx, ty, k, d float64
}

func (r *reference) step() {
	ax := -r.k*(r.x-r.tx) - r.d*r.vx
	ay := -r.k*(r.y-r.ty) - r.d*r.vy
	r.vx += ax
	r.vy += ay
	r.x += r.vx
	r.y += r.vy
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}

func TestControlPointMatchesReferenceTrajectory(t *testing.T) {
	tests := []struct {
		name string
		k, d float64
	}{
		{"default", DefaultStiffness, DefaultDamping},
		{"stiff", 0.2, 0.3},
		{"undamped", 0.1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewControlPoint(10, 20)
			c.SetTuning(tt.k, tt.d)
			c.SetTarget(-40, 75)
			ref := &reference{x: 10, y: 20, tx: -40, ty: 75, k: tt.k, d: tt.d}

			for i := 0; i < 300; i++ {
				c.Update()
				ref.step()
				p, v := c.Position(), c.Velocity()
				if !near(p.X, ref.x) || !near(p.Y, ref.y) || !near(v.X, ref.vx) || !near(v.Y, ref.vy) {
					t.Fatalf("step %d: got pos %v vel %v, expected (%g, %g) (%g, %g)",
						i, p, v, ref.x, ref.y, ref.vx, ref.vy)
				}
			}
		})
	}
}

func TestControlPointIdleIsFixedPoint(t *testing.T) {
	c := NewControlPoint(33, 44)
	before := c.State()
	for i := 0; i < 10; i++ {
		c.Update()
	}
	after := c.State()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("component %d changed from %f to %f", i, before[i], after[i])
		}
	}
}

func TestControlPointUnvalidatedTuningMayDiverge(t *testing.T) {
	c := NewControlPoint(0, 0)
	c.SetTuning(5, 0)
	c.SetTarget(1, 0)
	for i := 0; i < 50; i++ {
		c.Update()
	}
	if math.Abs(c.Position().X) < 1000 {
		t.Errorf("expected k=5 to diverge, got x=%f", c.Position().X)
	}
}

func TestControlPointStateAndEnergy(t *testing.T) {
	c := NewControlPoint(0, 0)
	c.SetTarget(3, 4)
	s := c.State()
	if len(s) != dynamo.StateDim {
		t.Fatalf("expected %d components, got %d", dynamo.StateDim, len(s))
	}
	want := 0.5 * DefaultStiffness * 25
	if e := c.Energy(); math.Abs(e-want) > 1e-12 {
		t.Errorf("expected energy %f, got %f", want, e)
	}

	c.Update()
	c.Reset(7, 8)
	if c.Position() != geom.Pt(7, 8) || c.Target() != geom.Pt(7, 8) || c.Velocity() != (geom.Vec2{}) {
		t.Errorf("reset left state %v", c.State())
	}
}

func TestAnalyticConverges(t *testing.T) {
	a := NewAnalytic(0, 0, DefaultStiffness, DefaultDamping)
	a.SetTarget(100, -50)

	for i := 0; i < 500; i++ {
		a.Update()
	}

	if d := a.Position().Distance(geom.Pt(100, -50)); d >= 0.01 {
		t.Errorf("expected analytic spring to settle, distance %f", d)
	}
	if k, d := a.Tuning(); k != DefaultStiffness || d != DefaultDamping {
		t.Errorf("expected tuning to round-trip, got k=%f d=%f", k, d)
	}
}

func TestFollowerImplementations(t *testing.T) {
	followers := map[string]Follower{
		"euler":    NewControlPoint(0, 0),
		"analytic": NewAnalytic(0, 0, DefaultStiffness, DefaultDamping),
	}
	for name, f := range followers {
		f.SetTarget(10, 10)
		f.Update()
		if f.Position() == (geom.Point{}) {
			t.Errorf("%s: expected movement toward target", name)
		}
		if f.Velocity().X <= 0 || f.Velocity().Y <= 0 {
			t.Errorf("%s: expected velocity toward target, got %v", name, f.Velocity())
		}
	}
}

package bezier

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/san-kum/bezspring/internal/geom"
)

const epsilon = 1e-9

var approx = cmpopts.EquateApprox(0, epsilon)

func randomCubic(rng *rand.Rand) Cubic {
	pt := func() geom.Point {
		return geom.Pt(rng.Float64()*2000-1000, rng.Float64()*2000-1000)
	}
	return NewCubic(pt(), pt(), pt(), pt())
}

func TestPointEndpoints(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		c := randomCubic(rng)
		if diff := cmp.Diff(c.P0, Point(0, c.P0, c.P1, c.P2, c.P3), approx); diff != "" {
			t.Fatalf("B(0) != P0 (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(c.P3, Point(1, c.P0, c.P1, c.P2, c.P3), approx); diff != "" {
			t.Fatalf("B(1) != P3 (-want +got):\n%s", diff)
		}
	}
}

func TestPointWithinHull(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		c := randomCubic(rng)
		min, max := c.Bounds()
		for j := 0; j <= 50; j++ {
			p := c.Eval(float64(j) / 50)
			if p.X < min.X-epsilon || p.X > max.X+epsilon {
				t.Fatalf("x=%g outside [%g, %g]", p.X, min.X, max.X)
			}
			if p.Y < min.Y-epsilon || p.Y > max.Y+epsilon {
				t.Fatalf("y=%g outside [%g, %g]", p.Y, min.Y, max.Y)
			}
		}
	}
}

func TestPointReversalSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		c := randomCubic(rng)
		r := c.Reverse()
		for j := 0; j <= 20; j++ {
			ts := float64(j) / 20
			if diff := cmp.Diff(c.Eval(1-ts), r.Eval(ts), cmpopts.EquateApprox(0, 1e-7)); diff != "" {
				t.Fatalf("t=%g: reversed curve mismatch (-want +got):\n%s", ts, diff)
			}
		}
	}
}

func TestPointExtrapolates(t *testing.T) {
	// A straight, evenly spaced polygon traces a line at uniform speed, so
	// the extension beyond [0, 1] stays on it.
	p0, p1, p2, p3 := geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 2), geom.Pt(3, 3)
	for _, ts := range []float64{-1, -0.5, 1.5, 2} {
		got := Point(ts, p0, p1, p2, p3)
		want := geom.Pt(3*ts, 3*ts)
		if diff := cmp.Diff(want, got, approx); diff != "" {
			t.Errorf("t=%g (-want +got):\n%s", ts, diff)
		}
	}
}

func TestTangentDirection(t *testing.T) {
	p0, p1, p2, p3 := geom.Pt(0, 0), geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 0)
	tan := Tangent(0.5, p0, p1, p2, p3)
	if tan.X <= 0 {
		t.Errorf("expected positive x component, got %g", tan.X)
	}
	if tan.Y != 0 {
		t.Errorf("expected zero y component, got %g", tan.Y)
	}

	u, ok := UnitTangent(0.5, p0, p1, p2, p3, MinTangentLength)
	if !ok {
		t.Fatal("expected defined unit tangent")
	}
	if diff := cmp.Diff(geom.Vec(1, 0), u, approx); diff != "" {
		t.Errorf("unit tangent (-want +got):\n%s", diff)
	}
}

func TestTangentMatchesFiniteDifference(t *testing.T) {
	c := NewCubic(geom.Pt(0, 0), geom.Pt(1.0/3, 0), geom.Pt(2.0/3, 1.0/3), geom.Pt(1, 1))
	const delta = 1e-6
	for i := 0; i <= 10; i++ {
		ts := float64(i) / 10
		approxDeriv := c.Eval(ts + delta).Sub(c.Eval(ts)).Mul(1 / delta)
		if l := c.Deriv(ts).Sub(approxDeriv).Hypot(); l >= delta*10 {
			t.Errorf("t=%g: derivative off by %g", ts, l)
		}
	}
}

func TestUnitTangentDegenerate(t *testing.T) {
	p := geom.Pt(5, 5)
	if _, ok := UnitTangent(0.3, p, p, p, p, MinTangentLength); ok {
		t.Error("expected undefined tangent for coincident control points")
	}
}

func TestBernsteinMatchesDeCasteljau(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	opt := cmpopts.EquateApprox(0, 1e-7)
	for i := 0; i < 200; i++ {
		c := randomCubic(rng)
		for j := -5; j <= 25; j++ {
			ts := float64(j) / 20
			if diff := cmp.Diff(Point(ts, c.P0, c.P1, c.P2, c.P3), DeCasteljau(ts, c.P0, c.P1, c.P2, c.P3), opt); diff != "" {
				t.Fatalf("position t=%g (-bernstein +casteljau):\n%s", ts, diff)
			}
			if diff := cmp.Diff(Tangent(ts, c.P0, c.P1, c.P2, c.P3), DeCasteljauTangent(ts, c.P0, c.P1, c.P2, c.P3), opt); diff != "" {
				t.Fatalf("tangent t=%g (-bernstein +casteljau):\n%s", ts, diff)
			}
		}
	}
}

func TestSample(t *testing.T) {
	c := NewCubic(geom.Pt(50, 300), geom.Pt(200, 100), geom.Pt(400, 500), geom.Pt(550, 300))
	pts := c.Sample(100)
	if len(pts) != 101 {
		t.Fatalf("expected 101 samples, got %d", len(pts))
	}
	if pts[0] != c.P0 {
		t.Errorf("expected first sample %v, got %v", c.P0, pts[0])
	}
	if diff := cmp.Diff(c.P3, pts[100], approx); diff != "" {
		t.Errorf("last sample (-want +got):\n%s", diff)
	}

	if got := len(c.Sample(0)); got != 2 {
		t.Errorf("expected n<1 to clamp to 2 samples, got %d", got)
	}
}

func TestTangentsSkipsDegenerate(t *testing.T) {
	// P0 == P1 and P2 == P3 make the derivative vanish at both ends.
	c := NewCubic(geom.Pt(0, 0), geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 0))
	segs := c.Tangents(100, 10, 50)
	if len(segs) != 9 {
		t.Fatalf("expected 9 tangents (ends skipped), got %d", len(segs))
	}
	for _, s := range segs {
		if s.T == 0 || s.T == 1 {
			t.Errorf("expected degenerate sample at t=%g to be skipped", s.T)
		}
		if math.Abs(s.Dir.Hypot()-1) > epsilon {
			t.Errorf("expected unit direction, got length %g", s.Dir.Hypot())
		}
		if math.Abs(s.End.Distance(s.Origin)-50) > epsilon {
			t.Errorf("expected marker length 50, got %g", s.End.Distance(s.Origin))
		}
	}
}

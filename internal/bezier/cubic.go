package bezier

import (
	"math"

	"github.com/san-kum/bezspring/internal/geom"
)

// Cubic is a cubic Bézier segment.
type Cubic struct {
	P0, P1, P2, P3 geom.Point
}

func NewCubic(p0, p1, p2, p3 geom.Point) Cubic {
	return Cubic{P0: p0, P1: p1, P2: p2, P3: p3}
}

func (c Cubic) Eval(t float64) geom.Point {
	return Point(t, c.P0, c.P1, c.P2, c.P3)
}

func (c Cubic) Deriv(t float64) geom.Vec2 {
	return Tangent(t, c.P0, c.P1, c.P2, c.P3)
}

// Reverse returns the same curve traversed from P3 to P0.
func (c Cubic) Reverse() Cubic {
	return Cubic{P0: c.P3, P1: c.P2, P2: c.P1, P3: c.P0}
}

// Bounds returns the bounding box of the control polygon. The curve for
// t in [0, 1] lies inside it.
func (c Cubic) Bounds() (min, max geom.Point) {
	min, max = c.P0, c.P0
	for _, p := range [...]geom.Point{c.P1, c.P2, c.P3} {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// Sample returns n+1 points at t = i/n. n < 1 is treated as 1.
func (c Cubic) Sample(n int) []geom.Point {
	if n < 1 {
		n = 1
	}
	pts := make([]geom.Point, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = c.Eval(float64(i) / float64(n))
	}
	return pts
}

// Segment is a tangent marker: a unit direction scaled by a display length,
// anchored on the curve.
type Segment struct {
	T      float64
	Origin geom.Point
	Dir    geom.Vec2
	End    geom.Point
}

// Tangents walks the same n-step grid as Sample, visiting every stride-th
// sample, and returns tangent markers of the given length. Samples whose
// tangent is shorter than MinTangentLength are skipped.
func (c Cubic) Tangents(n, stride int, length float64) []Segment {
	if n < 1 {
		n = 1
	}
	if stride < 1 {
		stride = 1
	}
	segs := make([]Segment, 0, n/stride+1)
	for i := 0; i <= n; i += stride {
		t := float64(i) / float64(n)
		dir, ok := c.Deriv(t).Normalize(MinTangentLength)
		if !ok {
			continue
		}
		origin := c.Eval(t)
		segs = append(segs, Segment{
			T:      t,
			Origin: origin,
			Dir:    dir,
			End:    origin.Translate(dir.Mul(length)),
		})
	}
	return segs
}

// Package bezier evaluates cubic Bézier curves and their derivatives.
//
// All functions are pure. The parameter t is not restricted to [0, 1];
// values outside that range extrapolate the curve.
package bezier

import "github.com/san-kum/bezspring/internal/geom"

// MinTangentLength is the magnitude below which a tangent has no usable
// direction.
const MinTangentLength = 0.001

// Point evaluates the curve at t in Bernstein form:
//
//	(1-t)³P0 + 3(1-t)²tP1 + 3(1-t)t²P2 + t³P3
func Point(t float64, p0, p1, p2, p3 geom.Point) geom.Point {
	u := 1 - t
	tt := t * t
	uu := u * u
	uuu := uu * u
	ttt := tt * t

	return geom.Point{
		X: uuu*p0.X + 3*uu*t*p1.X + 3*u*tt*p2.X + ttt*p3.X,
		Y: uuu*p0.Y + 3*uu*t*p1.Y + 3*u*tt*p2.Y + ttt*p3.Y,
	}
}

// Tangent returns the first derivative of the curve at t:
//
//	3(1-t)²(P1-P0) + 6(1-t)t(P2-P1) + 3t²(P3-P2)
//
// The result is not normalized.
func Tangent(t float64, p0, p1, p2, p3 geom.Point) geom.Vec2 {
	u := 1 - t
	uu := u * u
	tt := t * t

	return geom.Vec2{
		X: 3*uu*(p1.X-p0.X) + 6*u*t*(p2.X-p1.X) + 3*tt*(p3.X-p2.X),
		Y: 3*uu*(p1.Y-p0.Y) + 6*u*t*(p2.Y-p1.Y) + 3*tt*(p3.Y-p2.Y),
	}
}

// DeCasteljau evaluates the curve at t by repeated linear interpolation of
// the control polygon.
func DeCasteljau(t float64, p0, p1, p2, p3 geom.Point) geom.Point {
	d, e := casteljauLevel2(t, p0, p1, p2, p3)
	return d.Lerp(e, t)
}

// DeCasteljauTangent returns the derivative at t from the second level of the
// De Casteljau construction. The chord between the two level-2 points is
// B'(t)/3, so it is scaled to match Tangent.
func DeCasteljauTangent(t float64, p0, p1, p2, p3 geom.Point) geom.Vec2 {
	d, e := casteljauLevel2(t, p0, p1, p2, p3)
	return e.Sub(d).Mul(3)
}

func casteljauLevel2(t float64, p0, p1, p2, p3 geom.Point) (geom.Point, geom.Point) {
	a := p0.Lerp(p1, t)
	b := p1.Lerp(p2, t)
	c := p2.Lerp(p3, t)
	return a.Lerp(b, t), b.Lerp(c, t)
}

// UnitTangent returns the normalized tangent at t. ok is false when the
// tangent is shorter than eps (for instance where consecutive control points
// coincide); such samples should be skipped.
func UnitTangent(t float64, p0, p1, p2, p3 geom.Point, eps float64) (geom.Vec2, bool) {
	return Tangent(t, p0, p1, p2, p3).Normalize(eps)
}

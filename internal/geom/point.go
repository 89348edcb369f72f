package geom

import (
	"fmt"
	"math"
)

// Point is a position in the plane.
type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Sub computes p−o.
func (p Point) Sub(o Point) Vec2 {
	return Vec2{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Point) Translate(v Vec2) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Lerp returns the point t of the way from p to o.
func (p Point) Lerp(o Point, t float64) Point {
	return Point{
		X: (1-t)*p.X + t*o.X,
		Y: (1-t)*p.Y + t*o.Y,
	}
}

func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// IsFinite reports whether neither coordinate is NaN or infinite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Vec2 is a displacement or direction.
type Vec2 struct {
	X float64
	Y float64
}

func Vec(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Hypot returns the euclidean length of v.
func (v Vec2) Hypot() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) Hypot2() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns v scaled to unit length. ok is false when the length is
// below eps, in which case the direction is undefined and v is returned as is.
func (v Vec2) Normalize(eps float64) (u Vec2, ok bool) {
	l := v.Hypot()
	if l < eps {
		return v, false
	}
	return Vec2{X: v.X / l, Y: v.Y / l}, true
}

func (v Vec2) String() string {
	return fmt.Sprintf("⟨%g, %g⟩", v.X, v.Y)
}

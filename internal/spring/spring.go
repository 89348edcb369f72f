// Package spring moves Bézier control points toward a target with a damped
// spring.
package spring

import (
	"github.com/san-kum/bezspring/internal/dynamo"
	"github.com/san-kum/bezspring/internal/geom"
)

const (
	DefaultStiffness = 0.05
	DefaultDamping   = 0.6
)

// Follower is anything that can chase a target one frame at a time.
type Follower interface {
	Update()
	SetTarget(x, y float64)
	Position() geom.Point
	Velocity() geom.Vec2
}

// ControlPoint is a spring-driven control point with unit mass, advanced one
// unit time step per Update. Position and velocity change only in Update;
// the target changes only through SetTarget.
type ControlPoint struct {
	position geom.Point
	velocity geom.Vec2
	target   geom.Point

	Stiffness float64
	Damping   float64
}

// NewControlPoint returns a point resting at (x, y) with default tuning.
func NewControlPoint(x, y float64) *ControlPoint {
	return &ControlPoint{
		position:  geom.Pt(x, y),
		target:    geom.Pt(x, y),
		Stiffness: DefaultStiffness,
		Damping:   DefaultDamping,
	}
}

// Update advances one semi-implicit Euler step. Acceleration is taken from
// the old position and velocity, then velocity is updated, then position
// from the new velocity. Changing this order changes the trajectory.
func (c *ControlPoint) Update() {
	ax := -c.Stiffness*(c.position.X-c.target.X) - c.Damping*c.velocity.X
	ay := -c.Stiffness*(c.position.Y-c.target.Y) - c.Damping*c.velocity.Y

	c.velocity.X += ax
	c.velocity.Y += ay

	c.position.X += c.velocity.X
	c.position.Y += c.velocity.Y
}

func (c *ControlPoint) SetTarget(x, y float64) {
	c.target = geom.Pt(x, y)
}

func (c *ControlPoint) SetTuning(stiffness, damping float64) {
	c.Stiffness = stiffness
	c.Damping = damping
}

// Reset places the point at (x, y), at rest, with the target on it.
func (c *ControlPoint) Reset(x, y float64) {
	c.position = geom.Pt(x, y)
	c.target = c.position
	c.velocity = geom.Vec2{}
}

func (c *ControlPoint) Position() geom.Point { return c.position }
func (c *ControlPoint) Velocity() geom.Vec2  { return c.velocity }
func (c *ControlPoint) Target() geom.Point   { return c.target }

func (c *ControlPoint) State() dynamo.State {
	return dynamo.NewState(c.position.X, c.position.Y, c.velocity.X, c.velocity.Y)
}

// Energy returns kinetic plus spring potential energy relative to the target.
func (c *ControlPoint) Energy() float64 {
	d := c.position.Sub(c.target)
	return 0.5*c.velocity.Hypot2() + 0.5*c.Stiffness*d.Hypot2()
}

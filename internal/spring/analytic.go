package spring

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/san-kum/bezspring/internal/geom"
)

// Analytic follows its target with the closed-form damped harmonic
// oscillator, one frame per Update. It is tuned from the same stiffness and
// damping pair as ControlPoint so the two can be compared side by side.
type Analytic struct {
	spring   harmonica.Spring
	position geom.Point
	velocity geom.Vec2
	target   geom.Point

	stiffness, damping float64
}

func NewAnalytic(x, y, stiffness, damping float64) *Analytic {
	a := &Analytic{
		position: geom.Pt(x, y),
		target:   geom.Pt(x, y),
	}
	a.SetTuning(stiffness, damping)
	return a
}

// SetTuning maps a unit-mass stiffness k and damping c onto angular frequency
// √k and damping ratio c/(2√k), with one frame as the time step.
func (a *Analytic) SetTuning(stiffness, damping float64) {
	a.stiffness, a.damping = stiffness, damping
	omega := math.Sqrt(math.Max(stiffness, 0))
	zeta := 0.0
	if omega > 0 {
		zeta = damping / (2 * omega)
	}
	a.spring = harmonica.NewSpring(1, omega, zeta)
}

func (a *Analytic) Tuning() (stiffness, damping float64) {
	return a.stiffness, a.damping
}

func (a *Analytic) Update() {
	a.position.X, a.velocity.X = a.spring.Update(a.position.X, a.velocity.X, a.target.X)
	a.position.Y, a.velocity.Y = a.spring.Update(a.position.Y, a.velocity.Y, a.target.Y)
}

func (a *Analytic) SetTarget(x, y float64) {
	a.target = geom.Pt(x, y)
}

func (a *Analytic) Reset(x, y float64) {
	a.position = geom.Pt(x, y)
	a.target = a.position
	a.velocity = geom.Vec2{}
}

func (a *Analytic) Position() geom.Point { return a.position }
func (a *Analytic) Velocity() geom.Vec2  { return a.velocity }
func (a *Analytic) Target() geom.Point   { return a.target }

// Package scene runs the per-frame loop of the interactive curve: two fixed
// anchors, two spring-driven interior control points and the viewport they
// live in.
//
// A Scene is owned by a single loop. Input handlers, resize handlers and the
// frame tick must all run on that loop; Frame returns a value snapshot that
// may be handed to other goroutines.
package scene

import (
	"github.com/san-kum/bezspring/internal/bezier"
	"github.com/san-kum/bezspring/internal/config"
	"github.com/san-kum/bezspring/internal/geom"
	"github.com/san-kum/bezspring/internal/spring"
)

type Scene struct {
	width, height float64
	layout        config.Layout

	p0, p3 geom.Point
	p1, p2 *spring.ControlPoint

	frames uint64
}

// Frame is a consistent view of the four control points after a step.
type Frame struct {
	Index          uint64
	P0, P1, P2, P3 geom.Point
	// Targets of the two springs.
	T1, T2 geom.Point
}

func (f Frame) Curve() bezier.Cubic {
	return bezier.NewCubic(f.P0, f.P1, f.P2, f.P3)
}

// New creates a scene for a width×height viewport with both springs resting
// at their layout positions.
func New(width, height float64, layout config.Layout, stiffness, damping float64) *Scene {
	s := &Scene{width: width, height: height, layout: layout}
	r1, r2 := s.RestTargets()
	s.p1 = spring.NewControlPoint(r1.X, r1.Y)
	s.p2 = spring.NewControlPoint(r2.X, r2.Y)
	s.SetTuning(stiffness, damping)
	s.placeAnchors()
	return s
}

// FromConfig builds a scene from the spring, layout and viewport sections.
func FromConfig(cfg *config.Config) *Scene {
	return New(cfg.Viewport.Width, cfg.Viewport.Height, cfg.Layout, cfg.Spring.Stiffness, cfg.Spring.Damping)
}

func (s *Scene) placeAnchors() {
	s.p0 = geom.Pt(s.layout.Margin, s.height/2)
	s.p3 = geom.Pt(s.width-s.layout.Margin, s.height/2)
}

// RestTargets returns where the springs settle when nothing points at the
// scene.
func (s *Scene) RestTargets() (geom.Point, geom.Point) {
	return geom.Pt(s.width*s.layout.RestP1, s.height/2),
		geom.Pt(s.width*s.layout.RestP2, s.height/2)
}

// Resize changes the viewport. Anchors move immediately; the springs are
// retargeted to their new resting positions and travel there on later steps.
func (s *Scene) Resize(width, height float64) {
	s.width, s.height = width, height
	s.placeAnchors()
	s.rest()
}

func (s *Scene) Size() (width, height float64) {
	return s.width, s.height
}

// PointerMove aims the springs at the pointer plus their layout offsets.
func (s *Scene) PointerMove(x, y float64) {
	s.p1.SetTarget(x+s.layout.OffsetP1.X, y+s.layout.OffsetP1.Y)
	s.p2.SetTarget(x+s.layout.OffsetP2.X, y+s.layout.OffsetP2.Y)
}

// PointerLeave sends the springs back to rest.
func (s *Scene) PointerLeave() {
	s.rest()
}

func (s *Scene) rest() {
	r1, r2 := s.RestTargets()
	s.p1.SetTarget(r1.X, r1.Y)
	s.p2.SetTarget(r2.X, r2.Y)
}

func (s *Scene) SetTuning(stiffness, damping float64) {
	s.p1.SetTuning(stiffness, damping)
	s.p2.SetTuning(stiffness, damping)
}

func (s *Scene) Tuning() (stiffness, damping float64) {
	return s.p1.Stiffness, s.p1.Damping
}

// SetLayout swaps the layout and sends the springs to the new rest targets.
func (s *Scene) SetLayout(layout config.Layout) {
	s.layout = layout
	s.placeAnchors()
	s.rest()
}

func (s *Scene) Layout() config.Layout {
	return s.layout
}

// Apply takes the spring and layout sections of cfg. The viewport is owned
// by the front-end and is left alone.
func (s *Scene) Apply(cfg *config.Config) {
	s.SetTuning(cfg.Spring.Stiffness, cfg.Spring.Damping)
	s.SetLayout(cfg.Layout)
}

// Step advances both springs one frame and re-anchors the endpoints.
func (s *Scene) Step() {
	s.p1.Update()
	s.p2.Update()
	s.placeAnchors()
	s.frames++
}

func (s *Scene) Frame() Frame {
	return Frame{
		Index: s.frames,
		P0:    s.p0,
		P1:    s.p1.Position(),
		P2:    s.p2.Position(),
		P3:    s.p3,
		T1:    s.p1.Target(),
		T2:    s.p2.Target(),
	}
}

// Energy is the summed spring energy of both interior points.
func (s *Scene) Energy() float64 {
	return s.p1.Energy() + s.p2.Energy()
}

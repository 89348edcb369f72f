package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/bezspring/internal/export"
	"github.com/san-kum/bezspring/internal/geom"
	"github.com/san-kum/bezspring/internal/scene"
)

func vec(p geom.Point) rl.Vector2 {
	return rl.NewVector2(float32(p.X), float32(p.Y))
}

func (a *App) drawGrid() {
	step := float32(export.DefaultFrameOptions(0, 0).GridStep)
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	for x := float32(0); x < w; x += step {
		rl.DrawLineV(rl.NewVector2(x, 0), rl.NewVector2(x, h), ColGrid)
	}
	for y := float32(0); y < h; y += step {
		rl.DrawLineV(rl.NewVector2(0, y), rl.NewVector2(w, y), ColGrid)
	}
}

// drawFrame draws the control polygon, tangent markers, the curve and
// the control points of f.
func (a *App) drawFrame(f scene.Frame) {
	c := f.Curve()
	r := a.Cfg.Render

	rl.DrawLineV(vec(f.P0), vec(f.P1), ColPolygon)
	rl.DrawLineV(vec(f.P1), vec(f.P2), ColPolygon)
	rl.DrawLineV(vec(f.P2), vec(f.P3), ColPolygon)

	if a.ShowTangents {
		for _, s := range c.Tangents(r.Samples, r.TangentStride, r.TangentLength) {
			rl.DrawLineEx(vec(s.Origin), vec(s.End), 2, ColTangent)
		}
	}

	pts := c.Sample(r.Samples)
	strip := make([]rl.Vector2, len(pts))
	for i, p := range pts {
		strip[i] = vec(p)
	}
	for i := 1; i < len(strip); i++ {
		rl.DrawLineEx(strip[i-1], strip[i], 3, ColCurve)
	}

	a.drawPoint(f.P0, "P0", ColAnchor)
	a.drawPoint(f.P3, "P3", ColAnchor)
	a.drawPoint(f.P1, "P1", ColSpring)
	a.drawPoint(f.P2, "P2", ColSpring)
}

func (a *App) drawPoint(p geom.Point, label string, col color.RGBA) {
	v := vec(p)
	rl.DrawCircleV(v, 8, col)
	a.drawText(label, int32(v.X)+12, int32(v.Y)-18, 14, ColText)
}

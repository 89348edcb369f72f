package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/bezspring/internal/bezier"
	"github.com/san-kum/bezspring/internal/config"
	"github.com/san-kum/bezspring/internal/geom"
	"github.com/san-kum/bezspring/internal/scene"
)

// FrameOptions controls what FrameToSVG draws.
type FrameOptions struct {
	Width, Height float64
	Samples       int
	TangentStride int
	TangentLength float64
	Grid          bool
	Tangents      bool
	GridStep      float64
}

func DefaultFrameOptions(width, height float64) FrameOptions {
	return FrameOptions{
		Width:         width,
		Height:        height,
		Samples:       100,
		TangentStride: 10,
		TangentLength: 50,
		Grid:          true,
		Tangents:      true,
		GridStep:      60,
	}
}

// OptionsFromConfig takes sampling and toggles from the render section and
// the canvas size from the viewport.
func OptionsFromConfig(cfg *config.Config) FrameOptions {
	opts := DefaultFrameOptions(cfg.Viewport.Width, cfg.Viewport.Height)
	opts.Samples = cfg.Render.Samples
	opts.TangentStride = cfg.Render.TangentStride
	opts.TangentLength = cfg.Render.TangentLength
	opts.Grid = cfg.Render.Grid
	opts.Tangents = cfg.Render.Tangents
	return opts
}

// FrameToSVG draws one frame of the scene: grid, tangent markers, the curve
// and its four control points.
func FrameToSVG(f scene.Frame, opts FrameOptions) string {
	c := f.Curve()
	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0f"/>
`, opts.Width, opts.Height, opts.Width, opts.Height)

	if opts.Grid && opts.GridStep > 0 {
		sb.WriteString(`<g stroke="#282832" stroke-opacity="0.5" stroke-width="1">` + "\n")
		for x := 0.0; x < opts.Width; x += opts.GridStep {
			fmt.Fprintf(&sb, `<line x1="%.1f" y1="0" x2="%.1f" y2="%.1f"/>`+"\n", x, x, opts.Height)
		}
		for y := 0.0; y < opts.Height; y += opts.GridStep {
			fmt.Fprintf(&sb, `<line x1="0" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", y, opts.Width, y)
		}
		sb.WriteString("</g>\n")
	}

	if opts.Tangents {
		segs := c.Tangents(opts.Samples, opts.TangentStride, opts.TangentLength)
		sb.WriteString(`<g stroke="#67f105" stroke-width="3" fill="#0fe14e">` + "\n")
		for _, s := range segs {
			fmt.Fprintf(&sb, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n",
				s.Origin.X, s.Origin.Y, s.End.X, s.End.Y)
			fmt.Fprintf(&sb, `<circle cx="%.2f" cy="%.2f" r="3" stroke="none"/>`+"\n", s.Origin.X, s.Origin.Y)
		}
		sb.WriteString("</g>\n")
	}

	path := pathData(c.Sample(opts.Samples))
	fmt.Fprintf(&sb, `<path fill="none" stroke="#00d4ff" stroke-opacity="0.2" stroke-width="8" stroke-linecap="round" d="%s"/>`+"\n", path)
	fmt.Fprintf(&sb, `<path fill="none" stroke="#00d4ff" stroke-width="3" d="%s"/>`+"\n", path)

	fmt.Fprintf(&sb, `<polyline fill="none" stroke="#555566" stroke-dasharray="4 4" points="%s"/>`+"\n",
		polyPoints(f.P0, f.P1, f.P2, f.P3))

	writeDot(&sb, f.P0, "#00d4ff", "P0", 6)
	writeDot(&sb, f.P3, "#00d4ff", "P3", 6)
	writeDot(&sb, f.P1, "#ffcc00", "P1", 8)
	writeDot(&sb, f.P2, "#ffcc00", "P2", 8)

	sb.WriteString("</svg>")
	return sb.String()
}

func pathData(pts []geom.Point) string {
	var sb strings.Builder
	for i, p := range pts {
		if i == 0 {
			fmt.Fprintf(&sb, "M%.2f,%.2f", p.X, p.Y)
		} else {
			fmt.Fprintf(&sb, " L%.2f,%.2f", p.X, p.Y)
		}
	}
	return sb.String()
}

func polyPoints(pts ...geom.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

func writeDot(sb *strings.Builder, p geom.Point, color, label string, r float64) {
	fmt.Fprintf(sb, `<circle cx="%.2f" cy="%.2f" r="%.0f" fill="%s" fill-opacity="0.2"/>`+"\n", p.X, p.Y, r*2, color)
	fmt.Fprintf(sb, `<circle cx="%.2f" cy="%.2f" r="%.0f" fill="%s"/>`+"\n", p.X, p.Y, r, color)
	fmt.Fprintf(sb, `<text x="%.2f" y="%.2f" fill="white" font-family="monospace" font-weight="bold" font-size="11">%s</text>`+"\n",
		p.X-5, p.Y-18, label)
}

// CurveToSVG draws a bare curve with default options sized to its control
// polygon plus a margin.
func CurveToSVG(c bezier.Cubic, margin float64) string {
	min, max := c.Bounds()
	shift := geom.Vec(margin-min.X, margin-min.Y)
	f := scene.Frame{
		P0: c.P0.Translate(shift),
		P1: c.P1.Translate(shift),
		P2: c.P2.Translate(shift),
		P3: c.P3.Translate(shift),
	}
	opts := DefaultFrameOptions(max.X-min.X+2*margin, max.Y-min.Y+2*margin)
	opts.Grid = false
	return FrameToSVG(f, opts)
}

// TrajectoryToSVG draws a polyline through points, fitted to a width×height
// box with 10% padding. Fewer than two points yield an empty string.
func TrajectoryToSVG(points []geom.Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := (p.Y - minY) / rangeY * float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

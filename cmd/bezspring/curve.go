package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/bezspring/internal/bezier"
	"github.com/san-kum/bezspring/internal/config"
	"github.com/san-kum/bezspring/internal/export"
	"github.com/san-kum/bezspring/internal/geom"
	"github.com/san-kum/bezspring/internal/scene"
	"github.com/spf13/cobra"
)

// runSnapshot steps a scene sized to the viewport without a window and
// writes the final frame.
func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	s := scene.FromConfig(cfg)
	if !noPointer {
		s.PointerMove(pointerX, pointerY)
	}
	for i := 0; i < frames; i++ {
		s.Step()
	}

	svg := export.FrameToSVG(s.Frame(), export.OptionsFromConfig(cfg))
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}

	f := s.Frame()
	fmt.Printf("frame %d written to %s\n", f.Index, outFile)
	fmt.Printf("  P1 %s -> %s\n", f.P1, f.T1)
	fmt.Printf("  P2 %s -> %s\n", f.P2, f.T2)
	return nil
}

func parsePoint(s string) (geom.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geom.Point{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return geom.Pt(x, y), nil
}

func runSample(cmd *cobra.Command, args []string) error {
	if len(controlPts) != 4 {
		return fmt.Errorf("need four control points, got %d", len(controlPts))
	}
	if samples <= 0 || stride <= 0 {
		return fmt.Errorf("samples and stride must be positive")
	}
	var p [4]geom.Point
	for i, s := range controlPts {
		pt, err := parsePoint(s)
		if err != nil {
			return err
		}
		p[i] = pt
	}
	c := bezier.NewCubic(p[0], p[1], p[2], p[3])

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T\tX\tY\tDX\tDY")
	for i, pt := range c.Sample(samples) {
		t := float64(i) / float64(samples)
		d := c.Deriv(t)
		fmt.Fprintf(w, "%.3f\t%.4f\t%.4f\t%.4f\t%.4f\n", t, pt.X, pt.Y, d.X, d.Y)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	segs := c.Tangents(samples, stride, tanLength)
	fmt.Printf("\ntangents (%d):\n", len(segs))
	for _, s := range segs {
		fmt.Printf("  t=%.2f %s -> %s\n", s.T, s.Origin, s.End)
	}

	if svgFile != "" {
		if err := os.WriteFile(svgFile, []byte(export.CurveToSVG(c, 40)), 0644); err != nil {
			return err
		}
		fmt.Printf("\ncurve written to %s\n", svgFile)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTIFFNESS\tDAMPING\tOFFSET_P1\tOFFSET_P2")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.3f\t%.2f\t(%g, %g)\t(%g, %g)\n",
			name,
			p.Spring.Stiffness,
			p.Spring.Damping,
			p.Layout.OffsetP1.X, p.Layout.OffsetP1.Y,
			p.Layout.OffsetP2.X, p.Layout.OffsetP2.Y,
		)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "bezspring.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

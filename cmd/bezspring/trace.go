package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bezspring/internal/dynamo"
	"github.com/san-kum/bezspring/internal/export"
	"github.com/san-kum/bezspring/internal/geom"
	"github.com/san-kum/bezspring/internal/metrics"
	"github.com/san-kum/bezspring/internal/optim"
	"github.com/san-kum/bezspring/internal/sim"
	"github.com/san-kum/bezspring/internal/storage"
	"github.com/spf13/cobra"
)

// traceConfig reads the trace flags of cmd. Several commands bind the same
// flag names, so values come from the command's own flag set.
func traceConfig(cmd *cobra.Command) sim.Config {
	f := cmd.Flags()
	get := func(name string) float64 {
		v, _ := f.GetFloat64(name)
		return v
	}
	n, _ := f.GetInt("steps")

	cfg := sim.DefaultConfig()
	cfg.Stiffness = get("k")
	cfg.Damping = get("d")
	cfg.Steps = n
	cfg.Start = geom.Pt(get("start-x"), get("start-y"))
	cfg.Target = geom.Pt(get("target-x"), get("target-y"))
	cfg.DivergenceLimit = get("limit")
	if m, err := f.GetString("method"); err == nil {
		cfg.Method = m
	}
	return cfg
}

func traceMetrics(cfg sim.Config) []dynamo.Metric {
	ms := metrics.Defaults(cfg.Stiffness, cfg.Target.X, cfg.Target.Y)
	if cfg.DivergenceLimit > 0 {
		ms = append(ms, metrics.NewStability(cfg.DivergenceLimit, cfg.Target.X, cfg.Target.Y))
	}
	return ms
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg := traceConfig(cmd)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := sim.New()
	for _, m := range traceMetrics(cfg) {
		runner.AddMetric(m)
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("tracing %s spring k=%.3f d=%.2f...\n", cfg.Method, cfg.Stiffness, cfg.Damping)
	start := time.Now()
	result, runErr := runner.Run(ctx, cfg)
	elapsed := time.Since(start)

	if result == nil {
		return runErr
	}

	var simErr *dynamo.SimulationError
	if runErr != nil && !errors.As(runErr, &simErr) {
		return runErr
	}

	info := storage.RunInfo{
		Method:    cfg.Method,
		Stiffness: cfg.Stiffness,
		Damping:   cfg.Damping,
		Start:     [2]float64{cfg.Start.X, cfg.Start.Y},
		Target:    [2]float64{cfg.Target.X, cfg.Target.Y},
		Steps:     cfg.Steps,
	}
	runID, err := st.Save(info, result, runErr)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	if simErr != nil {
		fmt.Printf("stopped: %v\n", simErr)
	}
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

var seriesNames = []string{"red", "blue", "green"}

func runCompare(cmd *cobra.Command, args []string) error {
	methods := args
	if len(methods) == 0 {
		methods = sim.Methods()
	}
	base := traceConfig(cmd)

	ctx, cancel := signalContext()
	defer cancel()

	var series [][]float64
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tSTEPS\tSETTLE\tOVERSHOOT\tENERGY\tSTATUS")

	for _, m := range methods {
		cfg := base
		cfg.Method = m

		runner := sim.New()
		for _, metric := range traceMetrics(cfg) {
			runner.AddMetric(metric)
		}
		result, err := runner.Run(ctx, cfg)
		if result == nil {
			return err
		}

		status := "ok"
		if err != nil {
			status = err.Error()
		}
		fmt.Fprintf(w, "%s\t%d\t%.0f\t%.4f\t%.4f\t%s\n",
			m, result.StepsTaken,
			result.Metrics["settle_step"],
			result.Metrics["overshoot"],
			result.Metrics["energy"],
			status,
		)
		series = append(series, storage.Column(result.States, dynamo.IdxX))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	legend := make([]string, len(methods))
	for i, m := range methods {
		legend[i] = m + "=" + seriesNames[i%len(seriesNames)]
	}

	fmt.Println()
	fmt.Println(asciigraph.PlotMany(series,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue, asciigraph.Green),
		asciigraph.Caption("x vs step ("+strings.Join(legend, ", ")+")"),
	))
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	base := traceConfig(cmd)

	ctx, cancel := signalContext()
	defer cancel()

	search := optim.NewGridSearch(optim.Range(kMin, kMax, gridSize), optim.Range(dMin, dMax, gridSize))

	fmt.Printf("searching %dx%d tunings for lowest %s...\n", gridSize, gridSize, metricName)
	start := time.Now()
	best, score, results, err := search.Search(ctx, base, traceMetrics, metricName)
	if err != nil && !errors.Is(err, optim.ErrNoCandidate) {
		return err
	}

	diverged := 0
	for _, r := range results {
		if r.Err != nil {
			diverged++
		}
	}
	fmt.Printf("completed in %v (%d runs, %d stopped early)\n", time.Since(start), len(results), diverged)

	if errors.Is(err, optim.ErrNoCandidate) {
		return err
	}
	fmt.Printf("best: k=%.4f d=%.4f %s=%.4f\n", best.Stiffness, best.Damping, metricName, score)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMETHOD\tTIME\tK\tD\tSTEPS\tSTATUS")

	for _, run := range runs {
		status := "ok"
		if run.Error != "" {
			status = "stopped"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4f\t%.3f\t%d/%d\t%s\n",
			run.ID,
			run.Method,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Stiffness,
			run.Damping,
			run.StepsTaken,
			run.Steps,
			status,
		)
	}

	return w.Flush()
}

var stateCaptions = []string{"x", "y", "vx", "vy"}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("method: %s k=%.4f d=%.3f\n", meta.Method, meta.Stiffness, meta.Damping)
	fmt.Printf("samples: %d\n\n", len(states))

	for idx, caption := range stateCaptions {
		graph := asciigraph.Plot(storage.Column(states, idx),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption+" vs step"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if svgFile != "" {
		pts := make([]geom.Point, len(states))
		for i, s := range states {
			pts[i] = geom.Pt(s[dynamo.IdxX], s[dynamo.IdxY])
		}
		svg := export.TrajectoryToSVG(pts, 800, 600, "#00c8ff")
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("trajectory written to %s\n", svgFile)
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.ExportJSON(os.Stdout, args[0])
}

package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/bezspring/internal/config"
	"github.com/san-kum/bezspring/internal/gui"
	"github.com/san-kum/bezspring/internal/sim"
	"github.com/san-kum/bezspring/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	watch      bool
	frameRate  int
	theme      string
	stiffness  float64
	damping    float64
	method     string
	steps      int
	startX     float64
	startY     float64
	targetX    float64
	targetY    float64
	limit      float64
	outFile    string
	frames     int
	pointerX   float64
	pointerY   float64
	noPointer  bool
	samples    int
	stride     int
	tanLength  float64
	controlPts []string
	kMin, kMax float64
	dMin, dMax float64
	gridSize   int
	metricName string
	svgFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "bezspring",
		Short:         "spring-driven cubic Bézier curve playground",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".bezspring", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	addViewFlags(rootCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive curve in the terminal",
		RunE:  runLive,
	}
	addViewFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "interactive curve in a raylib window",
		RunE:  runGUI,
	}
	guiCmd.Flags().BoolVar(&watch, "watch", false, "reload the config file on change")
	guiCmd.Flags().Float64Var(&stiffness, "k", 0, "spring stiffness (overrides config)")
	guiCmd.Flags().Float64Var(&damping, "d", 0, "spring damping (overrides config)")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "release one control point toward a target and record the run",
		RunE:  runTrace,
	}
	addTraceFlags(traceCmd)
	traceCmd.Flags().StringVar(&method, "method", sim.MethodEuler, "integration method (euler, analytic)")

	compareCmd := &cobra.Command{
		Use:   "compare [method...]",
		Short: "compare integration methods on the same trace",
		RunE:  runCompare,
	}
	addTraceFlags(compareCmd)

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search for the tuning that minimises a trace metric",
		RunE:  runTune,
	}
	addTraceFlags(tuneCmd)
	tuneCmd.Flags().StringVar(&method, "method", sim.MethodEuler, "integration method (euler, analytic)")
	tuneCmd.Flags().Float64Var(&kMin, "k-min", 0.01, "lowest stiffness")
	tuneCmd.Flags().Float64Var(&kMax, "k-max", 0.3, "highest stiffness")
	tuneCmd.Flags().Float64Var(&dMin, "d-min", 0.1, "lowest damping")
	tuneCmd.Flags().Float64Var(&dMax, "d-max", 0.9, "highest damping")
	tuneCmd.Flags().IntVar(&gridSize, "n", 8, "grid points per axis")
	tuneCmd.Flags().StringVar(&metricName, "metric", "settle_step", "metric to minimise")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of traces",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "release the spring from random starts and count divergences",
		RunE:  runMonteCarlo,
	}
	addTraceFlags(monteCarloCmd)
	monteCarloCmd.Flags().StringVar(&method, "method", sim.MethodEuler, "integration method (euler, analytic)")
	monteCarloCmd.Flags().IntVar(&trials, "trials", 100, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturbation, "spread", 100, "maximum start offset per axis")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "also write the trajectory as SVG")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a recorded run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "step the scene headless and write the frame as SVG",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "bezspring.svg", "output file")
	snapshotCmd.Flags().IntVar(&frames, "frames", 60, "frames to step before the snapshot")
	snapshotCmd.Flags().Float64Var(&pointerX, "x", 400, "pointer x")
	snapshotCmd.Flags().Float64Var(&pointerY, "y", 200, "pointer y")
	snapshotCmd.Flags().BoolVar(&noPointer, "rest", false, "leave the pointer outside the viewport")

	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "print sampled points and tangents of a cubic",
		RunE:  runSample,
	}
	sampleCmd.Flags().StringSliceVar(&controlPts, "p", []string{"50,300", "250,300", "550,300", "750,300"}, "control points x,y (four)")
	sampleCmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "sample intervals")
	sampleCmd.Flags().IntVar(&stride, "stride", config.DefaultTangentStride, "tangent stride")
	sampleCmd.Flags().Float64Var(&tanLength, "length", config.DefaultTangentLength, "tangent length")
	sampleCmd.Flags().StringVar(&svgFile, "svg", "", "also write the curve as SVG")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default (or --preset) config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(liveCmd, guiCmd, traceCmd, compareCmd, tuneCmd, scenarioCmd, monteCarloCmd, listCmd, plotCmd,
		exportJSONCmd, snapshotCmd, sampleCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the config file on change")
	cmd.Flags().IntVar(&frameRate, "fps", 0, "frame rate (overrides config)")
	cmd.Flags().StringVar(&theme, "theme", "", "colour theme (overrides config): "+strings.Join(viz.ThemeNames(), ", "))
	cmd.Flags().Float64Var(&stiffness, "k", 0, "spring stiffness (overrides config)")
	cmd.Flags().Float64Var(&damping, "d", 0, "spring damping (overrides config)")
}

func addTraceFlags(cmd *cobra.Command) {
	def := sim.DefaultConfig()
	cmd.Flags().Float64Var(&stiffness, "k", def.Stiffness, "spring stiffness")
	cmd.Flags().Float64Var(&damping, "d", def.Damping, "spring damping")
	cmd.Flags().IntVar(&steps, "steps", def.Steps, "frames to simulate")
	cmd.Flags().Float64Var(&startX, "start-x", def.Start.X, "start x")
	cmd.Flags().Float64Var(&startY, "start-y", def.Start.Y, "start y")
	cmd.Flags().Float64Var(&targetX, "target-x", def.Target.X, "target x")
	cmd.Flags().Float64Var(&targetY, "target-y", def.Target.Y, "target y")
	cmd.Flags().Float64Var(&limit, "limit", def.DivergenceLimit, "divergence limit (0 disables)")
}

// loadConfig resolves the preset, then the config file, then flags that
// were set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("k") {
		cfg.Spring.Stiffness = stiffness
	}
	if flags.Changed("d") {
		cfg.Spring.Damping = damping
	}
	if flags.Changed("fps") {
		cfg.Render.FPS = frameRate
	}
	if flags.Changed("theme") {
		cfg.Render.Theme = theme
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openWatcher starts watching the config file when --watch is set.
func openWatcher() (*config.Watcher, error) {
	if !watch {
		return nil, nil
	}
	if configFile == "" {
		return nil, fmt.Errorf("--watch needs --config")
	}
	return config.NewWatcher(configFile)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if os.Getenv("BEZSPRING_DEBUG") != "" {
		f, err := tea.LogToFile("bezspring-debug.log", "bezspring")
		if err != nil {
			return err
		}
		defer f.Close()
	}

	w, err := openWatcher()
	if err != nil {
		return err
	}
	if w != nil {
		defer w.Close()
	}

	log.Printf("live: k=%.3f d=%.2f fps=%d", cfg.Spring.Stiffness, cfg.Spring.Damping, cfg.Render.FPS)
	return viz.Run(cfg, w)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	w, err := openWatcher()
	if err != nil {
		return err
	}
	if w != nil {
		defer w.Close()
	}

	gui.Run(cfg, w)
	return nil
}

package viz

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bezspring/internal/config"
	"github.com/san-kum/bezspring/internal/export"
	"github.com/san-kum/bezspring/internal/geom"
	"github.com/san-kum/bezspring/internal/scene"
)

const (
	panelWidth      = 34
	defaultWidth    = 100
	defaultHeight   = 30
	historyCapacity = 120
	tuneStep        = 1.1
	maxSubCoord     = 1 << 30
)

var (
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 1).Width(panelWidth - 1)
	headerStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(11)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

type configMsg struct{ cfg *config.Config }

type configErrMsg struct{ err error }

// Model is the Bubble Tea model of the live curve view.
type Model struct {
	cfg     *config.Config
	scene   *scene.Scene
	canvas  *Canvas
	watcher *config.Watcher

	width, height int
	theme         int
	showGrid      bool
	showTangents  bool
	paused        bool
	pointerInside bool
	help          help.Model

	frames    int
	fps       float64
	fpsStamp  time.Time
	energy    []float64
	status    string
	snapshots int
}

// NewModel builds the view for cfg. watcher may be nil.
func NewModel(cfg *config.Config, watcher *config.Watcher) Model {
	m := Model{
		cfg:          cfg,
		watcher:      watcher,
		canvas:       NewCanvas(1, 1),
		showGrid:     cfg.Render.Grid,
		showTangents: cfg.Render.Tangents,
		energy:       make([]float64, 0, historyCapacity),
		help:         help.New(),
	}
	m.help.Width = panelWidth - 3
	m.theme = themeIndex(cfg.Render.Theme)
	m.layout(defaultWidth, defaultHeight)
	return m
}

// layout sizes the canvas to the terminal and the scene to the canvas.
func (m *Model) layout(width, height int) {
	m.width, m.height = width, height
	cols := max(width-panelWidth, 10)
	rows := max(height, 4)
	m.canvas.Resize(cols, rows)

	scale := m.cfg.Render.TerminalScale
	w, h := float64(m.canvas.SubWidth())*scale, float64(m.canvas.SubHeight())*scale
	if m.scene == nil {
		m.scene = scene.New(w, h, m.cfg.Layout, m.cfg.Spring.Stiffness, m.cfg.Spring.Damping)
		return
	}
	m.scene.Resize(w, h)
}

func (m Model) Scene() *scene.Scene { return m.scene }

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tick()}
	if m.watcher != nil {
		cmds = append(cmds, waitForConfig(m.watcher))
	}
	return tea.Batch(cmds...)
}

func (m Model) tick() tea.Cmd {
	fps := max(m.cfg.Render.FPS, 1)
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func waitForConfig(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case cfg, ok := <-w.Events:
			if !ok {
				return nil
			}
			return configMsg{cfg: cfg}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return configErrMsg{err: err}
		}
	}
}

// Update routes input to the scene and steps it on every tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.BlurMsg:
		m.pointerInside = false
		m.scene.PointerLeave()
		return m, nil
	case tea.WindowSizeMsg:
		m.layout(msg.Width, msg.Height)
		return m, nil
	case configMsg:
		m.applyConfig(msg.cfg)
		return m, waitForConfig(m.watcher)
	case configErrMsg:
		m.status = "config: " + msg.err.Error()
		return m, waitForConfig(m.watcher)
	case TickMsg:
		if !m.paused {
			m.scene.Step()
			m.record()
		}
		m.countFrame(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) applyConfig(cfg *config.Config) {
	scale := m.cfg.Render.TerminalScale
	m.cfg = cfg
	m.scene.Apply(cfg)
	m.showGrid, m.showTangents = cfg.Render.Grid, cfg.Render.Tangents
	m.theme = themeIndex(cfg.Render.Theme)
	if cfg.Render.TerminalScale != scale {
		m.layout(m.width, m.height)
	}
	m.status = "config reloaded"
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.X >= m.canvas.Width || msg.Y >= m.canvas.Height || msg.X < 0 || msg.Y < 0 {
		if m.pointerInside {
			m.pointerInside = false
			m.scene.PointerLeave()
		}
		return
	}
	m.pointerInside = true
	x, y := m.cellToScene(msg.X, msg.Y)
	m.scene.PointerMove(x, y)
}

// cellToScene maps the centre of a terminal cell to scene coordinates.
func (m *Model) cellToScene(col, row int) (float64, float64) {
	scale := m.cfg.Render.TerminalScale
	return (float64(col)*2 + 1) * scale, (float64(row)*4 + 2) * scale
}

// sceneToSub maps a scene point to canvas sub-pixels. ok is false for
// non-finite points and for points too far out to convert to int.
func (m *Model) sceneToSub(p geom.Point) (x, y int, ok bool) {
	scale := m.cfg.Render.TerminalScale
	fx, fy := math.Round(p.X/scale), math.Round(p.Y/scale)
	if !(math.Abs(fx) <= maxSubCoord && math.Abs(fy) <= maxSubCoord) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k, d := m.scene.Tuning()
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Pause):
		m.paused = !m.paused
	case key.Matches(msg, keys.Rest):
		m.scene.PointerLeave()
	case key.Matches(msg, keys.Grid):
		m.showGrid = !m.showGrid
	case key.Matches(msg, keys.Tangents):
		m.showTangents = !m.showTangents
	case key.Matches(msg, keys.Theme):
		m.theme = (m.theme + 1) % len(Themes)
	case key.Matches(msg, keys.Stiffer):
		m.scene.SetTuning(k*tuneStep, d)
	case key.Matches(msg, keys.Softer):
		m.scene.SetTuning(k/tuneStep, d)
	case key.Matches(msg, keys.MoreDamp):
		m.scene.SetTuning(k, d+0.05)
	case key.Matches(msg, keys.LessDamp):
		m.scene.SetTuning(k, math.Max(d-0.05, 0))
	case key.Matches(msg, keys.Snapshot):
		m.saveSnapshot()
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) saveSnapshot() {
	w, h := m.scene.Size()
	opts := export.OptionsFromConfig(m.cfg)
	opts.Width, opts.Height = w, h
	opts.Grid, opts.Tangents = m.showGrid, m.showTangents

	m.snapshots++
	name := fmt.Sprintf("bezspring_%d_%d.svg", time.Now().Unix(), m.snapshots)
	if err := os.WriteFile(name, []byte(export.FrameToSVG(m.scene.Frame(), opts)), 0644); err != nil {
		m.status = "snapshot: " + err.Error()
		return
	}
	m.status = "saved " + name
}

func (m *Model) record() {
	if len(m.energy) >= historyCapacity {
		m.energy = m.energy[1:]
	}
	m.energy = append(m.energy, m.scene.Energy())
}

func (m *Model) countFrame(now time.Time) {
	if m.fpsStamp.IsZero() {
		m.fpsStamp = now
	}
	m.frames++
	if elapsed := now.Sub(m.fpsStamp); elapsed >= time.Second {
		m.fps = float64(m.frames) / elapsed.Seconds()
		m.frames = 0
		m.fpsStamp = now
	}
}

// draw renders the current frame onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()
	f := m.scene.Frame()
	c := f.Curve()
	r := m.cfg.Render

	if m.showGrid {
		m.drawGrid()
	}

	if m.showTangents {
		for _, s := range c.Tangents(r.Samples, r.TangentStride, r.TangentLength) {
			m.drawSegment(s.Origin, s.End, LayerTangent)
		}
	}

	pts := c.Sample(r.Samples)
	for i := 1; i < len(pts); i++ {
		m.drawSegment(pts[i-1], pts[i], LayerCurve)
	}

	for _, t := range []geom.Point{f.T1, f.T2} {
		if x, y, ok := m.sceneToSub(t); ok {
			m.canvas.DrawCross(x, y, 1, LayerTarget)
		}
	}
	for _, p := range []geom.Point{f.P0, f.P3} {
		if x, y, ok := m.sceneToSub(p); ok {
			m.canvas.DrawDot(x, y, 1, LayerAnchor)
		}
	}
	for _, p := range []geom.Point{f.P1, f.P2} {
		if x, y, ok := m.sceneToSub(p); ok {
			m.canvas.DrawDot(x, y, 1, LayerSpring)
		}
	}
}

// drawSegment draws a scene-space segment. Segments with an endpoint that
// cannot be mapped (a diverged spring) are skipped.
func (m *Model) drawSegment(a, b geom.Point, layer Layer) {
	x0, y0, ok0 := m.sceneToSub(a)
	x1, y1, ok1 := m.sceneToSub(b)
	if ok0 && ok1 {
		m.canvas.DrawLine(x0, y0, x1, y1, layer)
	}
}

// drawGrid dots a grid with the same scene spacing as the SVG export.
func (m *Model) drawGrid() {
	step := export.DefaultFrameOptions(0, 0).GridStep / m.cfg.Render.TerminalScale
	if step < 2 {
		return
	}
	for gx := 0.0; gx < float64(m.canvas.SubWidth()); gx += step {
		for y := 0; y < m.canvas.SubHeight(); y += 2 {
			m.canvas.Set(int(gx), y, LayerGrid)
		}
	}
	for gy := 0.0; gy < float64(m.canvas.SubHeight()); gy += step {
		for x := 0; x < m.canvas.SubWidth(); x += 2 {
			m.canvas.Set(x, int(gy), LayerGrid)
		}
	}
}

// View renders the canvas and the side panel.
func (m Model) View() string {
	theme := Themes[m.theme]
	m.draw()
	canvasView := m.canvas.Render(theme.LayerStyles())

	f := m.scene.Frame()
	k, d := m.scene.Tuning()

	var s strings.Builder
	s.WriteString(headerStyle.Foreground(theme.Accent).Render("BÉZIER SPRING") + "\n")

	status := "RUNNING"
	if m.paused {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("FPS", fmt.Sprintf("%.0f", m.fps))
	row("Frame", fmt.Sprintf("%d", f.Index))
	row("Stiffness", fmt.Sprintf("%.3f", k))
	row("Damping", fmt.Sprintf("%.2f", d))
	row("P1", fmtPoint(f.P1))
	row("P2", fmtPoint(f.P2))
	row("Theme", theme.Name)
	row("Grid", onOff(m.showGrid))
	row("Tangents", onOff(m.showTangents))

	if series := finite(m.energy); len(series) > 1 {
		chart := asciigraph.Plot(series, asciigraph.Height(4), asciigraph.Width(panelWidth-10), asciigraph.Caption("energy"))
		s.WriteString("\n" + chart + "\n")
	}

	if m.status != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Muted).Render(m.status) + "\n")
	}

	s.WriteString(helpStyle.Render(m.help.View(keys)))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle.Render(s.String()))
}

// finite returns the finite values of xs. asciigraph cannot scale Inf or NaN.
func finite(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsInf(x, 0) && !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

func themeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

func fmtPoint(p geom.Point) string {
	return fmt.Sprintf("%.0f, %.0f", p.X, p.Y)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Run starts the live view and blocks until it exits.
func Run(cfg *config.Config, watcher *config.Watcher) error {
	p := tea.NewProgram(NewModel(cfg, watcher), tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}

package gui

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/bezspring/internal/config"
	"github.com/san-kum/bezspring/internal/export"
	"github.com/san-kum/bezspring/internal/scene"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColCurve   = rl.NewColor(0, 200, 255, 255)
	ColTangent = rl.NewColor(255, 0, 255, 255)
	ColAnchor  = rl.NewColor(255, 255, 255, 255)
	ColSpring  = rl.NewColor(255, 100, 100, 255)
	ColPolygon = rl.NewColor(80, 80, 80, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColGrid    = rl.NewColor(30, 30, 30, 255)
)

const fontPath = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"

type App struct {
	Cfg     *config.Config
	Scene   *scene.Scene
	Watcher *config.Watcher
	Font    rl.Font

	ShowGrid     bool
	ShowTangents bool
	Paused       bool

	pointerActive bool
	status        string
	statusUntil   time.Time
}

func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Viewport.Width), int32(cfg.Viewport.Height), "bezspring")
	rl.SetTargetFPS(int32(cfg.Render.FPS))
	rl.SetExitKey(0)
}

// loadFont prefers Liberation Mono and falls back to the raylib default.
func loadFont() rl.Font {
	if !rl.FileExists(fontPath) {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(cfg *config.Config, watcher *config.Watcher) *App {
	w, h := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
	return &App{
		Cfg:          cfg,
		Scene:        scene.New(w, h, cfg.Layout, cfg.Spring.Stiffness, cfg.Spring.Damping),
		Watcher:      watcher,
		Font:         loadFont(),
		ShowGrid:     cfg.Render.Grid,
		ShowTangents: cfg.Render.Tangents,
	}
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, watcher *config.Watcher) {
	initWindow(cfg)
	defer rl.CloseWindow()
	app := NewApp(cfg, watcher)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Update handles one frame of input and advances the scene. It reports
// false when the user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}

	a.pollConfig()

	if rl.IsWindowResized() {
		a.Scene.Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
	}

	a.handlePointer()
	a.handleKeys()

	if !a.Paused {
		a.Scene.Step()
	}
	return true
}

// handlePointer steers the springs with the mouse or the first touch
// point. Leaving the window, losing focus or lifting the finger sends
// them back to rest.
func (a *App) handlePointer() {
	var x, y float32
	active := false

	switch {
	case rl.GetTouchPointCount() > 0:
		p := rl.GetTouchPosition(0)
		x, y, active = p.X, p.Y, true
	case rl.IsCursorOnScreen() && rl.IsWindowFocused():
		p := rl.GetMousePosition()
		x, y, active = p.X, p.Y, true
	}

	if active {
		a.Scene.PointerMove(float64(x), float64(y))
	} else if a.pointerActive {
		a.Scene.PointerLeave()
	}
	a.pointerActive = active
}

func (a *App) handleKeys() {
	k, d := a.Scene.Tuning()

	if rl.IsKeyPressed(rl.KeySpace) {
		a.Paused = !a.Paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Scene.PointerLeave()
	}
	if rl.IsKeyPressed(rl.KeyG) {
		a.ShowGrid = !a.ShowGrid
	}
	if rl.IsKeyPressed(rl.KeyT) {
		a.ShowTangents = !a.ShowTangents
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		a.Scene.SetTuning(k*1.1, d)
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		a.Scene.SetTuning(k/1.1, d)
	}
	if rl.IsKeyPressed(rl.KeyRight) {
		a.Scene.SetTuning(k, d+0.05)
	}
	if rl.IsKeyPressed(rl.KeyLeft) {
		a.Scene.SetTuning(k, math.Max(d-0.05, 0))
	}
	if rl.IsKeyPressed(rl.KeyS) {
		a.snapshot()
	}
}

func (a *App) pollConfig() {
	if a.Watcher == nil {
		return
	}
	select {
	case cfg, ok := <-a.Watcher.Events:
		if ok {
			a.Cfg = cfg
			a.Scene.Apply(cfg)
			a.ShowGrid, a.ShowTangents = cfg.Render.Grid, cfg.Render.Tangents
			rl.SetTargetFPS(int32(cfg.Render.FPS))
			a.flash("config reloaded")
		}
	case err, ok := <-a.Watcher.Errors:
		if ok {
			log.Printf("config reload: %v", err)
			a.flash("config error")
		}
	default:
	}
}

func (a *App) snapshot() {
	w, h := a.Scene.Size()
	opts := export.OptionsFromConfig(a.Cfg)
	opts.Width, opts.Height = w, h
	opts.Grid, opts.Tangents = a.ShowGrid, a.ShowTangents

	name := fmt.Sprintf("bezspring_%d.svg", time.Now().UnixNano())
	if err := os.WriteFile(name, []byte(export.FrameToSVG(a.Scene.Frame(), opts)), 0644); err != nil {
		log.Printf("snapshot: %v", err)
		a.flash("snapshot failed")
		return
	}
	a.flash("saved " + name)
}

func (a *App) flash(msg string) {
	a.status = msg
	a.statusUntil = time.Now().Add(2 * time.Second)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.ShowGrid {
		a.drawGrid()
	}
	a.drawFrame(a.Scene.Frame())
	a.drawHUD()

	rl.EndDrawing()
}

func (a *App) drawHUD() {
	k, d := a.Scene.Tuning()
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 20, 20, 16, ColText)
	a.drawText(fmt.Sprintf("k %.3f  d %.2f", k, d), 20, 42, 14, ColTextDim)
	if a.Paused {
		a.drawText("PAUSED", 20, 62, 14, ColText)
	}
	if a.status != "" && time.Now().Before(a.statusUntil) {
		a.drawText(a.status, 20, int32(rl.GetScreenHeight())-54, 14, ColText)
	}
	a.drawText("G grid  T tangents  SPACE pause  R rest  arrows tune  S svg  Q quit",
		20, int32(rl.GetScreenHeight())-30, 12, ColTextDim)
}

func (a *App) drawText(text string, x, y, size int32, col color.RGBA) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, col)
}

package gui

import (
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/shoal/internal/config"
	"github.com/san-kum/shoal/internal/dynamo"
	"github.com/san-kum/shoal/internal/flock"
	"github.com/san-kum/shoal/internal/metrics"
)

var (
	ColBg       = rl.NewColor(6, 20, 31, 255)
	ColFish     = rl.NewColor(127, 219, 255, 255)
	ColObstacle = rl.NewColor(255, 95, 87, 255)
	ColSelect   = rl.NewColor(255, 255, 255, 255)
	ColText     = rl.NewColor(140, 160, 170, 255)
	ColTextDim  = rl.NewColor(60, 80, 90, 255)
)

const (
	fontPath     = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
	obstacleSize = 4
	countStep    = 50
)

type App struct {
	Cfg      *config.Config
	Flock    *flock.Flock
	Pop      *flock.Population
	Pipe     *flock.Pipeline
	Params   flock.Params
	Count    int
	Running  bool
	ParamSel int
	Timer    *metrics.FrameTimer
	Font     rl.Font
	Notice   string
}

func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Bounds.Width), int32(cfg.Bounds.Height), "shoal")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont prefers Liberation Mono and falls back to the built-in font.
func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(cfg *config.Config) *App {
	app := &App{
		Cfg:   cfg,
		Pipe:  flock.NewPipeline(dynamo.Workers(cfg.Workers)),
		Timer: metrics.NewFrameTimer(metrics.DefaultFrameWindow),
		Font:  loadFont(),
	}
	app.reset()
	return app
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config) {
	initWindow(cfg)
	defer rl.CloseWindow()
	app := NewApp(cfg)
	slog.Info("gui started", "width", rl.GetScreenWidth(), "height", rl.GetScreenHeight(), "count", app.Count)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if quit := a.Update(); quit {
			return
		}
		a.Draw()
	}
}

// screenBounds maps the window one pixel per world unit, centred on the
// origin.
func screenBounds() dynamo.Bounds {
	return dynamo.CenteredBounds(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
}

func (a *App) reset() {
	a.Flock = flock.New(screenBounds())
	for _, o := range a.Cfg.ObstaclePoints() {
		a.Flock.PlaceObstacle(o)
	}
	a.Pop = flock.NewPopulation(a.Cfg.ResolvedSeed())
	a.Params = a.Cfg.Params().Clamped()
	a.Count = int(flock.CountRange.Clamp(float64(a.Cfg.Count)))
	a.Running = true
	a.Timer.Reset()
	a.Notice = ""
}

// Update handles input, then advances one frame with the measured delta.
// It reports whether the user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return true
	}
	if rl.IsWindowResized() {
		a.Flock.SetBounds(screenBounds())
	}

	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.Running = !a.Running
	case rl.IsKeyPressed(rl.KeyR):
		a.reset()
	case rl.IsKeyPressed(rl.KeyC):
		a.Flock.ClearObstacles()
	case rl.IsKeyPressed(rl.KeyTab):
		a.ParamSel = (a.ParamSel + 1) % len(flock.ParamNames)
	case rl.IsKeyPressed(rl.KeyEqual), rl.IsKeyPressed(rl.KeyKpAdd):
		a.Count = int(flock.CountRange.Clamp(float64(a.Count + countStep)))
	case rl.IsKeyPressed(rl.KeyMinus), rl.IsKeyPressed(rl.KeyKpSubtract):
		a.Count = int(flock.CountRange.Clamp(float64(a.Count - countStep)))
	}

	step := 0.0
	if rl.IsKeyDown(rl.KeyUp) {
		step = 1
	} else if rl.IsKeyDown(rl.KeyDown) {
		step = -1
	}
	if step != 0 {
		if rl.IsKeyDown(rl.KeyLeftShift) {
			step *= 10
		}
		a.adjustParam(step)
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.placeObstacle(rl.GetMousePosition())
	}

	dt := rl.GetFrameTime()
	if a.Running {
		a.Pop.Resize(a.Flock, a.Count)
		a.Pipe.Step(a.Flock, a.Params, float64(dt))
	}
	a.Timer.Tick(secondsToDuration(dt), a.Flock.Len())
	return false
}

func (a *App) adjustParam(dir float64) {
	name := flock.ParamNames[a.ParamSel]
	r, _ := flock.ParamRange(name)
	v := a.Params.GetParams()[name]
	if err := a.Params.SetParam(name, r.Clamp(v+dir*(r.Max-r.Min)/1000)); err != nil {
		slog.Warn("parameter rejected", "name", name, "err", err)
	}
}

func (a *App) placeObstacle(cursor rl.Vector2) {
	p := flock.PointerToWorld(a.Flock.Bounds(), dynamo.Vec2{X: float64(cursor.X), Y: float64(cursor.Y)}, 1)
	if !a.Flock.PlaceObstacle(p) {
		slog.Info("pointer out of bounds", "x", p.X, "y", p.Y)
		a.Notice = "pointer out of bounds"
		return
	}
	a.Notice = fmt.Sprintf("obstacle at (%.0f, %.0f)", p.X, p.Y)
}

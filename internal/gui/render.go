package gui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/shoal/internal/dynamo"
	"github.com/san-kum/shoal/internal/export"
	"github.com/san-kum/shoal/internal/flock"
)

func secondsToDuration(s float32) time.Duration {
	return time.Duration(float64(s) * float64(time.Second))
}

func vec(v dynamo.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawFlock()
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) drawFlock() {
	b := a.Flock.Bounds()
	for _, o := range a.Flock.Obstacles() {
		rl.DrawCircleV(vec(flock.WorldToPointer(b, o.Position, 1)), obstacleSize, ColObstacle)
	}
	for _, ag := range a.Flock.Agents() {
		tri := export.ScreenTriangle(b, ag.Position, ag.Orientation, export.FishSize, 1)
		rl.DrawTriangle(vec(tri[0]), vec(tri[1]), vec(tri[2]), ColFish)
	}
}

func (a *App) DrawHUD() {
	a.drawText("shoal", 30, 30, 24, ColSelect)

	y := 70
	for _, line := range a.Timer.Lines() {
		a.drawText(line, 30, y, 16, ColText)
		y += 20
	}
	a.drawText(fmt.Sprintf("Target: %d  Obstacles: %d", a.Count, len(a.Flock.Obstacles())), 30, y, 16, ColText)

	status, col := "RUNNING", ColSelect
	if !a.Running {
		status, col = "PAUSED", ColTextDim
	}
	w := rl.GetScreenWidth()
	h := rl.GetScreenHeight()
	a.drawText(status, w-130, 30, 16, col)

	a.drawParams(w-330, 70)

	if a.Notice != "" {
		a.drawText(a.Notice, 30, h-70, 14, ColObstacle)
	}
	a.drawText("[SPACE] PAUSE  [R] RESET  [C] CLEAR  [TAB] PARAM  [UP/DOWN] TUNE  [+/-] COUNT  [Q] QUIT", 30, h-40, 14, ColTextDim)
}

func (a *App) drawParams(x, y int) {
	a.drawText("PARAMETERS", x, y, 16, ColSelect)
	values := a.Params.GetParams()
	for i, name := range flock.ParamNames {
		y += 22
		col := ColTextDim
		prefix := "  "
		if i == a.ParamSel {
			col, prefix = ColSelect, "> "
		}
		a.drawText(fmt.Sprintf("%s%-24s %6.2f", prefix, name, values[name]), x, y, 14, col)
	}
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/shoal/internal/config"
	"github.com/san-kum/shoal/internal/dynamo"
	"github.com/san-kum/shoal/internal/flock"
)

func newTestModel() Model {
	cfg := config.DefaultConfig()
	cfg.Seed = 1
	return NewModel(cfg)
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		m = send(m, keyMsg(k))
	}
	return m
}

// ticks feeds n frames 1/60s apart, continuing from the model's last tick.
func ticks(m Model, n int) Model {
	start := time.Now()
	if !m.lastTick.IsZero() {
		start = m.lastTick.Add(time.Second / 60)
	}
	for i := 0; i < n; i++ {
		m = send(m, TickMsg(start.Add(time.Duration(i)*time.Second/60)))
	}
	return m
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestModelPopulatesOnFirstTick(t *testing.T) {
	m := newTestModel()
	if m.Flock().Len() != 0 {
		t.Fatalf("expected empty flock before the first frame, got %d", m.Flock().Len())
	}

	m = ticks(m, 1)
	if m.Flock().Len() != 200 {
		t.Errorf("expected 200 agents, got %d", m.Flock().Len())
	}
	b := m.Flock().Bounds()
	for _, a := range m.Flock().Agents() {
		p := a.Position
		if p.X < b.A.X || p.X > b.B.X || p.Y < b.A.Y || p.Y > b.B.Y {
			t.Fatalf("agent escaped bounds: %v", p)
		}
	}
}

func TestModelPause(t *testing.T) {
	m := ticks(newTestModel(), 2)
	m = press(m, " ")
	if m.Running() {
		t.Fatal("expected paused model")
	}

	before := m.Flock().Agents()[0].Position
	m = ticks(m, 5)
	if m.Flock().Agents()[0].Position != before {
		t.Error("paused model must not move agents")
	}
}

func TestModelCountControl(t *testing.T) {
	m := newTestModel()

	m = press(m, "-")
	if m.Count() != 200 {
		t.Errorf("expected count clamped at 200, got %d", m.Count())
	}

	m = press(m, "+")
	m = ticks(m, 1)
	if m.Count() != 250 || m.Flock().Len() != 250 {
		t.Errorf("expected 250 agents, got count=%d len=%d", m.Count(), m.Flock().Len())
	}

	for i := 0; i < 30; i++ {
		m = press(m, "+")
	}
	if m.Count() != 1000 {
		t.Errorf("expected count clamped at 1000, got %d", m.Count())
	}

	m = press(m, "-", "-")
	m = ticks(m, 1)
	if m.Flock().Len() != 900 {
		t.Errorf("expected 900 agents, got %d", m.Flock().Len())
	}
}

func TestModelClickPlacesObstacle(t *testing.T) {
	m := newTestModel()
	b := m.Flock().Bounds()

	m = send(m, click(canvasCol, canvasRow))
	obs := m.Flock().Obstacles()
	if len(obs) != 1 {
		t.Fatalf("expected 1 obstacle, got %d", len(obs))
	}
	want := dynamo.Vec2{X: b.A.X + WorldPerDot, Y: -(b.A.Y + 2*WorldPerDot)}
	if obs[0].Position != want {
		t.Errorf("expected obstacle at %v, got %v", want, obs[0].Position)
	}

	m = send(m, click(0, 0))
	if len(m.Flock().Obstacles()) != 1 {
		t.Error("click outside the canvas must not place an obstacle")
	}
	if !strings.Contains(m.View(), "pointer out of bounds") {
		t.Error("expected out-of-bounds notice")
	}

	m = press(m, "c")
	if len(m.Flock().Obstacles()) != 0 {
		t.Error("expected obstacles cleared")
	}
}

func TestModelResizeSetsBounds(t *testing.T) {
	m := send(newTestModel(), tea.WindowSizeMsg{Width: 100, Height: 30})

	want := dynamo.CenteredBounds(90*WorldPerDot, 112*WorldPerDot)
	if m.Flock().Bounds() != want {
		t.Errorf("expected bounds %v, got %v", want, m.Flock().Bounds())
	}
}

func TestModelParamTuning(t *testing.T) {
	m := newTestModel()

	m = press(m, "tab")
	name := flock.ParamNames[1]
	r, _ := flock.ParamRange(name)
	p0 := m.Params()
	before := p0.GetParams()[name]

	m = press(m, "up")
	p := m.Params()
	got := p.GetParams()[name]
	if diff := got - before - (r.Max-r.Min)/100; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected %s to rise by 1%% of range, went %g -> %g", name, before, got)
	}

	for i := 0; i < 200; i++ {
		m = press(m, "down")
	}
	p = m.Params()
	if p.GetParams()[name] != r.Min {
		t.Errorf("expected %s clamped at %g, got %g", name, r.Min, p.GetParams()[name])
	}

	m = press(m, "r")
	if m.Params() != flock.DefaultParams() {
		t.Error("reset should restore configured params")
	}
}

func TestModelResetRestoresConfig(t *testing.T) {
	cfg := config.GetPreset("reef")
	cfg.Seed = 3
	m := NewModel(cfg)
	if len(m.Flock().Obstacles()) != 4 {
		t.Fatalf("expected preset obstacles, got %d", len(m.Flock().Obstacles()))
	}

	m = press(m, "c", "+")
	m = ticks(m, 3)
	m = press(m, "r")
	if len(m.Flock().Obstacles()) != 4 || m.Count() != cfg.Count || m.Flock().Len() != 0 {
		t.Errorf("reset incomplete: obstacles=%d count=%d len=%d",
			len(m.Flock().Obstacles()), m.Count(), m.Flock().Len())
	}
}

func TestModelView(t *testing.T) {
	m := ticks(newTestModel(), 3)
	view := m.View()

	for _, want := range []string{"SHOAL", "FPS", "Worst Frame Time", "Entities: 200", "PARAMETERS", "max_force"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestMenuStartsPreset(t *testing.T) {
	app := NewInteractiveApp()
	var next tea.Model = *app

	next, _ = next.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	next, _ = next.Update(keyMsg("j"))
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected tick command after starting")
	}

	mm := next.(menu)
	if mm.state != stateSim {
		t.Fatal("expected live state")
	}
	want := config.GetPreset(mm.presets[1])
	if mm.live.Count() != want.Count {
		t.Errorf("expected preset count %d, got %d", want.Count, mm.live.Count())
	}
}

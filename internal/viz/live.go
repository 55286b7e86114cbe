package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/shoal/internal/config"
	"github.com/san-kum/shoal/internal/dynamo"
	"github.com/san-kum/shoal/internal/export"
	"github.com/san-kum/shoal/internal/flock"
	"github.com/san-kum/shoal/internal/metrics"
)

const (
	termWidth       = 120
	termHeight      = 36
	statsWidth      = 50
	historyCapacity = 120

	// CountStep is how many agents +/- add or remove.
	CountStep = 50

	// WorldPerDot is the world size of one braille dot.
	WorldPerDot = 4.0
)

// The canvas starts this many cells from the terminal's top-left corner.
const (
	canvasCol = 2
	canvasRow = 1
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model owns a flock and everything needed to step and draw it.
type Model struct {
	cfg      *config.Config
	flock    *flock.Flock
	pop      *flock.Population
	pipe     *flock.Pipeline
	params   flock.Params
	count    int
	canvas   *Canvas
	timer    *metrics.FrameTimer
	polar    *metrics.Polarization
	lastTick time.Time

	polarHistory []float64
	frameHistory []float64

	running  bool
	selected int
	theme    Theme
	notice   string
	width    int
	height   int
}

func NewModel(cfg *config.Config) Model {
	m := Model{
		cfg:          cfg,
		pipe:         flock.NewPipeline(dynamo.Workers(cfg.Workers)),
		timer:        metrics.NewFrameTimer(metrics.DefaultFrameWindow),
		polar:        metrics.NewPolarization(),
		polarHistory: make([]float64, 0, historyCapacity),
		frameHistory: make([]float64, 0, historyCapacity),
		running:      true,
		theme:        ThemeOcean,
	}
	m.resize(termWidth, termHeight)
	m.reset()
	return m
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.selected = (m.selected + 1) % len(flock.ParamNames)
		case "shift+tab":
			m.selected = (m.selected + len(flock.ParamNames) - 1) % len(flock.ParamNames)
		case "up", "k":
			m.adjustParam(1)
		case "down", "j":
			m.adjustParam(-1)
		case "+", "=":
			m.setCount(m.count + CountStep)
		case "-", "_":
			m.setCount(m.count - CountStep)
		case "c":
			m.flock.ClearObstacles()
			m.notice = "obstacles cleared"
		case "t":
			m.theme = NextTheme(m.theme.Name)
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.click(msg.X, msg.Y)
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		now := time.Time(msg)
		elapsed := time.Second / 60
		if !m.lastTick.IsZero() {
			elapsed = now.Sub(m.lastTick)
		}
		m.lastTick = now
		if m.running {
			m.step(elapsed)
		}
		return m, tick()
	}
	return m, nil
}

// step resizes the population, then runs one frame with the measured delta.
func (m *Model) step(elapsed time.Duration) {
	start := time.Now()
	m.pop.Resize(m.flock, m.count)
	m.pipe.Step(m.flock, m.params, elapsed.Seconds())

	m.polarHistory = pushHistory(m.polarHistory, m.polar.Observe(m.flock, 0))
	m.frameHistory = pushHistory(m.frameHistory, float64(time.Since(start).Microseconds())/1000)
	m.timer.Tick(elapsed, m.flock.Len())
}

func pushHistory(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// reset rebuilds the flock from the config: agents, obstacles, parameters
// and target count all return to their starting values.
func (m *Model) reset() {
	m.flock = flock.New(m.worldBounds())
	for _, o := range m.cfg.ObstaclePoints() {
		m.flock.PlaceObstacle(o)
	}
	m.pop = flock.NewPopulation(m.cfg.ResolvedSeed())
	m.params = m.cfg.Params().Clamped()
	m.count = int(flock.CountRange.Clamp(float64(m.cfg.Count)))
	m.polar.Reset()
	m.timer.Reset()
	m.polarHistory = m.polarHistory[:0]
	m.frameHistory = m.frameHistory[:0]
	m.notice = ""
}

func (m *Model) worldBounds() dynamo.Bounds {
	return dynamo.CenteredBounds(float64(m.canvas.DotsWide())*WorldPerDot, float64(m.canvas.DotsHigh())*WorldPerDot)
}

// resize fits the canvas to the terminal and the world to the canvas.
func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	cw := max(10, w-statsWidth-2*canvasCol-1)
	ch := max(5, h-2*canvasRow)
	m.canvas = NewCanvas(cw, ch)
	if m.flock != nil {
		m.flock.SetBounds(m.worldBounds())
	}
}

func (m *Model) setCount(n int) {
	m.count = int(flock.CountRange.Clamp(float64(n)))
}

func (m *Model) adjustParam(dir float64) {
	name := flock.ParamNames[m.selected]
	r, _ := flock.ParamRange(name)
	v := m.params.GetParams()[name]
	if err := m.params.SetParam(name, r.Clamp(v+dir*(r.Max-r.Min)/100)); err != nil {
		slog.Warn("parameter rejected", "name", name, "err", err)
	}
}

// click places an obstacle under the terminal cell (x, y).
func (m *Model) click(x, y int) {
	dot := dynamo.Vec2{
		X: float64((x-canvasCol)*2 + 1),
		Y: float64((y-canvasRow)*4 + 2),
	}
	p := flock.PointerToWorld(m.flock.Bounds(), dot, WorldPerDot)
	if !m.flock.PlaceObstacle(p) {
		slog.Info("pointer out of bounds", "x", p.X, "y", p.Y)
		m.notice = "pointer out of bounds"
		return
	}
	m.notice = fmt.Sprintf("obstacle at (%.0f, %.0f)", p.X, p.Y)
}

func (m *Model) toDot(p dynamo.Vec2) (int, int) {
	d := flock.WorldToPointer(m.flock.Bounds(), p, WorldPerDot)
	return int(d.X), int(d.Y)
}

func (m *Model) draw() {
	m.canvas.Clear()
	for _, o := range m.flock.Obstacles() {
		x, y := m.toDot(o.Position)
		m.canvas.Disc(x, y, 1)
	}
	for _, a := range m.flock.Agents() {
		tri := export.FishTriangle(a.Position, a.Orientation, WorldPerDot)
		x0, y0 := m.toDot(tri[0])
		x1, y1 := m.toDot(tri[1])
		x2, y2 := m.toDot(tri[2])
		m.canvas.DrawTriangle(x0, y0, x1, y1, x2, y2)
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.theme.fish().Render(m.canvas.String()))

	var s strings.Builder
	s.WriteString(m.theme.header().Render("SHOAL") + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	for _, line := range m.timer.Lines() {
		s.WriteString(valueStyle.Render(line) + "\n")
	}
	s.WriteString(labelStyle.Render(fmt.Sprintf("Target: %d  Obstacles: %d", m.count, len(m.flock.Obstacles()))) + "\n")
	s.WriteString(labelStyle.Render("Step ms ") + Sparkline(m.frameHistory, 24) + "\n\n")

	if len(m.polarHistory) > 1 {
		chart := asciigraph.Plot(m.polarHistory, asciigraph.Height(4), asciigraph.Width(30),
			asciigraph.LowerBound(0), asciigraph.UpperBound(1), asciigraph.Caption("Polarization"))
		s.WriteString(chart + "\n\n")
	}

	s.WriteString("PARAMETERS\n")
	values := m.params.GetParams()
	for i, name := range flock.ParamNames {
		r, _ := flock.ParamRange(name)
		line := fmt.Sprintf("%-22s %s %.2f", name, ParamBar(values[name], r.Min, r.Max, 8), values[name])
		if i == m.selected {
			s.WriteString(m.theme.active().Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	if m.notice != "" {
		s.WriteString("\n" + m.theme.alert().Render(m.notice) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause R:Reset C:Clear T:Theme Q:Quit\nTab:Param ↑↓:Tune +/-:Count Click:Obstacle"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// Flock exposes the model's flock for inspection.
func (m Model) Flock() *flock.Flock  { return m.flock }
func (m Model) Params() flock.Params { return m.params }
func (m Model) Count() int           { return m.count }
func (m Model) Running() bool        { return m.running }

// RunLive starts the terminal host for cfg.
func RunLive(cfg *config.Config) error {
	_, err := tea.NewProgram(NewModel(cfg), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

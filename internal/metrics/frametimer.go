package metrics

import (
	"fmt"
	"time"
)

const DefaultFrameWindow = 120

// FrameTimer tracks frame durations over a sliding window for the perf
// readout of the interactive hosts.
type FrameTimer struct {
	window   []time.Duration
	next     int
	filled   int
	entities int
	frames   int
}

func NewFrameTimer(window int) *FrameTimer {
	if window < 1 {
		window = DefaultFrameWindow
	}
	return &FrameTimer{window: make([]time.Duration, window)}
}

// Tick records one frame of duration dt with the given entity count.
// Non-positive durations are ignored.
func (ft *FrameTimer) Tick(dt time.Duration, entities int) {
	ft.entities = entities
	if dt <= 0 {
		return
	}
	ft.window[ft.next] = dt
	ft.next = (ft.next + 1) % len(ft.window)
	if ft.filled < len(ft.window) {
		ft.filled++
	}
	ft.frames++
}

func (ft *FrameTimer) FrameTime() time.Duration {
	if ft.filled == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range ft.window[:ft.filled] {
		sum += d
	}
	return sum / time.Duration(ft.filled)
}

func (ft *FrameTimer) WorstFrameTime() time.Duration {
	var worst time.Duration
	for _, d := range ft.window[:ft.filled] {
		worst = max(worst, d)
	}
	return worst
}

func (ft *FrameTimer) FPS() float64 {
	return perSecond(ft.FrameTime())
}

func (ft *FrameTimer) WorstFPS() float64 {
	return perSecond(ft.WorstFrameTime())
}

func (ft *FrameTimer) Entities() int { return ft.entities }
func (ft *FrameTimer) Frames() int   { return ft.frames }

func (ft *FrameTimer) Reset() {
	clear(ft.window)
	ft.next, ft.filled, ft.frames = 0, 0, 0
}

// Lines renders the readout in a fixed order.
func (ft *FrameTimer) Lines() []string {
	return []string{
		fmt.Sprintf("FPS: %.0f", ft.FPS()),
		fmt.Sprintf("Worst FPS: %.0f", ft.WorstFPS()),
		fmt.Sprintf("Frame Time: %.2fms", ms(ft.FrameTime())),
		fmt.Sprintf("Worst Frame Time: %.2fms", ms(ft.WorstFrameTime())),
		fmt.Sprintf("Entities: %d", ft.entities),
	}
}

func perSecond(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(time.Second) / float64(d)
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

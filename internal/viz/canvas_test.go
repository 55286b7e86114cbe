package viz

import (
	"strings"
	"testing"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if c.Grid[0][0] != blank|0x01 {
		t.Errorf("expected dot 1 in first cell, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != blank|0x80 {
		t.Errorf("expected dot 8 in second cell, got %U", c.Grid[0][1])
	}
	if !c.IsSet(3, 3) || c.IsSet(1, 1) {
		t.Error("IsSet disagrees with Set")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		dots           int
	}{
		{"horizontal", 0, 0, 7, 0, 8},
		{"vertical", 2, 7, 2, 0, 8},
		{"diagonal", 0, 0, 5, 5, 6},
		{"point", 3, 3, 3, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(4, 2)
			c.DrawLine(tt.x0, tt.y0, tt.x1, tt.y1)
			if got := countDots(c); got != tt.dots {
				t.Errorf("expected %d dots, got %d", tt.dots, got)
			}
			if !c.IsSet(tt.x0, tt.y0) || !c.IsSet(tt.x1, tt.y1) {
				t.Error("line must include both endpoints")
			}
		})
	}
}

func TestCanvasClearAndString(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Disc(2, 2, 1)
	if countDots(c) != 5 {
		t.Errorf("expected 5 dots in a radius-1 disc, got %d", countDots(c))
	}

	c.Clear()
	if countDots(c) != 0 {
		t.Error("expected empty canvas after Clear")
	}

	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 || len([]rune(lines[0])) != 3 {
		t.Errorf("unexpected layout %q", c.String())
	}
}

func countDots(c *Canvas) int {
	n := 0
	for y := 0; y < c.DotsHigh(); y++ {
		for x := 0; x < c.DotsWide(); x++ {
			if c.IsSet(x, y) {
				n++
			}
		}
	}
	return n
}

func TestParamBar(t *testing.T) {
	tests := []struct {
		v, lo, hi float64
		want      string
	}{
		{0, 0, 10, "[----]"},
		{5, 0, 10, "[==--]"},
		{10, 0, 10, "[====]"},
		{20, 0, 10, "[====]"},
	}
	for _, tt := range tests {
		if got := ParamBar(tt.v, tt.lo, tt.hi, 4); got != tt.want {
			t.Errorf("ParamBar(%g) = %s, want %s", tt.v, got, tt.want)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 4); got != "▁▃▅█" {
		t.Errorf("expected tail of series, got %q", got)
	}
	if got := Sparkline(nil, 3); got != "───" {
		t.Errorf("expected flat line, got %q", got)
	}
}

func TestNextTheme(t *testing.T) {
	seen := map[string]bool{}
	th := ThemeOcean
	for range Themes {
		seen[th.Name] = true
		th = NextTheme(th.Name)
	}
	if len(seen) != len(Themes) || th.Name != ThemeOcean.Name {
		t.Errorf("themes do not cycle: %v", seen)
	}
	if GetTheme("missing").Name != "ocean" {
		t.Error("expected ocean fallback")
	}
}

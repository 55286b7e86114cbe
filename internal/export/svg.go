package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/shoal/internal/dynamo"
	"github.com/san-kum/shoal/internal/flock"
)

// FishSize is the half-length of a fish triangle in world units.
const FishSize = 6.0

// FishTriangle returns the nose and two tail corners of an agent heading at
// orientation radians, in world coordinates.
func FishTriangle(pos dynamo.Vec2, orientation, size float64) [3]dynamo.Vec2 {
	dir := dynamo.Vec2{X: math.Cos(orientation), Y: math.Sin(orientation)}
	side := dynamo.Vec2{X: -dir.Y, Y: dir.X}
	tail := pos.Sub(dir.Scale(size))
	return [3]dynamo.Vec2{
		pos.Add(dir.Scale(size * 1.5)),
		tail.Add(side.Scale(size * 0.6)),
		tail.Sub(side.Scale(size * 0.6)),
	}
}

// ScreenTriangle maps FishTriangle into screen space for bounds b at scale
// world units per pixel. Vertices come back counter-clockwise as seen on a
// y-down screen.
func ScreenTriangle(b dynamo.Bounds, pos dynamo.Vec2, orientation, size, scale float64) [3]dynamo.Vec2 {
	tri := FishTriangle(pos, orientation, size)
	return [3]dynamo.Vec2{
		flock.WorldToPointer(b, tri[0], scale),
		flock.WorldToPointer(b, tri[1], scale),
		flock.WorldToPointer(b, tri[2], scale),
	}
}

// FlockToSVG renders agents as heading-oriented triangles and obstacles as
// circles. World y grows up, SVG y grows down.
func FlockToSVG(f *flock.Flock, width, height int) string {
	b := f.Bounds()
	sx := float64(width) / b.Width()
	sy := float64(height) / b.Height()
	toSVG := func(p dynamo.Vec2) (float64, float64) {
		return (p.X - b.A.X) * sx, (b.B.Y - p.Y) * sy
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#06141f"/>
`, width, height, width, height))

	sb.WriteString(`<g fill="#ff5f57">
`)
	for _, o := range f.Obstacles() {
		cx, cy := toSVG(o.Position)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, 4*sx))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(`<g fill="#7fdbff">
`)
	for _, a := range f.Agents() {
		tri := FishTriangle(a.Position, a.Orientation, FishSize)
		sb.WriteString(`<polygon points="`)
		for i, p := range tri {
			x, y := toSVG(p)
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		}
		sb.WriteString("\"/>\n")
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesToSVG plots a metric series against time as a polyline.
func SeriesToSVG(times, values []float64, width, height int, strokeColor string) string {
	n := min(len(times), len(values))
	if n < 2 {
		return ""
	}

	minX, maxX := times[0], times[n-1]
	minY, maxY := values[0], values[0]
	for _, v := range values[:n] {
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i := 0; i < n; i++ {
		x := (times[i] - minX) / rangeX * float64(width)
		y := float64(height) - (values[i]-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

package particle

import (
	"math"

	"github.com/lixenwraith/runebeat/core"
)

// TrailLayer is an accumulating raster that particles and rings are stamped onto
// Content persists across frames until Reset; an optional fade blends it toward the background
type TrailLayer struct {
	buf          *core.Buffer
	cellW, cellH float64
	fade         float64
}

// NewTrailLayer creates a cols x rows layer where each cell covers cellW x cellH world pixels
func NewTrailLayer(cols, rows int, cellW, cellH float64, background core.RGB, fade float64) *TrailLayer {
	return &TrailLayer{
		buf:   core.NewBuffer(cols, rows, background),
		cellW: cellW,
		cellH: cellH,
		fade:  fade,
	}
}

// Cell maps a world position to its cell
func (t *TrailLayer) Cell(x, y float64) (int, int) {
	return int(math.Floor(x / t.cellW)), int(math.Floor(y / t.cellH))
}

// Stamp blends c into the cell under world position (x, y)
func (t *TrailLayer) Stamp(x, y float64, c core.RGB, alpha float64) {
	cx, cy := t.Cell(x, y)
	t.buf.Blend(cx, cy, c, alpha)
}

// StampCircle blends c along a circle outline of world radius r
func (t *TrailLayer) StampCircle(x, y, r float64, c core.RGB, alpha float64) {
	for _, p := range CircleCells(x, y, r, t.cellW, t.cellH) {
		t.buf.Blend(p.X, p.Y, c, alpha)
	}
}

// Fade blends the whole layer toward the background by the configured rate
func (t *TrailLayer) Fade() {
	t.buf.BlendAll(t.buf.Fill(), t.fade)
}

// Buffer exposes the raster for rendering
func (t *TrailLayer) Buffer() *core.Buffer {
	return t.buf
}

// Resize changes the layer size, preserving overlapping content
func (t *TrailLayer) Resize(cols, rows int) {
	t.buf.Resize(cols, rows)
}

// Reset clears the layer to its background
func (t *TrailLayer) Reset() {
	t.buf.Clear()
}

// CircleCells returns the distinct cells on a circle outline of world radius r centered at (x, y)
func CircleCells(x, y, r, cellW, cellH float64) []core.Point {
	if r <= 0 {
		return []core.Point{{X: int(math.Floor(x / cellW)), Y: int(math.Floor(y / cellH))}}
	}

	// Two samples per cell of circumference
	steps := int(2*math.Pi*r/math.Min(cellW, cellH)) * 2
	if steps < 8 {
		steps = 8
	}

	seen := make(map[core.Point]struct{}, steps)
	points := make([]core.Point, 0, steps)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		p := core.Point{
			X: int(math.Floor((x + r*math.Cos(a)) / cellW)),
			Y: int(math.Floor((y + r*math.Sin(a)) / cellH)),
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		points = append(points, p)
	}
	return points
}

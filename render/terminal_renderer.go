// Package render draws engine frames onto a tcell screen.
//
// The world is measured in pixels; one terminal cell covers
// constants.CellWidth x constants.CellHeight of them.
package render

import (
	"math"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/runebeat/constants"
	"github.com/lixenwraith/runebeat/core"
	"github.com/lixenwraith/runebeat/engine"
	"github.com/lixenwraith/runebeat/particle"
)

// TerminalRenderer handles all terminal rendering
type TerminalRenderer struct {
	screen tcell.Screen
	width  int
	height int
	// bg holds the per-cell background of the current frame
	bg *core.Buffer
}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	w, h := screen.Size()
	return &TerminalRenderer{
		screen: screen,
		width:  w,
		height: h,
		bg:     core.NewBuffer(w, h, core.RGBBackground),
	}
}

// Render draws one frame and shows it
func (r *TerminalRenderer) Render(f *engine.Frame) {
	r.syncSize()
	r.drawBackground(f)
	r.drawRings(f)
	r.drawParticles(f)
	r.drawLanes(f)
	r.drawHUD(f)
	r.screen.Show()
}

func (r *TerminalRenderer) syncSize() {
	w, h := r.screen.Size()
	if w != r.width || h != r.height {
		r.width, r.height = w, h
		r.bg.Resize(w, h)
	}
}

// drawBackground paints the trail layer, or the flat background without one
func (r *TerminalRenderer) drawBackground(f *engine.Frame) {
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			c := core.RGBBackground
			if f.Trail != nil {
				if tc, ok := f.Trail.Get(x, y); ok {
					c = tc
				}
			}
			r.bg.Set(x, y, c)
			r.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(ToTcell(c)))
		}
	}
}

// drawRings outlines each ring as cells, fading with its alpha
func (r *TerminalRenderer) drawRings(f *engine.Frame) {
	for _, ring := range f.Rings {
		alpha := ring.Alpha / 100
		for _, p := range particle.CircleCells(ring.X, ring.Y, ring.Radius, constants.CellWidth, constants.CellHeight) {
			bg, ok := r.bg.Get(p.X, p.Y)
			if !ok {
				continue
			}
			fg := bg.Blend(RgbRing, alpha)
			r.screen.SetContent(p.X, p.Y, constants.GlyphRing, nil,
				tcell.StyleDefault.Foreground(ToTcell(fg)).Background(ToTcell(bg)))
		}
	}
}

// drawParticles plots each particle in its hue, dimming with remaining life
func (r *TerminalRenderer) drawParticles(f *engine.Frame) {
	for _, p := range f.Particles {
		x, y := CellOf(p.X, p.Y)
		bg, ok := r.bg.Get(x, y)
		if !ok {
			continue
		}
		fg := core.HSB(p.Hue, 100, p.Life)
		glyph := constants.GlyphParticleSmall
		if p.Size >= (constants.ParticleMinSize+constants.ParticleMaxSize)/2 {
			glyph = constants.GlyphParticleLarge
		}
		r.screen.SetContent(x, y, glyph, nil,
			tcell.StyleDefault.Foreground(ToTcell(fg)).Background(ToTcell(bg)))
	}
}

// drawLanes writes the D F J K row, lit while a lane flashes
func (r *TerminalRenderer) drawLanes(f *engine.Frame) {
	_, y := CellOf(0, f.Height-constants.LaneBottomOffset)
	for _, lane := range f.Lanes {
		x, _ := CellOf(lane.X, 0)
		hue := core.HSB(lane.Hue, constants.LaneSaturation, constants.LaneBrightness)
		style := tcell.StyleDefault.Foreground(ToTcell(hue)).Background(RgbBackground).Bold(true)
		if lane.Flash {
			style = tcell.StyleDefault.Foreground(RgbBackground).Background(ToTcell(hue)).Bold(true)
		}
		r.drawText(x-1, y, "["+lane.Key.String()+"]", style)
	}
}

// drawHUD writes the stats line on top and the help line at the bottom
func (r *TerminalRenderer) drawHUD(f *engine.Frame) {
	hud := f.HUD
	label := tcell.StyleDefault.Foreground(RgbHUDLabel).Background(RgbBackground)
	value := tcell.StyleDefault.Foreground(RgbStatusBar).Background(RgbBackground).Bold(true)

	x := constants.HUDLeftMargin
	x = r.drawPair(x, constants.LabelAccuracy, hud.Accuracy, label, value)
	x = r.drawPair(x, constants.LabelRank, hud.Rank, label, value.Foreground(rankColor(hud.Rank)))
	x = r.drawPair(x, constants.LabelBPM, hud.BPM, label, value)
	x = r.drawPair(x, constants.LabelEnergy, hud.Energy, label, value)
	x = r.drawPair(x, constants.LabelScore, strconv.Itoa(hud.Score), label, value)
	if hud.LastHit != "" {
		hitStyle := value.Foreground(RgbOffBeat)
		if hud.LastHit == constants.HitLabelOnBeat {
			hitStyle = value.Foreground(RgbOnBeat)
		}
		x = r.drawText(x, 0, hud.LastHit, hitStyle) + constants.HUDFieldGap
	}

	status := hud.Status
	if hud.Track != "" {
		status += "  " + hud.Track
	}
	r.drawText(x, 0, status, label)

	if r.height > 1 {
		r.drawText(constants.HUDLeftMargin, r.height-1, constants.HelpText, tcell.StyleDefault.Foreground(RgbHelp).Background(RgbBackground))
	}
}

func (r *TerminalRenderer) drawPair(x int, name, val string, label, value tcell.Style) int {
	x = r.drawText(x, 0, name, label)
	return r.drawText(x, 0, val, value) + constants.HUDFieldGap
}

// drawText writes s from (x, y), clipped to the screen, and returns the next column
func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x >= 0 && x+w <= r.width && y >= 0 && y < r.height {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x += w
	}
	return x
}

// CellOf maps a world pixel position to its terminal cell
func CellOf(x, y float64) (int, int) {
	return int(math.Floor(x / constants.CellWidth)), int(math.Floor(y / constants.CellHeight))
}

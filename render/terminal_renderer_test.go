package render

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/runebeat/beat"
	"github.com/lixenwraith/runebeat/constants"
	"github.com/lixenwraith/runebeat/core"
	"github.com/lixenwraith/runebeat/engine"
	"github.com/lixenwraith/runebeat/judge"
	"github.com/lixenwraith/runebeat/particle"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func row(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		runes := cells[y*w+x].Runes
		if len(runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(runes[0])
	}
	return b.String()
}

func cellAt(screen tcell.SimulationScreen, x, y int) (rune, tcell.Style) {
	cells, w, _ := screen.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return ' ', c.Style
	}
	return c.Runes[0], c.Style
}

func baseFrame() *engine.Frame {
	f := &engine.Frame{
		Now:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Width:  640,
		Height: 384,
		HUD: engine.Display{
			Accuracy: "87.5%",
			Rank:     "S",
			BPM:      "128",
			Energy:   "0.42",
			Score:    710,
			Status:   engine.StatusPlaying,
			Track:    "song.mp3",
		},
	}
	for i, key := range judge.Keys {
		f.Lanes[i] = engine.Lane{Key: key, Hue: key.Hue(), X: 320 + (float64(i)-1.5)*60}
	}
	return f
}

func TestRenderHUD(t *testing.T) {
	screen := newScreen(t, 80, 24)
	r := NewTerminalRenderer(screen)

	r.Render(baseFrame())

	top := row(screen, 0)
	for _, want := range []string{"ACC 87.5%", "RANK S", "BPM 128", "ENERGY 0.42", "SCORE 710", "Playing", "song.mp3"} {
		if !strings.Contains(top, want) {
			t.Errorf("HUD row %q missing %q", top, want)
		}
	}
	if bottom := row(screen, 23); !strings.Contains(bottom, "SPACE play/stop") {
		t.Errorf("help row %q missing controls", bottom)
	}
}

func TestRenderLanes(t *testing.T) {
	screen := newScreen(t, 80, 24)
	r := NewTerminalRenderer(screen)
	f := baseFrame()
	f.Lanes[1].Flash = true

	r.Render(f)

	// Lane row sits at world y 334 -> cell row 20
	lanes := row(screen, 20)
	for _, want := range []string{"[D]", "[F]", "[J]", "[K]"} {
		if !strings.Contains(lanes, want) {
			t.Errorf("lane row %q missing %s", lanes, want)
		}
	}

	_, fStyle := cellAt(screen, 36, 20)
	_, dStyle := cellAt(screen, 28, 20)
	_, fBg, _ := fStyle.Decompose()
	_, dBg, _ := dStyle.Decompose()
	if fBg == dBg {
		t.Error("flashing lane drawn with the idle background")
	}
	if dBg != RgbBackground {
		t.Errorf("idle lane background = %v, want %v", dBg, RgbBackground)
	}
}

func TestRenderParticlesAndRings(t *testing.T) {
	screen := newScreen(t, 80, 24)
	r := NewTerminalRenderer(screen)
	f := baseFrame()
	f.Particles = []particle.Particle{
		{X: 100, Y: 100, Life: 100, Hue: 0, Size: 8},
		{X: 200, Y: 100, Life: 50, Hue: 120, Size: 3},
		{X: -50, Y: 100, Life: 100, Size: 8},
	}
	f.Rings = []beat.RingFrame{{X: 400, Y: 200, Alpha: 100, Radius: 40}}

	r.Render(f)

	ch, style := cellAt(screen, 12, 6)
	if ch != constants.GlyphParticleLarge {
		t.Errorf("large particle glyph = %q, want %q", ch, constants.GlyphParticleLarge)
	}
	if fg, _, _ := style.Decompose(); fg != ToTcell(core.RGB{R: 255, G: 0, B: 0}) {
		t.Errorf("particle color = %v, want red", fg)
	}
	if ch, _ := cellAt(screen, 25, 6); ch != constants.GlyphParticleSmall {
		t.Errorf("small particle glyph = %q, want %q", ch, constants.GlyphParticleSmall)
	}

	// Ring centered at cell (50, 12) with a 5 cell horizontal radius
	if ch, _ := cellAt(screen, 55, 12); ch != constants.GlyphRing {
		t.Errorf("ring edge glyph = %q, want %q", ch, constants.GlyphRing)
	}
	if ch, _ := cellAt(screen, 50, 12); ch == constants.GlyphRing {
		t.Error("ring filled at its center")
	}
}

func TestRenderTrailBackground(t *testing.T) {
	screen := newScreen(t, 10, 5)
	r := NewTerminalRenderer(screen)
	f := baseFrame()
	trail := core.NewBuffer(10, 5, core.RGBBackground)
	trail.Set(3, 2, core.RGB{R: 200, G: 0, B: 0})
	f.Trail = trail

	r.Render(f)

	_, style := cellAt(screen, 3, 2)
	if _, bg, _ := style.Decompose(); bg != ToTcell(core.RGB{R: 200, G: 0, B: 0}) {
		t.Errorf("trail cell background = %v, want trail color", bg)
	}
}

func TestRenderFollowsResize(t *testing.T) {
	screen := newScreen(t, 40, 10)
	r := NewTerminalRenderer(screen)
	r.Render(baseFrame())

	screen.SetSize(60, 12)
	r.Render(baseFrame())

	if r.width != 60 || r.height != 12 || r.bg.Width() != 60 {
		t.Errorf("renderer size = %dx%d (bg %d), want 60x12", r.width, r.height, r.bg.Width())
	}
	if bottom := row(screen, 11); !strings.Contains(bottom, "SPACE") {
		t.Errorf("help row not moved to new bottom: %q", bottom)
	}
}

func TestCellOf(t *testing.T) {
	tests := []struct {
		x, y   float64
		cx, cy int
	}{
		{0, 0, 0, 0},
		{7.9, 15.9, 0, 0},
		{8, 16, 1, 1},
		{-0.5, -0.5, -1, -1},
	}
	for _, tt := range tests {
		cx, cy := CellOf(tt.x, tt.y)
		if cx != tt.cx || cy != tt.cy {
			t.Errorf("CellOf(%v, %v) = (%d, %d), want (%d, %d)", tt.x, tt.y, cx, cy, tt.cx, tt.cy)
		}
	}
}

func TestRenderStatusColumnStableAcrossHits(t *testing.T) {
	column := func(label string) int {
		screen := newScreen(t, 120, 24)
		f := baseFrame()
		f.HUD.LastHit = label
		NewTerminalRenderer(screen).Render(f)
		return strings.Index(row(screen, 0), engine.StatusPlaying)
	}

	on, off := column(constants.HitLabelOnBeat), column(constants.HitLabelOffBeat)
	if on < 0 || on != off {
		t.Errorf("status column = %d after an on-beat hit, %d after an off-beat hit", on, off)
	}
}

package constants

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

// TestGlyphsAreSingleCell verifies every drawn glyph occupies exactly one terminal cell
func TestGlyphsAreSingleCell(t *testing.T) {
	tests := []struct {
		name  string
		glyph rune
	}{
		{"large particle", GlyphParticleLarge},
		{"small particle", GlyphParticleSmall},
		{"ring", GlyphRing},
	}

	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := cond.RuneWidth(tt.glyph); w != 1 {
				t.Errorf("RuneWidth(%q) = %d, want 1", tt.glyph, w)
			}
		})
	}
}

// TestHUDFitsNarrowTerminal verifies the help line fits an 80 column terminal
func TestHUDFitsNarrowTerminal(t *testing.T) {
	if w := runewidth.StringWidth(HelpText) + HUDLeftMargin; w > 80 {
		t.Errorf("help text needs %d columns, want <= 80", w)
	}
}

// TestHitLabelsDiffer verifies the two hit labels are distinguishable
func TestHitLabelsDiffer(t *testing.T) {
	if HitLabelOnBeat == HitLabelOffBeat {
		t.Error("on-beat and off-beat labels must differ")
	}
	if runewidth.StringWidth(HitLabelOnBeat) != runewidth.StringWidth(HitLabelOffBeat) {
		t.Errorf("hit labels differ in width: %q vs %q", HitLabelOnBeat, HitLabelOffBeat)
	}
}

// TestLaneGeometry verifies the four lanes are evenly spaced around the center
func TestLaneGeometry(t *testing.T) {
	if LaneSpacing <= 0 {
		t.Fatalf("LaneSpacing = %v, want > 0", LaneSpacing)
	}
	if LaneBottomOffset <= CellHeight {
		t.Errorf("LaneBottomOffset = %v, want above the help row (> %v)", LaneBottomOffset, CellHeight)
	}
}

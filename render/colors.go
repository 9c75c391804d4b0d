package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/runebeat/core"
)

// Fixed UI colors
var (
	RgbBackground = ToTcell(core.RGBBackground)
	RgbStatusBar  = tcell.NewRGBColor(255, 255, 255) // White
	RgbHUDLabel   = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbHelp       = tcell.NewRGBColor(110, 110, 130) // Muted gray-blue
	RgbOnBeat     = tcell.NewRGBColor(80, 250, 123)  // Green
	RgbOffBeat    = tcell.NewRGBColor(255, 121, 98)  // Soft red
	RgbRing       = core.RGBWhite
)

// ToTcell converts an RGB value to a tcell true color
func ToTcell(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// rankColor grades the rank letter from red to gold
func rankColor(rank string) tcell.Color {
	switch rank {
	case "SSS", "SS":
		return tcell.NewRGBColor(255, 215, 0)
	case "S", "A":
		return RgbOnBeat
	case "B", "C":
		return tcell.NewRGBColor(139, 233, 253)
	case "D", "E":
		return RgbOffBeat
	default:
		return RgbHUDLabel
	}
}

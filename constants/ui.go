package constants

// HUD text
const (
	// HelpText is shown on the last terminal row
	HelpText = "SPACE play/stop  D F J K hit  R reset  N next  ESC quit"

	// HitLabelOnBeat and HitLabelOffBeat describe the last judged press
	HitLabelOnBeat  = "ON-BEAT"
	HitLabelOffBeat = "OFFBEAT"

	// HUDFieldGap is the column gap between HUD fields
	HUDFieldGap = 2

	// HUDLeftMargin is the first HUD column
	HUDLeftMargin = 1
)

// HUD field labels, each followed by its value
const (
	LabelAccuracy = "ACC "
	LabelRank     = "RANK "
	LabelBPM      = "BPM "
	LabelEnergy   = "ENERGY "
	LabelScore    = "SCORE "
)

// Glyphs
const (
	// GlyphParticleLarge is drawn for particles at or above the mid size
	GlyphParticleLarge = '●'
	GlyphParticleSmall = '•'
	GlyphRing          = '·'
)

// Lane key styling (HSB saturation and brightness around the lane hue)
const (
	LaneSaturation = 80
	LaneBrightness = 90
)

package constants

import "time"

// Game Loop Timing Constants
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	// Particle physics constants are per frame, so this also sets simulation speed
	FrameUpdateInterval = 16 * time.Millisecond

	// KeyFlashDuration is how long a lane key stays highlighted after a press
	KeyFlashDuration = 100 * time.Millisecond

	// EventChannelSize buffers terminal events between frames
	EventChannelSize = 100
)

// World geometry: one terminal cell covers CellWidth x CellHeight world pixels
// Particle speeds and ring radii are expressed in world pixels
const (
	CellWidth  = 8.0
	CellHeight = 16.0

	// LaneSpacing is the horizontal distance between lane centers
	LaneSpacing = 60.0

	// LaneBottomOffset is the lane row distance from the bottom edge
	LaneBottomOffset = 50.0
)

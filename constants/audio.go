package constants

import "time"

// Playback
const (
	// SpeakerBufferDuration is the device buffer handed to speaker.Init
	SpeakerBufferDuration = 50 * time.Millisecond

	// SilentOutputInterval is how often the silent output pulls samples
	SilentOutputInterval = 10 * time.Millisecond

	// ResampleQuality is passed to beep.Resample when a track's rate differs
	ResampleQuality = 4

	// DefaultAnalysisWindow is the number of samples per feature reading
	DefaultAnalysisWindow = 512
)

// On-beat Bell Timing
const (
	BellSoundDuration           = 250 * time.Millisecond
	BellSoundAttack             = 5 * time.Millisecond
	BellSoundFundamentalRelease = 220 * time.Millisecond
	BellSoundOvertoneRelease    = 90 * time.Millisecond
)

// Off-beat Tick Timing
const (
	TickSoundDuration = 60 * time.Millisecond
	TickSoundAttack   = 3 * time.Millisecond
	TickSoundRelease  = 30 * time.Millisecond
)

// Track Loaded Chime Timing
const (
	ChimeNote1Duration = 80 * time.Millisecond
	ChimeNote2Duration = 200 * time.Millisecond
	ChimeAttack        = 5 * time.Millisecond
	ChimeNote1Release  = 40 * time.Millisecond
	ChimeNote2Release  = 150 * time.Millisecond
)

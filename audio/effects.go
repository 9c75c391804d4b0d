package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/runebeat/constants"
)

// Wave selects a beep generator shape for feedback tones
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
	WaveSaw
)

// Tone returns a bounded tone of the given shape. Frequencies the generators
// reject (at or above Nyquist) yield silence of the same length.
func Tone(wave Wave, freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	var (
		s   beep.Streamer
		err error
	)
	switch wave {
	case WaveSquare:
		s, err = generators.SquareTone(rate, freq)
	case WaveTriangle:
		s, err = generators.TriangleTone(rate, freq)
	case WaveSaw:
		s, err = generators.SawtoothTone(rate, freq)
	default:
		s, err = generators.SineTone(rate, freq)
	}
	n := rate.N(duration)
	if err != nil {
		return beep.Silence(n)
	}
	return beep.Take(n, s)
}

// envelope ramps a bounded stream in over attack and out over release
type envelope struct {
	streamer beep.Streamer
	pos      int
	total    int
	attack   int
	release  int
}

// Shape applies a linear attack/release envelope over total duration
func Shape(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		total:    rate.N(duration),
		attack:   rate.N(attack),
		release:  rate.N(release),
	}
}

func (e *envelope) gain(pos int) float64 {
	g := 1.0
	if e.attack > 0 && pos < e.attack {
		g = float64(pos) / float64(e.attack)
	}
	if left := e.total - pos; e.release > 0 && left < e.release {
		g = min(g, float64(left)/float64(e.release))
	}
	return max(g, 0)
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	if e.pos >= e.total {
		return 0, false
	}
	if left := e.total - e.pos; len(samples) > left {
		samples = samples[:left]
	}
	n, ok := e.streamer.Stream(samples)
	for i := range n {
		g := e.gain(e.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or less is silent since Log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// SoundType identifies a feedback sound
type SoundType int

const (
	SoundOnBeat SoundType = iota
	SoundOffBeat
	SoundLoaded
)

// CreateBellSound generates a short ding for an on-beat press
func CreateBellSound(rate beep.SampleRate, vol float64) beep.Streamer {
	// A5 with an octave overtone that dies first
	fund := Shape(Tone(WaveSine, 880.0, constants.BellSoundDuration, rate),
		constants.BellSoundDuration, constants.BellSoundAttack, constants.BellSoundFundamentalRelease, rate)
	over := Shape(Tone(WaveSine, 1760.0, constants.BellSoundDuration, rate),
		constants.BellSoundDuration, constants.BellSoundAttack, constants.BellSoundOvertoneRelease, rate)

	mixed := beep.Mix(
		newVolume(fund, 0.7),
		newVolume(over, 0.3),
	)
	return newVolume(mixed, vol)
}

// CreateTickSound generates a dull click for an off-beat press
func CreateTickSound(rate beep.SampleRate, vol float64) beep.Streamer {
	click := Shape(Tone(WaveSaw, 180.0, constants.TickSoundDuration, rate),
		constants.TickSoundDuration, constants.TickSoundAttack, constants.TickSoundRelease, rate)
	return newVolume(click, vol*0.5)
}

// CreateChimeSound generates a rising two-note chime when a track is ready
func CreateChimeSound(rate beep.SampleRate, vol float64) beep.Streamer {
	// B5 then E6
	first := Shape(Tone(WaveTriangle, 987.77, constants.ChimeNote1Duration, rate),
		constants.ChimeNote1Duration, constants.ChimeAttack, constants.ChimeNote1Release, rate)
	second := Shape(Tone(WaveTriangle, 1318.51, constants.ChimeNote2Duration, rate),
		constants.ChimeNote2Duration, constants.ChimeAttack, constants.ChimeNote2Release, rate)
	return newVolume(beep.Seq(first, second), vol*0.6)
}

// GetSoundEffect returns the streamer for soundType, nil when unknown
func GetSoundEffect(soundType SoundType, rate beep.SampleRate, vol float64) beep.Streamer {
	switch soundType {
	case SoundOnBeat:
		return CreateBellSound(rate, vol)
	case SoundOffBeat:
		return CreateTickSound(rate, vol)
	case SoundLoaded:
		return CreateChimeSound(rate, vol)
	default:
		return nil
	}
}

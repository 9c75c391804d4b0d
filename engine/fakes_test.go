package engine

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/runebeat/beat"
	"github.com/lixenwraith/runebeat/particle"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeTransport struct {
	loaded, playing bool
	starts, stops   int
	disposed        bool
}

func (t *fakeTransport) Start()        { t.playing = true; t.starts++ }
func (t *fakeTransport) Stop()         { t.playing = false; t.stops++ }
func (t *fakeTransport) Dispose()      { t.disposed = true; t.loaded = false; t.playing = false }
func (t *fakeTransport) Loaded() bool  { return t.loaded }
func (t *fakeTransport) Playing() bool { return t.playing }

// fakeSource replays values, then reports nothing
type fakeSource struct {
	values []float64
}

func (s *fakeSource) Sample() (float64, bool) {
	if len(s.values) == 0 {
		return 0, false
	}
	v := s.values[0]
	s.values = s.values[1:]
	return v, true
}

type fakeSounder struct {
	onBeat, offBeat int
}

func (s *fakeSounder) PlayHit(onBeat bool) {
	if onBeat {
		s.onBeat++
		return
	}
	s.offBeat++
}

func testOptions(src FeatureSource) SessionOptions {
	return SessionOptions{
		ID:          "test",
		Detector:    beat.DefaultDetectorConfig(beat.MetricEnergy),
		TempoWindow: beat.DefaultTempoWindow,
		JudgeWindow: 200 * time.Millisecond,
		RingTTL:     beat.DefaultRingTTL,
		Particles:   particle.Options{Trail: true},
		Width:       800,
		Height:      600,
		Rand:        rand.New(rand.NewSource(7)),
		Source:      src,
	}
}

// loadedSession returns a session with a playing fake transport installed
func loadedSession(src FeatureSource) (*Session, *fakeTransport) {
	s := NewSession(testOptions(src))
	tr := &fakeTransport{loaded: true}
	s.BeginLoad("song.wav")
	s.FinishLoad(tr, "song.wav", nil)
	s.TogglePlay()
	return s, tr
}

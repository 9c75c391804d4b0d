package engine

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/runebeat/beat"
	"github.com/lixenwraith/runebeat/config"
	"github.com/lixenwraith/runebeat/constants"
	"github.com/lixenwraith/runebeat/core"
	"github.com/lixenwraith/runebeat/judge"
	"github.com/lixenwraith/runebeat/logger"
	"github.com/lixenwraith/runebeat/metrics"
	"github.com/lixenwraith/runebeat/particle"
)

// Status messages shown on the HUD
const (
	StatusIdle     = "Press N to load a track"
	StatusLoading  = "Loading..."
	StatusReady    = "Ready!"
	StatusPlaying  = "Playing"
	StatusPaused   = "Paused"
	StatusFinished = "Finished"
	StatusReset    = "Reset"
	StatusNoTrack  = "No track loaded"
)

// SessionOptions holds everything a Session is built from
type SessionOptions struct {
	ID          string
	Detector    beat.DetectorConfig
	TempoWindow int
	JudgeWindow time.Duration
	RingTTL     time.Duration
	Particles   particle.Options
	Geyser      bool

	// Viewport in world pixels
	Width  float64
	Height float64

	Rand    *rand.Rand
	Source  FeatureSource
	Sounds  HitSounder
	Metrics *metrics.Manager
	Logger  logger.Logger
}

// OptionsFromConfig maps the process configuration onto session options
func OptionsFromConfig(cfg *config.Config) SessionOptions {
	return SessionOptions{
		Detector:    cfg.BeatDetector(),
		TempoWindow: cfg.Tempo.Window,
		JudgeWindow: cfg.JudgeWindow(),
		RingTTL:     beat.DefaultRingTTL,
		Particles: particle.Options{
			Bounce:          cfg.Particles.Bounce,
			Trail:           cfg.Particles.Trail,
			TrailAlpha:      cfg.Particles.TrailAlpha,
			TrailFade:       cfg.Particles.TrailFade,
			TrailBackground: core.RGBBackground,
		},
		Geyser: cfg.Particles.Feedback == config.FeedbackGeyser,
	}
}

// Session is the whole mutable game state. It is owned by one goroutine;
// nothing in it is safe for concurrent use.
type Session struct {
	id        string
	detector  *beat.Detector
	tempo     *beat.Tempo
	judge     *judge.Judge
	ring      *beat.Ring
	particles *particle.System
	geyser    bool

	transport Transport
	source    FeatureSource
	sounds    HitSounder
	metrics   *metrics.Manager
	log       logger.Logger

	loading bool
	energy  float64
	status  string
	track   string
	flashes [len(judge.Keys)]time.Time
	lastHit judge.HitResult
	hasHit  bool
}

// NewSession builds a session; feature flags are fixed from here on
func NewSession(opts SessionOptions) *Session {
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Named("session")
	}
	return &Session{
		id:        opts.ID,
		detector:  beat.NewDetector(opts.Detector),
		tempo:     beat.NewTempo(opts.TempoWindow),
		judge:     judge.NewJudge(opts.JudgeWindow),
		ring:      beat.NewRing(opts.RingTTL),
		particles: particle.NewSystem(opts.Width, opts.Height, opts.Particles, opts.Rand),
		geyser:    opts.Geyser,
		source:    opts.Source,
		sounds:    opts.Sounds,
		metrics:   opts.Metrics,
		log:       opts.Logger.With(logger.String("session", opts.ID)),
		status:    StatusIdle,
	}
}

// ID returns the session identifier used in logs
func (s *Session) ID() string { return s.id }

// Playing reports whether the transport is advancing
func (s *Session) Playing() bool {
	return s.transport != nil && s.transport.Playing()
}

// Loading reports whether a track decode is in flight
func (s *Session) Loading() bool { return s.loading }

// Tick advances one frame: feature sampling and beat detection while
// playing, then ring expiry, particle physics and trail stamping
func (s *Session) Tick(now time.Time) {
	if s.Playing() && !s.loading && s.source != nil {
		if energy, ok := s.source.Sample(); ok {
			s.energy = energy
			if ev, fired := s.detector.OnSample(energy, now); fired {
				s.onBeat(ev)
			}
		}
	}

	s.ring.Prune(now)
	s.particles.Tick()
	s.particles.StampTrail()
	s.stampRings(now)
}

// stampRings paints the visible rings onto the trail layer, fading with ring alpha
func (s *Session) stampRings(now time.Time) {
	trail := s.particles.Trail()
	if trail == nil {
		return
	}
	for _, r := range s.ring.Visible(now) {
		trail.StampCircle(r.X, r.Y, r.Radius, core.RGBWhite, constants.RingTrailAlpha*r.Alpha/beat.RingAlphaStart)
	}
}

func (s *Session) onBeat(ev beat.Event) {
	s.tempo.OnBeat(ev.Time)
	s.particles.BeatBurst(constants.BeatBurstHue)
	// Ring and burst land at independent points
	x, y := s.particles.RandomPoint()
	s.ring.OnBeat(ev.Time, x, y)
	s.metrics.RecordBeat()
	s.log.Debug(context.Background(), "beat", logger.Float64("energy", s.energy))
}

// KeyPress judges a rune against the latest beat. Presses are ignored
// while stopped, loading or without a track, and for keys outside D/F/J/K.
func (s *Session) KeyPress(r rune, now time.Time) (judge.HitResult, bool) {
	key, ok := judge.ParseKey(r)
	if !ok || s.loading || s.transport == nil || !s.transport.Loaded() || !s.transport.Playing() {
		return judge.HitResult{}, false
	}

	res := s.judge.Press(key, now, s.detector.LastBeat())

	x, y := s.LanePosition(key)
	if s.geyser {
		s.particles.Geyser(x, y, key.Hue())
	} else {
		s.particles.Burst(x, y, key.Hue())
	}
	s.flashes[key.Lane()] = now.Add(constants.KeyFlashDuration)
	s.lastHit = res
	s.hasHit = true

	s.metrics.RecordHit(res.OnBeat, res.Points, res.Accuracy)
	if s.sounds != nil {
		s.sounds.PlayHit(res.OnBeat)
	}
	return res, true
}

// LanePosition returns the world position particles spawn from for key
func (s *Session) LanePosition(key judge.Key) (float64, float64) {
	w, h := s.particles.Bounds()
	x := w/2 + (float64(key.Lane())-1.5)*constants.LaneSpacing
	return x, h - constants.LaneBottomOffset
}

// Flashing reports whether key's lane is still lit at now
func (s *Session) Flashing(key judge.Key, now time.Time) bool {
	lane := key.Lane()
	if lane < 0 {
		return false
	}
	return now.Before(s.flashes[lane])
}

// TogglePlay starts a stopped track or stops a playing one
func (s *Session) TogglePlay() {
	if s.loading {
		return
	}
	if s.transport == nil || !s.transport.Loaded() {
		s.status = StatusNoTrack
		return
	}
	if s.transport.Playing() {
		s.transport.Stop()
		s.status = StatusPaused
		return
	}
	s.transport.Start()
	s.status = StatusPlaying
}

// Reset stops playback and clears score, beats, particles and trail
func (s *Session) Reset() {
	if s.Playing() {
		s.transport.Stop()
	}
	s.judge.Reset()
	s.detector.Reset()
	s.tempo.Reset()
	s.ring.Reset()
	s.particles.Reset()
	s.energy = 0
	s.flashes = [len(judge.Keys)]time.Time{}
	s.lastHit = judge.HitResult{}
	s.hasHit = false
	if !s.loading {
		s.status = StatusReset
	}
	s.metrics.RecordReset()
}

// BeginLoad marks a decode in flight; playback stops and input is ignored until FinishLoad
func (s *Session) BeginLoad(name string) {
	if s.Playing() {
		s.transport.Stop()
	}
	s.loading = true
	s.status = StatusLoading
	s.log.Info(context.Background(), "loading track", logger.String("track", name))
}

// FinishLoad installs t on success, disposing the previous transport. On
// failure the previous transport stays installed, stopped.
func (s *Session) FinishLoad(t Transport, name string, err error) {
	s.loading = false
	if err != nil {
		s.status = "Error loading audio: " + err.Error()
		s.metrics.RecordLoad(metrics.OutcomeError)
		s.log.Warn(context.Background(), "track load failed", logger.Error(err))
		return
	}

	if s.transport != nil {
		s.transport.Dispose()
	}
	s.transport = t
	s.track = name
	s.detector.Reset()
	s.tempo.Reset()
	s.ring.Reset()
	s.energy = 0
	s.status = StatusReady
	s.metrics.RecordLoad(metrics.OutcomeOK)
	s.log.Info(context.Background(), "track loaded", logger.String("track", name))
}

// TrackEnded records that playback ran to the end
func (s *Session) TrackEnded() {
	s.status = StatusFinished
}

// SetStatus replaces the HUD status message
func (s *Session) SetStatus(msg string) { s.status = msg }

// Resize changes the world viewport in pixels
func (s *Session) Resize(width, height float64) {
	s.particles.Resize(width, height)
}

// Stats returns the scoring counters
func (s *Session) Stats() judge.Stats { return s.judge.Stats() }

// Energy returns the latest feature reading
func (s *Session) Energy() float64 { return s.energy }

// BPM returns the tempo estimate, false when undefined
func (s *Session) BPM() (int, bool) { return s.tempo.BPM() }

// Particles exposes the particle system for drawing
func (s *Session) Particles() *particle.System { return s.particles }

// Rings returns the visible beat rings at now
func (s *Session) Rings(now time.Time) []beat.RingFrame { return s.ring.Visible(now) }

// Shutdown stops and releases the transport
func (s *Session) Shutdown() {
	if s.transport != nil {
		s.transport.Stop()
		s.transport.Dispose()
		s.transport = nil
	}
}

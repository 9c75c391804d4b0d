package engine

import (
	"strconv"
	"time"

	"github.com/lixenwraith/runebeat/beat"
	"github.com/lixenwraith/runebeat/constants"
	"github.com/lixenwraith/runebeat/core"
	"github.com/lixenwraith/runebeat/judge"
	"github.com/lixenwraith/runebeat/particle"
)

// Placeholders shown before the first value exists
const (
	BPMPlaceholder  = "--"
	RankPlaceholder = "-"
)

// Display holds the formatted HUD values
type Display struct {
	Accuracy string
	Rank     string
	BPM      string
	Energy   string
	Status   string
	Score    int
	Track    string
	// LastHit is constants.HitLabelOnBeat or HitLabelOffBeat after the first press
	LastHit string
}

// Display formats the current HUD values
func (s *Session) Display() Display {
	stats := s.judge.Stats()
	d := Display{
		Accuracy: judge.FormatAccuracy(stats.Accuracy()),
		Rank:     RankPlaceholder,
		BPM:      BPMPlaceholder,
		Energy:   strconv.FormatFloat(s.energy, 'f', 2, 64),
		Status:   s.status,
		Score:    stats.Score,
		Track:    s.track,
	}
	if stats.TotalHits > 0 {
		d.Rank = string(judge.RankFor(stats.Accuracy()))
	}
	if bpm, ok := s.tempo.BPM(); ok {
		d.BPM = strconv.Itoa(bpm)
	}
	if s.hasHit {
		if s.lastHit.OnBeat {
			d.LastHit = constants.HitLabelOnBeat
		} else {
			d.LastHit = constants.HitLabelOffBeat
		}
	}
	return d
}

// Lane is one key of the lane row
type Lane struct {
	Key   judge.Key
	Hue   float64
	Flash bool
	// X is the lane center in world pixels
	X float64
}

// Frame is a read-only snapshot of everything drawn in one frame
type Frame struct {
	Now       time.Time
	Width     float64
	Height    float64
	Trail     *core.Buffer
	Particles []particle.Particle
	Rings     []beat.RingFrame
	Lanes     [len(judge.Keys)]Lane
	HUD       Display
	Playing   bool
}

// Snapshot fills f for drawing at now, reusing its slices
func (s *Session) Snapshot(now time.Time, f *Frame) {
	f.Now = now
	f.Width, f.Height = s.particles.Bounds()
	f.Trail = nil
	if t := s.particles.Trail(); t != nil {
		f.Trail = t.Buffer()
	}
	f.Particles = f.Particles[:0]
	s.particles.Each(func(p particle.Particle) {
		f.Particles = append(f.Particles, p)
	})
	f.Rings = s.ring.Visible(now)
	for i, key := range judge.Keys {
		x, _ := s.LanePosition(key)
		f.Lanes[i] = Lane{Key: key, Hue: key.Hue(), Flash: s.Flashing(key, now), X: x}
	}
	f.HUD = s.Display()
	f.Playing = s.Playing()
}

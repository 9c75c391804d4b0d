package judge

import (
	"time"
)

// Scoring constants
const (
	DefaultWindow = 200 * time.Millisecond
	OnBeatPoints  = 100
	OffBeatPoints = 10
)

// HitResult describes how one key press was scored
type HitResult struct {
	Key      Key
	OnBeat   bool
	Points   int
	Accuracy float64 // Percentage rounded to one decimal
	Rank     Rank
}

// Stats is the cumulative scoring state of a session
type Stats struct {
	Score          int
	TotalHits      int
	SuccessfulHits int
}

// Accuracy returns successful/total as a percentage rounded to one decimal, 0 with no hits
func (s Stats) Accuracy() float64 {
	if s.TotalHits == 0 {
		return 0
	}
	return roundTenth(float64(s.SuccessfulHits) / float64(s.TotalHits) * 100)
}

// Judge classifies key presses against the latest beat
// Every press scores; only timing quality varies
type Judge struct {
	window time.Duration
	stats  Stats
}

// NewJudge creates a judge with the given on-beat window
func NewJudge(window time.Duration) *Judge {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Judge{window: window}
}

// Press scores a key press at now against lastBeat
// A zero lastBeat, before any beat was detected, is always off-beat
func (j *Judge) Press(key Key, now, lastBeat time.Time) HitResult {
	onBeat := !lastBeat.IsZero() && now.Sub(lastBeat) < j.window

	points := OffBeatPoints
	j.stats.TotalHits++
	if onBeat {
		points = OnBeatPoints
		j.stats.SuccessfulHits++
	}
	j.stats.Score += points

	acc := j.stats.Accuracy()
	return HitResult{
		Key:      key,
		OnBeat:   onBeat,
		Points:   points,
		Accuracy: acc,
		Rank:     RankFor(acc),
	}
}

// Stats returns a copy of the cumulative state
func (j *Judge) Stats() Stats {
	return j.stats
}

// Window returns the on-beat tolerance
func (j *Judge) Window() time.Duration {
	return j.window
}

// Reset zeroes score and counters
func (j *Judge) Reset() {
	j.stats = Stats{}
}

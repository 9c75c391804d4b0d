package beat

import (
	"math"
	"time"
)

// DefaultTempoWindow is the number of beat timestamps kept for BPM estimation
const DefaultTempoWindow = 10

// Tempo estimates BPM as a moving average of recent inter-beat intervals
// A single double trigger skews the estimate until it leaves the window
type Tempo struct {
	beats    []time.Time
	capacity int
}

// NewTempo creates an estimator keeping at most capacity beats
func NewTempo(capacity int) *Tempo {
	if capacity < 2 {
		capacity = DefaultTempoWindow
	}
	return &Tempo{
		beats:    make([]time.Time, 0, capacity),
		capacity: capacity,
	}
}

// OnBeat records a beat, evicting the oldest beyond capacity
func (t *Tempo) OnBeat(ts time.Time) {
	if len(t.beats) == t.capacity {
		copy(t.beats, t.beats[1:])
		t.beats = t.beats[:len(t.beats)-1]
	}
	t.beats = append(t.beats, ts)
}

// BPM returns round(60000 / mean interval in ms); false until two beats exist
func (t *Tempo) BPM() (int, bool) {
	if len(t.beats) < 2 {
		return 0, false
	}

	var sum float64
	for i := 1; i < len(t.beats); i++ {
		sum += float64(t.beats[i].Sub(t.beats[i-1])) / float64(time.Millisecond)
	}
	mean := sum / float64(len(t.beats)-1)
	if mean <= 0 {
		return 0, false
	}
	return int(math.Round(60000 / mean)), true
}

// Len returns the number of beats in the window
func (t *Tempo) Len() int {
	return len(t.beats)
}

// Reset empties the window
func (t *Tempo) Reset() {
	t.beats = t.beats[:0]
}

package beat

import "time"

// DefaultRingTTL is how long a beat ring stays visible
const DefaultRingTTL = 500 * time.Millisecond

// Ring radius and alpha interpolation endpoints
const (
	RingAlphaStart  = 100.0
	RingAlphaEnd    = 0.0
	RingRadiusStart = 10.0
	RingRadiusEnd   = 50.0
)

// RingEntry is a beat marker placed at a viewport position
type RingEntry struct {
	Time time.Time
	X, Y float64
}

// RingFrame is the interpolated look of a ring entry at a point in time
type RingFrame struct {
	X, Y   float64
	Alpha  float64 // 100 to 0
	Radius float64 // 10 to 50
}

// Ring keeps recent beats for the fading ring indicator
// Purely cosmetic, expiry is by age rather than a life counter
type Ring struct {
	entries []RingEntry
	ttl     time.Duration
}

// NewRing creates a ring buffer with the given time-to-live
func NewRing(ttl time.Duration) *Ring {
	if ttl <= 0 {
		ttl = DefaultRingTTL
	}
	return &Ring{ttl: ttl}
}

// OnBeat adds a ring at the given position
func (r *Ring) OnBeat(ts time.Time, x, y float64) {
	r.entries = append(r.entries, RingEntry{Time: ts, X: x, Y: y})
}

// Prune drops entries whose age reached the ttl
func (r *Ring) Prune(now time.Time) {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if now.Sub(e.Time) < r.ttl {
			kept = append(kept, e)
		}
	}
	r.entries = kept
}

// Visible returns interpolated frames for entries alive at now
func (r *Ring) Visible(now time.Time) []RingFrame {
	frames := make([]RingFrame, 0, len(r.entries))
	for _, e := range r.entries {
		age := now.Sub(e.Time)
		if age < 0 || age >= r.ttl {
			continue
		}
		p := float64(age) / float64(r.ttl)
		frames = append(frames, RingFrame{
			X:      e.X,
			Y:      e.Y,
			Alpha:  lerp(RingAlphaStart, RingAlphaEnd, p),
			Radius: lerp(RingRadiusStart, RingRadiusEnd, p),
		})
	}
	return frames
}

// Len returns the number of stored entries
func (r *Ring) Len() int {
	return len(r.entries)
}

// Reset removes all entries
func (r *Ring) Reset() {
	r.entries = r.entries[:0]
}

func lerp(a, b, p float64) float64 {
	return a + (b-a)*p
}

package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// Tap is a streamer wrapper that copies a mono mix of everything it
// passes into a ring buffer for analysis
type Tap struct {
	s       beep.Streamer
	mu      sync.Mutex
	buf     []float64
	pos     int
	size    int
	written int
}

// NewTap creates a tap with a ring of bufSize samples; the source is set with SetSource
func NewTap(bufSize int) *Tap {
	if bufSize < 1 {
		bufSize = 1
	}
	return &Tap{
		buf:  make([]float64, bufSize),
		size: bufSize,
	}
}

// SetSource replaces the wrapped streamer and clears the ring
func (t *Tap) SetSource(s beep.Streamer) {
	t.mu.Lock()
	t.s = s
	t.mu.Unlock()
	t.Reset()
}

// Stream passes audio through while capturing a mono mix into the ring buffer
func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	t.mu.Lock()
	s := t.s
	t.mu.Unlock()
	if s == nil {
		return 0, false
	}

	n, ok := s.Stream(samples)
	t.mu.Lock()
	for i := range n {
		t.buf[t.pos] = (samples[i][0] + samples[i][1]) / 2
		t.pos = (t.pos + 1) % t.size
	}
	t.written += n
	t.mu.Unlock()
	return n, ok
}

// Err returns the underlying streamer's error
func (t *Tap) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.s == nil {
		return nil
	}
	return t.s.Err()
}

// Samples returns the last n samples in chronological order; unwritten
// slots read as silence
func (t *Tap) Samples(n int) []float64 {
	if n > t.size {
		n = t.size
	}
	out := make([]float64, n)
	t.mu.Lock()
	start := (t.pos - n + t.size) % t.size
	for i := range n {
		out[i] = t.buf[(start+i)%t.size]
	}
	t.mu.Unlock()
	return out
}

// Written returns the number of samples captured since the last reset
func (t *Tap) Written() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.written
}

// Size returns the ring capacity
func (t *Tap) Size() int { return t.size }

// Reset zeroes the ring
func (t *Tap) Reset() {
	t.mu.Lock()
	clear(t.buf)
	t.pos = 0
	t.written = 0
	t.mu.Unlock()
}

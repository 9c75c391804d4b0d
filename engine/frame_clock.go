package engine

import (
	"sync"
	"time"

	"github.com/lixenwraith/runebeat/constants"
)

// FrameClock is a Clock that moves only when stepped. Now is origin plus
// whole frames plus any sub-frame nudge, so a session driven by it sees the
// same timestamps a perfectly paced game loop would produce.
type FrameClock struct {
	mu     sync.RWMutex
	origin time.Time
	frame  int
	nudge  time.Duration
}

func NewFrameClock(origin time.Time) *FrameClock {
	return &FrameClock{origin: origin}
}

func (c *FrameClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now()
}

func (c *FrameClock) now() time.Time {
	return c.origin.Add(time.Duration(c.frame)*constants.FrameUpdateInterval + c.nudge)
}

// Frame returns the number of frames stepped since the last Seek
func (c *FrameClock) Frame() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.frame
}

// Step advances n frames and returns the new time
func (c *FrameClock) Step(n int) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frame += n
	return c.now()
}

// Nudge shifts time by d without counting a frame
func (c *FrameClock) Nudge(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nudge += d
	return c.now()
}

// Seek restarts the clock at t with the frame count cleared
func (c *FrameClock) Seek(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.origin, c.frame, c.nudge = t, 0, 0
}

// Drive ticks s once per frame for n frames, calling feed before each tick
// when non-nil, and leaves the clock on the frame after the last tick
func (c *FrameClock) Drive(s *Session, n int, feed func(frame int)) {
	for range n {
		if feed != nil {
			feed(c.Frame())
		}
		s.Tick(c.Now())
		c.Step(1)
	}
}

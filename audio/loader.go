package audio

import (
	"context"
	"sync"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/runebeat/core"
)

// LoadResult is delivered once per Load call
type LoadResult struct {
	Seq   uint64
	Path  string
	Track *Track
	Err   error
}

// Loader decodes tracks off the caller's goroutine; starting a load
// cancels the one in flight
type Loader struct {
	rate beep.SampleRate

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewLoader creates a loader decoding to rate
func NewLoader(rate beep.SampleRate) *Loader {
	return &Loader{rate: rate}
}

// Load starts decoding path and returns a channel receiving exactly one result
func (l *Loader) Load(ctx context.Context, path string) <-chan LoadResult {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.seq++
	seq := l.seq
	l.mu.Unlock()

	ch := make(chan LoadResult, 1)
	core.Go(func() {
		defer close(ch)
		defer cancel()
		track, err := DecodeContext(loadCtx, path, l.rate)
		ch <- LoadResult{Seq: seq, Path: path, Track: track, Err: err}
	})
	return ch
}

// Current returns the sequence number of the latest Load call
func (l *Loader) Current() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seq
}

// Cancel aborts the in-flight load, if any
func (l *Loader) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

package audio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/runebeat/constants"
)

// Output is where finished streamers are played. Lock/Unlock guard any
// state the playing streamers read.
type Output interface {
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
	SampleRate() beep.SampleRate
}

// SpeakerOutput plays through the system audio device
type SpeakerOutput struct {
	rate beep.SampleRate
}

var (
	speakerOnce sync.Once
	speakerErr  error
)

// NewSpeakerOutput initializes the speaker once per process
func NewSpeakerOutput(rate beep.SampleRate) (*SpeakerOutput, error) {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(rate, rate.N(constants.SpeakerBufferDuration))
	})
	if speakerErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutput, speakerErr)
	}
	return &SpeakerOutput{rate: rate}, nil
}

func (o *SpeakerOutput) Play(s ...beep.Streamer)     { speaker.Play(s...) }
func (o *SpeakerOutput) Lock()                       { speaker.Lock() }
func (o *SpeakerOutput) Unlock()                     { speaker.Unlock() }
func (o *SpeakerOutput) SampleRate() beep.SampleRate { return o.rate }

// Close stops the device
func (o *SpeakerOutput) Close() {
	speaker.Clear()
	speaker.Close()
}

// mixOutput is a beep.Mixer clocked locally instead of by a device
type mixOutput struct {
	rate  beep.SampleRate
	mu    sync.Mutex
	mixer beep.Mixer
	buf   [][2]float64
}

func (o *mixOutput) Play(s ...beep.Streamer) {
	o.mu.Lock()
	o.mixer.Add(s...)
	o.mu.Unlock()
}

func (o *mixOutput) Lock()                       { o.mu.Lock() }
func (o *mixOutput) Unlock()                     { o.mu.Unlock() }
func (o *mixOutput) SampleRate() beep.SampleRate { return o.rate }

// Active returns the number of streamers still playing
func (o *mixOutput) Active() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.mixer.Len()
}

// render streams n mixed samples; the slice is reused by the next call
func (o *mixOutput) render(n int) [][2]float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	if cap(o.buf) < n {
		o.buf = make([][2]float64, n)
	}
	out := o.buf[:n]
	o.mixer.Stream(out)
	return out
}

// pace hands fn the samples due at the output rate until ctx is done
func (o *mixOutput) pace(ctx context.Context, fn func(n int)) {
	ticker := time.NewTicker(constants.SilentOutputInterval)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := o.rate.N(now.Sub(last)); n > 0 {
				fn(n)
				last = last.Add(o.rate.D(n))
			}
		}
	}
}

// SilentOutput consumes streamers at real-time pace without a device, so
// analysis keeps running when sound is disabled
type SilentOutput struct {
	mixOutput
}

// NewSilentOutput creates an output that discards audio
func NewSilentOutput(rate beep.SampleRate) *SilentOutput {
	return &SilentOutput{mixOutput{rate: rate}}
}

// Pull streams n samples from the mixer and drops them
func (o *SilentOutput) Pull(n int) {
	o.render(n)
}

// Run pulls samples at the output rate until ctx is done
func (o *SilentOutput) Run(ctx context.Context) {
	o.pace(ctx, o.Pull)
}

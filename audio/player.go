package audio

import (
	"github.com/gopxl/beep"
)

// Player plays one Track on an Output with pause/rewind control. It
// feeds the shared Tap so the Analyzer sees exactly what is audible.
type Player struct {
	out   Output
	track *Track
	tap   *Tap
	onEnd func()

	// Guarded by out.Lock; the end callback runs with the lock held
	stream   beep.StreamSeeker
	ctrl     *beep.Ctrl
	queued   bool
	playing  bool
	disposed bool
}

// NewPlayer prepares track for playback through tap on out. onEnd is
// called from the audio goroutine when the track runs out and must not block.
func NewPlayer(out Output, track *Track, tap *Tap, volume float64, onEnd func()) *Player {
	stream := track.Streamer()
	tap.SetSource(newVolume(stream, volume))
	return &Player{
		out:    out,
		track:  track,
		tap:    tap,
		onEnd:  onEnd,
		stream: stream,
		ctrl:   &beep.Ctrl{Streamer: tap, Paused: true},
	}
}

// Track returns the loaded track
func (p *Player) Track() *Track { return p.track }

// Start resumes playback, restarting from the top after the track ended
func (p *Player) Start() {
	p.out.Lock()
	if p.disposed {
		p.out.Unlock()
		return
	}
	queue := !p.queued
	if queue {
		p.queued = true
	}
	p.ctrl.Paused = false
	p.playing = true
	p.out.Unlock()

	if queue {
		p.out.Play(beep.Seq(p.ctrl, beep.Callback(p.ended)))
	}
}

// Stop pauses and rewinds to the start
func (p *Player) Stop() {
	p.out.Lock()
	defer p.out.Unlock()
	if p.disposed {
		return
	}
	p.ctrl.Paused = true
	p.playing = false
	_ = p.stream.Seek(0)
	p.tap.Reset()
}

// Dispose detaches the player from the output for good
func (p *Player) Dispose() {
	p.out.Lock()
	defer p.out.Unlock()
	if p.disposed {
		return
	}
	p.disposed = true
	p.playing = false
	p.ctrl.Paused = false
	p.ctrl.Streamer = nil
}

// Loaded reports whether the player still holds a playable track
func (p *Player) Loaded() bool {
	p.out.Lock()
	defer p.out.Unlock()
	return !p.disposed
}

// Playing reports whether audio is advancing
func (p *Player) Playing() bool {
	p.out.Lock()
	defer p.out.Unlock()
	return p.playing
}

// ended runs inside the output's stream call with the output lock held
func (p *Player) ended() {
	p.queued = false
	if p.disposed {
		return
	}
	p.playing = false
	p.ctrl.Paused = true
	_ = p.stream.Seek(0)
	if p.onEnd != nil {
		p.onEnd()
	}
}

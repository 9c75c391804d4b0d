package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// SoundManager mixes short feedback sounds over the music
type SoundManager struct {
	mu          sync.Mutex
	out         Output
	mixer       *beep.Mixer
	volume      float64
	enabled     bool
	initialized bool
}

// NewSoundManager creates a sound manager; disabled managers ignore every call
func NewSoundManager(out Output, volume float64, enabled bool) *SoundManager {
	return &SoundManager{
		out:     out,
		mixer:   &beep.Mixer{},
		volume:  volume,
		enabled: enabled,
	}
}

// Initialize attaches the effect mixer to the output
func (sm *SoundManager) Initialize() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || sm.out == nil || !sm.enabled {
		return
	}
	sm.out.Play(sm.mixer)
	sm.initialized = true
}

// Cleanup drops every pending sound
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.out.Lock()
	sm.mixer.Clear()
	sm.out.Unlock()
}

// Play queues soundType on the mixer
func (sm *SoundManager) Play(soundType SoundType) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := GetSoundEffect(soundType, sm.out.SampleRate(), sm.volume)
	if s == nil {
		return
	}
	sm.out.Lock()
	sm.mixer.Add(s)
	sm.out.Unlock()
}

// PlayHit plays the bell on beat and the tick otherwise
func (sm *SoundManager) PlayHit(onBeat bool) {
	if onBeat {
		sm.Play(SoundOnBeat)
		return
	}
	sm.Play(SoundOffBeat)
}

// Pending returns the number of sounds still in the mixer
func (sm *SoundManager) Pending() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return 0
	}
	sm.out.Lock()
	defer sm.out.Unlock()
	return sm.mixer.Len()
}

// Package audio plays the dial click and unlock cues.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// SoundManager mixes cues onto the speaker. Every method is a no-op until
// Initialize succeeds, and stays one when muted.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	muted       bool
	initialized bool
}

// NewSoundManager creates a sound manager at the given master volume (0..1).
func NewSoundManager(volume float64, muted bool) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: clampVolume(volume),
		muted:  muted,
	}
}

// Initialize opens the speaker. Muted managers never touch the device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || sm.muted {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup drops every queued cue.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Enabled reports whether cues reach the speaker.
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized && !sm.muted
}

// PlayClick plays the short metallic dial click.
func (sm *SoundManager) PlayClick() {
	sm.play(func() beep.Streamer { return ClickSound(sampleRate, sm.volume) })
}

// PlayUnlock plays the heavy unlock clang.
func (sm *SoundManager) PlayUnlock() {
	sm.play(func() beep.Streamer { return UnlockSound(sampleRate, sm.volume) })
}

func (sm *SoundManager) play(build func() beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	streamer := build()
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

func clampVolume(v float64) float64 {
	return max(0, min(v, 1))
}

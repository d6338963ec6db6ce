package audio

import (
	"testing"

	"github.com/verte-zerg/cryptex/internal/puzzle"
)

var _ puzzle.Cues = (*SoundManager)(nil)

func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(1, false)
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("cues panicked without initialization: %v", r)
		}
	}()
	sm.PlayClick()
	sm.PlayUnlock()
	sm.Cleanup()
	if sm.Enabled() {
		t.Fatalf("expected manager to be disabled before initialization")
	}
}

func TestSoundManagerMutedNeverInitializes(t *testing.T) {
	sm := NewSoundManager(1, true)
	if err := sm.Initialize(); err != nil {
		t.Fatalf("expected muted initialize to succeed, got %v", err)
	}
	if sm.Enabled() {
		t.Fatalf("expected muted manager to stay disabled")
	}
	sm.PlayClick()
}

func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager(0.5, false)
	if err := sm.Initialize(); err != nil {
		t.Logf("speaker unavailable: %v", err)
		return
	}
	if err := sm.Initialize(); err != nil {
		t.Fatalf("second initialize should be a no-op, got %v", err)
	}
	sm.PlayClick()
	sm.Cleanup()
}

func TestClampVolume(t *testing.T) {
	if clampVolume(-1) != 0 || clampVolume(2) != 1 || clampVolume(0.3) != 0.3 {
		t.Fatalf("unexpected clamp")
	}
}

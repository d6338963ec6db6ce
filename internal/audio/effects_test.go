package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(t *testing.T, s beep.Streamer) ([][2]float64, int) {
	t.Helper()
	var all [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		all = append(all, buf[:n]...)
		if !ok {
			break
		}
		if len(all) > 10*int(sampleRate) {
			t.Fatalf("streamer never drained")
		}
	}
	return all, len(all)
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440, 100*time.Millisecond, WaveTriangle, rate)
	samples, n := drain(t, osc)
	if n != rate.N(100*time.Millisecond) {
		t.Fatalf("expected %d samples, got %d", rate.N(100*time.Millisecond), n)
	}
	for i, s := range samples {
		if s[0] < -1 || s[0] > 1 {
			t.Fatalf("sample %d out of range: %f", i, s[0])
		}
	}
}

func TestDecayFades(t *testing.T) {
	rate := beep.SampleRate(8000)
	d := NewDecay(NewOscillator(0, time.Second, WaveNoise, rate), 100*time.Millisecond, rate)
	samples, n := drain(t, d)
	if n != rate.N(100*time.Millisecond) {
		t.Fatalf("expected decay to stop the stream, got %d samples", n)
	}
	tail := samples[n-1][0]
	if math.Abs(tail) > 0.01 {
		t.Fatalf("expected faded tail, got %f", tail)
	}
}

func TestCueLengths(t *testing.T) {
	cases := map[string]struct {
		streamer beep.Streamer
		want     int
	}{
		"click":  {ClickSound(sampleRate, 1), sampleRate.N(clickDuration)},
		"unlock": {UnlockSound(sampleRate, 1), sampleRate.N(unlockDuration)},
	}
	for name, tc := range cases {
		if _, n := drain(t, tc.streamer); n != tc.want {
			t.Fatalf("%s: expected %d samples, got %d", name, tc.want, n)
		}
	}
}

func TestSilentVolume(t *testing.T) {
	rate := beep.SampleRate(8000)
	samples, _ := drain(t, newVolume(NewOscillator(440, 10*time.Millisecond, WaveSine, rate), 0))
	for _, s := range samples {
		if s[0] != 0 {
			t.Fatalf("expected silence, got %f", s[0])
		}
	}
}

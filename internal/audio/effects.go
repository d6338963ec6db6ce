package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const (
	clickDuration  = 80 * time.Millisecond
	unlockDuration = 800 * time.Millisecond
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveTriangle
	WaveNoise
)

// oscillator generates a wave whose frequency glides linearly from
// startFreq to endFreq over its duration.
type oscillator struct {
	startFreq float64
	endFreq   float64
	phase     float64
	duration  int
	position  int
	wave      WaveType
	rate      beep.SampleRate
	rnd       *rand.Rand
}

// NewOscillator creates a fixed-frequency oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding between two frequencies.
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		startFreq: from,
		endFreq:   to,
		duration:  rate.N(duration),
		wave:      wave,
		rate:      rate,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		case WaveNoise:
			val = o.rnd.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.startFreq + (o.endFreq-o.startFreq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay shapes a stream with an exponential fade, reaching about -60dB at
// the end of its duration.
type decay struct {
	streamer beep.Streamer
	position int
	total    int
	rate     float64
}

// NewDecay wraps s with an exponential decay envelope.
func NewDecay(s beep.Streamer, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	return &decay{streamer: s, total: total, rate: math.Log(1000) / float64(max(total, 1))}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if d.position >= d.total {
			return i, i > 0
		}
		gain := math.Exp(-d.rate * float64(d.position))
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// lowPass is a one-pole smoothing filter.
type lowPass struct {
	streamer beep.Streamer
	alpha    float64
	prev     [2]float64
}

// NewLowPass filters s with the given cutoff frequency.
func NewLowPass(s beep.Streamer, cutoff float64, rate beep.SampleRate) beep.Streamer {
	dt := 1 / float64(rate)
	rc := 1 / (2 * math.Pi * cutoff)
	return &lowPass{streamer: s, alpha: dt / (rc + dt)}
}

func (f *lowPass) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		for c := 0; c < 2; c++ {
			f.prev[c] += f.alpha * (samples[i][c] - f.prev[c])
			samples[i][c] = f.prev[c]
		}
	}
	return n, ok
}

func (f *lowPass) Err() error { return f.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume is rendered silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// ClickSound is filtered noise over a 120Hz triangle thump.
func ClickSound(rate beep.SampleRate, vol float64) beep.Streamer {
	noise := NewLowPass(NewOscillator(0, clickDuration, WaveNoise, rate), 3000, rate)
	thump := NewOscillator(120, clickDuration, WaveTriangle, rate)
	mixed := beep.Mix(
		newVolume(NewDecay(noise, clickDuration, rate), 0.4),
		newVolume(NewDecay(thump, clickDuration, rate), 0.6),
	)
	return beep.Take(rate.N(clickDuration), newVolume(mixed, vol))
}

// UnlockSound is a noise clang, a 150 to 80Hz drop and a high 1800Hz ring.
func UnlockSound(rate beep.SampleRate, vol float64) beep.Streamer {
	clang := NewLowPass(NewOscillator(0, unlockDuration, WaveNoise, rate), 1200, rate)
	drop := NewSweep(150, 80, unlockDuration, WaveTriangle, rate)
	ring := NewOscillator(1800, unlockDuration, WaveSine, rate)
	mixed := beep.Mix(
		newVolume(NewDecay(clang, unlockDuration/4, rate), 0.5),
		newVolume(NewDecay(drop, unlockDuration, rate), 0.7),
		newVolume(NewDecay(ring, unlockDuration, rate), 0.15),
	)
	return beep.Take(rate.N(unlockDuration), newVolume(mixed, vol))
}

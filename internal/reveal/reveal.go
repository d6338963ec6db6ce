// Package reveal drives the opening animation once the lock has been solved.
package reveal

import "math"

// DefaultDelayMs is the pause between the unlock and the first frame.
const DefaultDelayMs = 500

const (
	floatBobRate      = 0.002
	floatBobAmplitude = 0.3
	floatSpinStep     = 0.01
)

// Progress is one bounded value that walks from Start to Target in Step
// increments and then stays clamped at Target.
type Progress struct {
	Name   string
	Start  float64
	Target float64
	Step   float64
	Value  float64
}

// Done reports whether the value has reached its bound.
func (p Progress) Done() bool {
	if p.Target >= p.Start {
		return p.Value >= p.Target
	}
	return p.Value <= p.Target
}

func (p *Progress) advance() {
	if p.Done() {
		return
	}
	if p.Target >= p.Start {
		p.Value = math.Min(p.Value+math.Abs(p.Step), p.Target)
		return
	}
	p.Value = math.Max(p.Value-math.Abs(p.Step), p.Target)
}

// Names of the stock progress values.
const (
	Cap   = "cap"
	Scale = "scale"
	Spin  = "spin"
)

// DefaultProgress returns the end-cap slide, key growth and key spin.
func DefaultProgress() []Progress {
	return []Progress{
		{Name: Cap, Start: 4.2, Target: 6.0, Step: 0.03},
		{Name: Scale, Start: 0, Target: 1.5, Step: 0.02},
		{Name: Spin, Start: math.Pi / 4, Target: math.Pi/4 + 3.75, Step: 0.05},
	}
}

// Phase is where the sequencer is.
type Phase int

const (
	Idle Phase = iota
	Waiting
	Running
	Floating
)

func (p Phase) String() string {
	switch p {
	case Waiting:
		return "waiting"
	case Running:
		return "running"
	case Floating:
		return "floating"
	default:
		return "idle"
	}
}

// Sequencer advances its progress values once per frame until all are at
// their bounds, then hands over to the float behaviour.
type Sequencer struct {
	delayMs  int64
	values   []Progress
	byName   map[string]int
	phase    Phase
	startAt  int64
	bob      float64
	spinIdle float64
}

// NewSequencer owns a copy of values, each reset to its Start.
func NewSequencer(delayMs int64, values []Progress) *Sequencer {
	if delayMs < 0 {
		delayMs = 0
	}
	s := &Sequencer{
		delayMs: delayMs,
		values:  make([]Progress, len(values)),
		byName:  make(map[string]int, len(values)),
	}
	for i, v := range values {
		v.Value = v.Start
		s.values[i] = v
		s.byName[v.Name] = i
	}
	return s
}

// Start arms the sequencer; frames before nowMs+delay leave it untouched.
// Only the first call counts.
func (s *Sequencer) Start(nowMs int64) {
	if s.phase != Idle {
		return
	}
	s.phase = Waiting
	s.startAt = nowMs + s.delayMs
}

// Phase returns the current phase.
func (s *Sequencer) Phase() Phase {
	return s.phase
}

// Tick runs one frame of the bounded sequence. It returns true on the
// frame where every value reaches its bound; after that the sequencer is
// floating and Tick returns false.
func (s *Sequencer) Tick(nowMs int64) bool {
	switch s.phase {
	case Waiting:
		if nowMs < s.startAt {
			return false
		}
		s.phase = Running
	case Running:
	default:
		return false
	}
	done := true
	for i := range s.values {
		s.values[i].advance()
		if !s.values[i].Done() {
			done = false
		}
	}
	if done {
		s.phase = Floating
		if i, ok := s.byName[Spin]; ok {
			s.spinIdle = s.values[i].Value
		}
	}
	return done
}

// Float runs one frame of the idle behaviour: a sinusoidal bob and a slow
// spin. It never finishes.
func (s *Sequencer) Float(nowMs int64) {
	if s.phase != Floating {
		return
	}
	s.bob = math.Sin(float64(nowMs)*floatBobRate) * floatBobAmplitude
	s.spinIdle += floatSpinStep
}

// Value returns a progress value by name.
func (s *Sequencer) Value(name string) (float64, bool) {
	i, ok := s.byName[name]
	if !ok {
		return 0, false
	}
	return s.values[i].Value, true
}

// Snapshot is what a renderer needs for one frame.
type Snapshot struct {
	Phase Phase
	Cap   float64
	Scale float64
	Spin  float64
	Bob   float64
}

// Snapshot returns the current frame values. While floating, Spin carries
// the idle rotation.
func (s *Sequencer) Snapshot() Snapshot {
	snap := Snapshot{Phase: s.phase, Bob: s.bob}
	snap.Cap, _ = s.Value(Cap)
	snap.Scale, _ = s.Value(Scale)
	snap.Spin, _ = s.Value(Spin)
	if s.phase == Floating {
		snap.Spin = s.spinIdle
	}
	return snap
}

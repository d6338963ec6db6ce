package puzzle

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/verte-zerg/cryptex/internal/gesture"
	"github.com/verte-zerg/cryptex/internal/reveal"
)

// Options tunes a session. Zero values fall back to the defaults.
type Options struct {
	Thresholds    gesture.Thresholds
	CooldownMs    int64
	RevealDelayMs int64
	Progress      []reveal.Progress
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		Thresholds:    gesture.DefaultThresholds(),
		CooldownMs:    DefaultCooldownMs,
		RevealDelayMs: reveal.DefaultDelayMs,
		Progress:      reveal.DefaultProgress(),
	}
}

// RunStats counts what happened during a session.
type RunStats struct {
	RunID         string
	StartedMs     int64
	UnlockedMs    int64
	Taps          int
	Drags         int
	Advances      int
	Misses        int
	CooldownDrops int
}

// Session is the single owner of one puzzle: dials, lock status, cooldown,
// pointer classification and the reveal. Every method runs to completion on
// the caller's goroutine; callers must not use a session concurrently.
type Session struct {
	machine    *Machine
	view       View
	classifier *gesture.Classifier
	gate       *Gate
	sequencer  *reveal.Sequencer
	stats      RunStats
	started    bool
}

// NewSession wires a locked puzzle to its view and cues. A code that does
// not match the dial count is rejected with ErrInvalidConfig.
func NewSession(code Code, dials *Registry, view View, cues Cues, opts Options) (*Session, error) {
	if view == nil {
		view = NopView{}
	}
	machine, err := NewMachine(code, dials, view, cues)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	defaults := DefaultOptions()
	if opts.Thresholds == (gesture.Thresholds{}) {
		opts.Thresholds = defaults.Thresholds
	}
	if opts.Progress == nil {
		opts.Progress = defaults.Progress
	}
	s := &Session{
		machine:    machine,
		view:       view,
		classifier: gesture.NewClassifier(opts.Thresholds),
		gate:       NewGate(opts.CooldownMs),
		sequencer:  reveal.NewSequencer(opts.RevealDelayMs, opts.Progress),
		stats:      RunStats{RunID: uuid.NewString()},
	}
	for i, pos := range dials.Positions() {
		view.SetDialRotation(DialID(i), pos)
	}
	return s, nil
}

// Status returns the lock status.
func (s *Session) Status() Status {
	return s.machine.Status()
}

// Symbols returns what each dial currently shows.
func (s *Session) Symbols() []string {
	return s.machine.Dials().Symbols()
}

// Positions returns each dial's alphabet position.
func (s *Session) Positions() []int {
	return s.machine.Dials().Positions()
}

// Reveal returns the current reveal frame values.
func (s *Session) Reveal() reveal.Snapshot {
	return s.sequencer.Snapshot()
}

// Stats returns the run counters so far.
func (s *Session) Stats() RunStats {
	return s.stats
}

// PointerDown starts a gesture.
func (s *Session) PointerDown(sample gesture.Sample) {
	if s.Status() != Locked {
		return
	}
	s.markStarted(sample.TimestampMs)
	s.classifier.Down(sample)
}

// PointerMove rotates the view while dragging.
func (s *Session) PointerMove(sample gesture.Sample) {
	if s.Status() != Locked {
		return
	}
	if rot, ok := s.classifier.Move(sample); ok {
		s.view.Rotate(rot.Yaw, rot.Pitch)
	}
}

// PointerUp finishes a gesture. A tap that lands on a dial while the
// cooldown is open advances that dial.
func (s *Session) PointerUp(sample gesture.Sample) gesture.Outcome {
	if s.Status() != Locked {
		return gesture.None
	}
	outcome := s.classifier.Up(sample)
	switch outcome {
	case gesture.Drag:
		s.stats.Drags++
	case gesture.Tap:
		s.stats.Taps++
		s.tap(sample)
	}
	return outcome
}

// PointerCancel drops the gesture in progress.
func (s *Session) PointerCancel() {
	s.classifier.Cancel()
}

// Frame is the per-display-frame tick.
func (s *Session) Frame(nowMs int64) {
	switch s.Status() {
	case Unlocking:
		if s.sequencer.Tick(nowMs) {
			s.machine.CompleteReveal()
		}
	case Unlocked:
		s.sequencer.Float(nowMs)
	}
}

func (s *Session) tap(sample gesture.Sample) {
	id, ok := s.view.HitTestDials(sample.X, sample.Y)
	if !ok || !s.machine.Dials().Valid(id) {
		s.stats.Misses++
		return
	}
	if !s.gate.TryAccept(sample.TimestampMs) {
		s.stats.CooldownDrops++
		return
	}
	if !s.machine.AdvanceDial(id) {
		return
	}
	s.stats.Advances++
	if s.Status() == Unlocking {
		s.stats.UnlockedMs = sample.TimestampMs
		s.sequencer.Start(sample.TimestampMs)
	}
}

func (s *Session) markStarted(nowMs int64) {
	if s.started {
		return
	}
	s.started = true
	s.stats.StartedMs = nowMs
}

package puzzle

import (
	"math"
	"testing"

	"github.com/verte-zerg/cryptex/internal/gesture"
)

// recordView lays dials out as 100px wide columns starting at x=0.
type recordView struct {
	dials     int
	rotations []gesture.Rotation
	set       map[DialID]int
	reveals   int
}

func (v *recordView) Rotate(yaw, pitch float64) {
	v.rotations = append(v.rotations, gesture.Rotation{Yaw: yaw, Pitch: pitch})
}

func (v *recordView) HitTestDials(x, y float64) (DialID, bool) {
	if x < 0 || y < 0 || y > 100 {
		return 0, false
	}
	id := int(x / 100)
	if id >= v.dials {
		return 0, false
	}
	return DialID(id), true
}

func (v *recordView) SetDialRotation(id DialID, pos int) {
	if v.set == nil {
		v.set = map[DialID]int{}
	}
	v.set[id] = pos
}

func (v *recordView) StartReveal() {
	v.reveals++
}

type recordCues struct {
	clicks  int
	unlocks int
}

func (c *recordCues) PlayClick()  { c.clicks++ }
func (c *recordCues) PlayUnlock() { c.unlocks++ }

func newTestSession(t *testing.T, alphabet, code []string, start []int) (*Session, *recordView, *recordCues) {
	t.Helper()
	a := mustAlphabet(t, alphabet...)
	c := mustCode(t, a, code...)
	r, err := NewRegistryAt(a, c, start)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	view := &recordView{dials: len(start)}
	cues := &recordCues{}
	s, err := NewSession(c, r, view, cues, DefaultOptions())
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	return s, view, cues
}

func tap(s *Session, x, y float64, at int64) gesture.Outcome {
	s.PointerDown(gesture.Sample{X: x, Y: y, TimestampMs: at})
	return s.PointerUp(gesture.Sample{X: x, Y: y, TimestampMs: at + 50})
}

func TestSessionSyncsInitialRotation(t *testing.T) {
	_, view, _ := newTestSession(t, []string{"A", "B", "C"}, []string{"B", "A"}, []int{2, 1})
	if view.set[0] != 2 || view.set[1] != 1 {
		t.Fatalf("expected initial rotations to be pushed, got %v", view.set)
	}
}

func TestSessionEndToEndUnlock(t *testing.T) {
	s, view, cues := newTestSession(t, []string{"A", "B", "C"}, []string{"B", "A"}, []int{2, 2})

	if out := tap(s, 50, 50, 1000); out != gesture.Tap {
		t.Fatalf("expected tap, got %s", out)
	}
	if got := s.Symbols(); got[0] != "A" || got[1] != "C" {
		t.Fatalf("after first tap: %v", got)
	}
	tap(s, 50, 50, 1600)
	if got := s.Symbols(); got[0] != "B" || got[1] != "C" {
		t.Fatalf("after second tap: %v", got)
	}
	if s.Status() != Locked {
		t.Fatalf("expected still locked, got %s", s.Status())
	}
	tap(s, 150, 50, 2200)
	if got := s.Symbols(); got[0] != "B" || got[1] != "A" {
		t.Fatalf("after third tap: %v", got)
	}
	if s.Status() != Unlocking {
		t.Fatalf("expected unlocking, got %s", s.Status())
	}
	if cues.clicks != 3 || cues.unlocks != 1 || view.reveals != 1 {
		t.Fatalf("unexpected cues: clicks=%d unlocks=%d reveals=%d", cues.clicks, cues.unlocks, view.reveals)
	}
	if view.set[1] != 0 {
		t.Fatalf("expected dial 1 rotation synced to 0, got %d", view.set[1])
	}

	// The reveal waits for its start delay.
	s.Frame(2250 + 400)
	if snap := s.Reveal(); snap.Scale != 0 {
		t.Fatalf("expected no progress during delay, got %+v", snap)
	}

	now := int64(2750)
	for i := 0; i < 1000 && s.Status() == Unlocking; i++ {
		s.Frame(now)
		now += 16
	}
	if s.Status() != Unlocked {
		t.Fatalf("expected unlocked after reveal, got %s", s.Status())
	}
	snap := s.Reveal()
	if snap.Cap != 6.0 || snap.Scale != 1.5 {
		t.Fatalf("expected values clamped at their bounds, got %+v", snap)
	}

	stats := s.Stats()
	if stats.Advances != 3 || stats.Taps != 3 || stats.UnlockedMs != 2250 || stats.StartedMs != 1000 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.RunID == "" {
		t.Fatalf("expected a run id")
	}
}

func TestSessionCooldownAcrossDials(t *testing.T) {
	s, _, cues := newTestSession(t, []string{"A", "B", "C"}, []string{"B", "A"}, []int{2, 2})
	tap(s, 50, 50, 1000)
	tap(s, 150, 50, 1200)
	if got := s.Positions(); got[0] != 0 || got[1] != 2 {
		t.Fatalf("expected only the first advance, got %v", got)
	}
	if cues.clicks != 1 {
		t.Fatalf("expected one click, got %d", cues.clicks)
	}
	if s.Stats().CooldownDrops != 1 {
		t.Fatalf("expected one cooldown drop, got %+v", s.Stats())
	}
}

func TestSessionMissDoesNotConsumeCooldown(t *testing.T) {
	s, _, _ := newTestSession(t, []string{"A", "B", "C"}, []string{"B", "A"}, []int{2, 2})
	tap(s, 900, 50, 1000)
	tap(s, 50, 50, 1100)
	if got := s.Positions(); got[0] != 0 {
		t.Fatalf("expected advance after a miss, got %v", got)
	}
	if s.Stats().Misses != 1 {
		t.Fatalf("expected one miss, got %+v", s.Stats())
	}
}

// staleView reports a hit on a fixed id whether or not that dial exists.
type staleView struct {
	recordView
	id DialID
}

func (v *staleView) HitTestDials(float64, float64) (DialID, bool) {
	return v.id, true
}

func TestSessionOutOfRangeHitIsMiss(t *testing.T) {
	a := mustAlphabet(t, "A", "B", "C")
	c := mustCode(t, a, "B", "A")
	for _, id := range []DialID{2, -1} {
		r, err := NewRegistryAt(a, c, []int{2, 2})
		if err != nil {
			t.Fatalf("registry: %v", err)
		}
		view := &staleView{id: id}
		cues := &recordCues{}
		s, err := NewSession(c, r, view, cues, DefaultOptions())
		if err != nil {
			t.Fatalf("session: %v", err)
		}
		if out := tap(s, 50, 50, 1000); out != gesture.Tap {
			t.Fatalf("id %d: expected tap, got %s", id, out)
		}
		if got := s.Positions(); got[0] != 2 || got[1] != 2 {
			t.Fatalf("id %d: expected no advance, got %v", id, got)
		}
		if cues.clicks != 0 {
			t.Fatalf("id %d: expected no click, got %d", id, cues.clicks)
		}
		st := s.Stats()
		if st.Misses != 1 || st.Advances != 0 || st.CooldownDrops != 0 {
			t.Fatalf("id %d: unexpected stats %+v", id, st)
		}

		view.id = 0
		tap(s, 50, 50, 1100)
		if got := s.Positions(); got[0] != 0 {
			t.Fatalf("id %d: expected the miss to leave the cooldown open, got %v", id, got)
		}
	}
}

func TestSessionDragNeverAdvances(t *testing.T) {
	s, view, cues := newTestSession(t, []string{"A", "B", "C"}, []string{"B", "A"}, []int{2, 2})
	s.PointerDown(gesture.Sample{X: 50, Y: 50, TimestampMs: 1000})
	s.PointerMove(gesture.Sample{X: 60, Y: 50, TimestampMs: 1020})
	s.PointerMove(gesture.Sample{X: 50, Y: 50, TimestampMs: 1040})
	out := s.PointerUp(gesture.Sample{X: 50, Y: 50, TimestampMs: 1060})
	if out != gesture.Drag {
		t.Fatalf("expected drag, got %s", out)
	}
	if cues.clicks != 0 {
		t.Fatalf("expected no advance, got %d clicks", cues.clicks)
	}
	if len(view.rotations) != 2 {
		t.Fatalf("expected two view rotations, got %d", len(view.rotations))
	}
	if math.Abs(view.rotations[0].Yaw-0.1) > 1e-9 || view.rotations[0].Pitch != 0 {
		t.Fatalf("unexpected rotation: %+v", view.rotations[0])
	}
}

func TestSessionIgnoresInputAfterUnlock(t *testing.T) {
	s, view, cues := newTestSession(t, []string{"A", "B"}, []string{"B"}, []int{0})
	tap(s, 50, 50, 1000)
	if s.Status() != Unlocking {
		t.Fatalf("expected unlocking, got %s", s.Status())
	}
	s.PointerDown(gesture.Sample{X: 50, Y: 50, TimestampMs: 2000})
	s.PointerMove(gesture.Sample{X: 90, Y: 50, TimestampMs: 2010})
	if out := s.PointerUp(gesture.Sample{X: 50, Y: 50, TimestampMs: 2020}); out != gesture.None {
		t.Fatalf("expected input to be ignored, got %s", out)
	}
	if len(view.rotations) != 0 || cues.clicks != 1 {
		t.Fatalf("expected no effects after unlock")
	}
}

func TestSessionUpWithoutDownIsIgnored(t *testing.T) {
	s, _, cues := newTestSession(t, []string{"A", "B"}, []string{"B"}, []int{0})
	if out := s.PointerUp(gesture.Sample{X: 50, Y: 50, TimestampMs: 10}); out != gesture.None {
		t.Fatalf("expected none, got %s", out)
	}
	if cues.clicks != 0 {
		t.Fatalf("expected no advance")
	}
}

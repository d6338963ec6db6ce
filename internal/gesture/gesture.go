// Package gesture tells a tap from a drag in a stream of pointer samples.
package gesture

import "math"

// Sample is one pointer position, in pixels, at a monotonic time.
// Mouse and touch input are both converted to this before classification.
type Sample struct {
	X           float64
	Y           float64
	TimestampMs int64
}

// Outcome is the verdict for one down→up sequence.
type Outcome int

const (
	// None means there was no gesture to classify.
	None Outcome = iota
	Tap
	Drag
)

func (o Outcome) String() string {
	switch o {
	case Tap:
		return "tap"
	case Drag:
		return "drag"
	default:
		return "none"
	}
}

// Thresholds tune the classifier.
type Thresholds struct {
	DragPx        float64 // per-axis movement that turns a press into a drag
	TapWindowMs   int64   // a tap must be released before this
	TapDistancePx float64 // and closer than this to where it started
	RotateScale   float64 // radians of view rotation per pixel dragged
}

// DefaultThresholds returns the stock tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DragPx:        2,
		TapWindowMs:   300,
		TapDistancePx: 5,
		RotateScale:   0.01,
	}
}

// Rotation is a view rotation produced while dragging.
type Rotation struct {
	Yaw   float64
	Pitch float64
}

// Classifier tracks a single pointer.
type Classifier struct {
	th       Thresholds
	down     bool
	dragging bool
	start    Sample
	last     Sample
}

// NewClassifier returns a classifier with the given thresholds.
func NewClassifier(th Thresholds) *Classifier {
	return &Classifier{th: th}
}

func (c *Classifier) active() bool {
	return c.down
}

// Down starts a gesture.
func (c *Classifier) Down(s Sample) {
	c.down = true
	c.dragging = false
	c.start = s
	c.last = s
}

// Move reports a view rotation once the pointer has moved past the drag
// threshold since the last reported position. Motion below the threshold
// accumulates until it crosses it.
func (c *Classifier) Move(s Sample) (Rotation, bool) {
	if !c.active() {
		return Rotation{}, false
	}
	dx := s.X - c.last.X
	dy := s.Y - c.last.Y
	if math.Abs(dx) <= c.th.DragPx && math.Abs(dy) <= c.th.DragPx {
		return Rotation{}, false
	}
	c.dragging = true
	c.last = s
	return Rotation{Yaw: dx * c.th.RotateScale, Pitch: dy * c.th.RotateScale}, true
}

// Up ends the gesture and classifies it.
func (c *Classifier) Up(s Sample) Outcome {
	if !c.active() {
		return None
	}
	dragging := c.dragging
	start := c.start
	c.down = false
	c.dragging = false

	elapsed := s.TimestampMs - start.TimestampMs
	distance := math.Hypot(s.X-start.X, s.Y-start.Y)
	if !dragging && elapsed < c.th.TapWindowMs && distance < c.th.TapDistancePx {
		return Tap
	}
	return Drag
}

// Cancel abandons the current gesture without an outcome.
func (c *Classifier) Cancel() {
	c.down = false
	c.dragging = false
}

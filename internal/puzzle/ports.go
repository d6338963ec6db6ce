package puzzle

// View is the rendering side of the cryptex. The session calls it but never
// implements any geometry itself.
type View interface {
	// Rotate turns the whole object by the given yaw and pitch deltas.
	Rotate(deltaYaw, deltaPitch float64)
	// HitTestDials returns the front-most dial under the screen point.
	HitTestDials(x, y float64) (DialID, bool)
	// SetDialRotation shows a dial at the given alphabet position.
	SetDialRotation(id DialID, position int)
	// StartReveal begins drawing the opening sequence.
	StartReveal()
}

// Cues plays fire-and-forget sounds.
type Cues interface {
	PlayClick()
	PlayUnlock()
}

// NopView ignores every request and hits nothing.
type NopView struct{}

func (NopView) Rotate(float64, float64)                      {}
func (NopView) HitTestDials(float64, float64) (DialID, bool) { return 0, false }
func (NopView) SetDialRotation(DialID, int)                  {}
func (NopView) StartReveal()                                 {}

// NopCues is a silent Cues.
type NopCues struct{}

func (NopCues) PlayClick()  {}
func (NopCues) PlayUnlock() {}

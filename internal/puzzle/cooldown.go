package puzzle

// DefaultCooldownMs is the minimum spacing between accepted dial advances.
const DefaultCooldownMs = 500

// Gate spaces accepted dial advances across the whole puzzle, not per dial.
type Gate struct {
	intervalMs     int64
	lastAcceptedMs int64
	accepted       bool
}

// NewGate returns a gate with the given interval. Non-positive intervals
// fall back to DefaultCooldownMs.
func NewGate(intervalMs int64) *Gate {
	if intervalMs <= 0 {
		intervalMs = DefaultCooldownMs
	}
	return &Gate{intervalMs: intervalMs}
}

// TryAccept reports whether an advance at nowMs may proceed and, if so,
// restarts the cooldown from nowMs.
func (g *Gate) TryAccept(nowMs int64) bool {
	if g.accepted && nowMs-g.lastAcceptedMs < g.intervalMs {
		return false
	}
	g.accepted = true
	g.lastAcceptedMs = nowMs
	return true
}

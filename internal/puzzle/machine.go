package puzzle

import "fmt"

// Status is the lock state. It only ever moves forward.
type Status int

const (
	Locked Status = iota
	Unlocking
	Unlocked
)

func (s Status) String() string {
	switch s {
	case Locked:
		return "locked"
	case Unlocking:
		return "unlocking"
	case Unlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// Machine owns the lock status and is the only writer of dial positions.
type Machine struct {
	code   Code
	dials  *Registry
	view   View
	cues   Cues
	status Status
}

// NewMachine returns a locked machine over the given dials. The code must
// name exactly one symbol per dial.
func NewMachine(code Code, dials *Registry, view View, cues Cues) (*Machine, error) {
	if dials == nil {
		return nil, fmt.Errorf("%w: no dials", ErrInvalidConfig)
	}
	if dials.Len() != code.Len() {
		return nil, fmt.Errorf("%w: code has %d symbols for %d dials", ErrInvalidConfig, code.Len(), dials.Len())
	}
	if view == nil {
		view = NopView{}
	}
	if cues == nil {
		cues = NopCues{}
	}
	return &Machine{code: code, dials: dials, view: view, cues: cues}, nil
}

// Status returns the current lock status.
func (m *Machine) Status() Status {
	return m.status
}

// Dials exposes the registry for read access.
func (m *Machine) Dials() *Registry {
	return m.dials
}

// AdvanceDial turns a dial one symbol forward and re-checks the code.
// Stale input (unknown dial, or a lock that is no longer Locked) is ignored.
func (m *Machine) AdvanceDial(id DialID) bool {
	if m.status != Locked || !m.dials.Valid(id) {
		return false
	}
	pos := m.dials.advance(id)
	m.view.SetDialRotation(id, pos)
	m.cues.PlayClick()
	if m.CheckCode() {
		m.unlock()
	}
	return true
}

// CheckCode reports whether every dial shows its secret symbol.
func (m *Machine) CheckCode() bool {
	for i := 0; i < m.code.Len(); i++ {
		pos, _ := m.dials.Position(DialID(i))
		if pos != m.code.Position(i) {
			return false
		}
	}
	return true
}

// CompleteReveal finishes the opening sequence.
func (m *Machine) CompleteReveal() bool {
	if m.status != Unlocking {
		return false
	}
	m.status = Unlocked
	return true
}

func (m *Machine) unlock() {
	if m.status != Locked {
		return
	}
	m.status = Unlocking
	m.cues.PlayUnlock()
	m.view.StartReveal()
}

package puzzle

import "fmt"

// DialID identifies a dial, 0..N-1 from left to right.
type DialID int

// Source yields uniform integers in [0, n).
type Source interface {
	Intn(n int) int
}

// Registry is the fixed, ordered set of dials and their alphabet positions.
// The visible symbol is always derived from the position.
type Registry struct {
	alphabet  Alphabet
	positions []int
}

// NewRegistry places every dial at a random position other than its secret one.
func NewRegistry(alphabet Alphabet, code Code, rng Source) (*Registry, error) {
	if err := codeFits(alphabet, code); err != nil {
		return nil, err
	}
	positions := make([]int, code.Len())
	for i := range positions {
		// Draw from the M-1 non-secret positions and skip over the secret one.
		pos := rng.Intn(alphabet.Len() - 1)
		if pos >= code.Position(i) {
			pos++
		}
		positions[i] = pos
	}
	return &Registry{alphabet: alphabet, positions: positions}, nil
}

// NewRegistryAt places the dials at explicit positions.
func NewRegistryAt(alphabet Alphabet, code Code, positions []int) (*Registry, error) {
	if err := codeFits(alphabet, code); err != nil {
		return nil, err
	}
	if len(positions) != code.Len() {
		return nil, fmt.Errorf("%w: %d start positions for %d dials", ErrInvalidConfig, len(positions), code.Len())
	}
	r := &Registry{alphabet: alphabet, positions: make([]int, len(positions))}
	for i, pos := range positions {
		if pos < 0 || pos >= alphabet.Len() {
			return nil, fmt.Errorf("%w: start position %d of dial %d out of range [0,%d)", ErrInvalidConfig, pos, i, alphabet.Len())
		}
		if pos == code.Position(i) {
			return nil, fmt.Errorf("%w: dial %d starts on its secret symbol %q", ErrInvalidConfig, i, alphabet.Symbol(pos))
		}
		r.positions[i] = pos
	}
	return r, nil
}

// codeFits rejects a code resolved against a different alphabet.
func codeFits(alphabet Alphabet, code Code) error {
	if alphabet.Len() < 2 {
		return fmt.Errorf("%w: alphabet too small", ErrInvalidConfig)
	}
	if code.Len() == 0 {
		return fmt.Errorf("%w: code is empty", ErrInvalidConfig)
	}
	for i := 0; i < code.Len(); i++ {
		if pos := code.Position(i); pos < 0 || pos >= alphabet.Len() {
			return fmt.Errorf("%w: code position %d of dial %d outside alphabet of %d symbols", ErrInvalidConfig, pos, i, alphabet.Len())
		}
	}
	return nil
}

// Len returns the number of dials.
func (r *Registry) Len() int {
	return len(r.positions)
}

// Valid reports whether id names a dial.
func (r *Registry) Valid(id DialID) bool {
	return id >= 0 && int(id) < len(r.positions)
}

// Position returns the alphabet position of a dial.
func (r *Registry) Position(id DialID) (int, bool) {
	if !r.Valid(id) {
		return 0, false
	}
	return r.positions[id], true
}

// Symbols returns the visible symbols of all dials in order.
func (r *Registry) Symbols() []string {
	out := make([]string, len(r.positions))
	for i, pos := range r.positions {
		out[i] = r.alphabet.Symbol(pos)
	}
	return out
}

// Positions returns a copy of all dial positions.
func (r *Registry) Positions() []int {
	out := make([]int, len(r.positions))
	copy(out, r.positions)
	return out
}

func (r *Registry) advance(id DialID) int {
	r.positions[id] = (r.positions[id] + 1) % r.alphabet.Len()
	return r.positions[id]
}

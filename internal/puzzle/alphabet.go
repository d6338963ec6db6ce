// Package puzzle implements the cryptex lock: dials, code matching, the
// cooldown gate and the session that ties pointer input to dial advances.
package puzzle

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig marks a configuration that cannot produce a solvable puzzle.
var ErrInvalidConfig = errors.New("invalid puzzle configuration")

// DefaultSymbols is the stock dial alphabet.
var DefaultSymbols = []string{"I", "V", "II", "VV", "III", "VVV", "IV", "IVV"}

// DefaultCode is the stock secret, one symbol per dial.
var DefaultCode = []string{"I", "IV", "II", "I"}

// Alphabet is the ordered symbol set every dial cycles through.
type Alphabet struct {
	symbols []string
	index   map[string]int
}

// NewAlphabet validates and copies the symbol list.
func NewAlphabet(symbols []string) (Alphabet, error) {
	if len(symbols) < 2 {
		return Alphabet{}, fmt.Errorf("%w: alphabet needs at least 2 symbols, got %d", ErrInvalidConfig, len(symbols))
	}
	a := Alphabet{
		symbols: make([]string, len(symbols)),
		index:   make(map[string]int, len(symbols)),
	}
	for i, s := range symbols {
		if s == "" {
			return Alphabet{}, fmt.Errorf("%w: alphabet symbol %d is empty", ErrInvalidConfig, i)
		}
		if prev, ok := a.index[s]; ok {
			return Alphabet{}, fmt.Errorf("%w: alphabet symbol %q repeated at %d and %d", ErrInvalidConfig, s, prev, i)
		}
		a.symbols[i] = s
		a.index[s] = i
	}
	return a, nil
}

// Len returns M, the number of symbols.
func (a Alphabet) Len() int {
	return len(a.symbols)
}

// Symbol returns the symbol at position i.
func (a Alphabet) Symbol(i int) string {
	return a.symbols[i]
}

// Index returns the position of a symbol.
func (a Alphabet) Index(symbol string) (int, bool) {
	i, ok := a.index[symbol]
	return i, ok
}

// Symbols returns a copy of the ordered symbols.
func (a Alphabet) Symbols() []string {
	out := make([]string, len(a.symbols))
	copy(out, a.symbols)
	return out
}

// Code is the secret sequence, one alphabet position per dial.
type Code struct {
	positions []int
}

// NewCode resolves each secret symbol against the alphabet.
func NewCode(alphabet Alphabet, symbols []string) (Code, error) {
	if len(symbols) == 0 {
		return Code{}, fmt.Errorf("%w: code is empty", ErrInvalidConfig)
	}
	c := Code{positions: make([]int, len(symbols))}
	for i, s := range symbols {
		pos, ok := alphabet.Index(s)
		if !ok {
			return Code{}, fmt.Errorf("%w: code symbol %q at dial %d is not in the alphabet", ErrInvalidConfig, s, i)
		}
		c.positions[i] = pos
	}
	return c, nil
}

// Len returns N, the number of dials the code expects.
func (c Code) Len() int {
	return len(c.positions)
}

// Position returns the secret alphabet position for dial i.
func (c Code) Position(i int) int {
	return c.positions[i]
}

// Package generator provides the random source for dial start positions.
package generator

import (
	"math/rand"
	"time"
)

// Generator draws uniform integers for the dial registry.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed, for reproducible starts.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Intn returns a uniform integer in [0, n).
func (g *Generator) Intn(n int) int {
	return g.rnd.Intn(n)
}

package generator

import "testing"

func TestNewSeededIsReproducible(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)
	for i := 0; i < 50; i++ {
		x, y := a.Intn(7), b.Intn(7)
		if x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
		if x < 0 || x >= 7 {
			t.Fatalf("draw %d out of range: %d", i, x)
		}
	}
}

package domain

import "testing"

func TestPickInOrder(t *testing.T) {
	pool := []Category{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	picker := PickInOrder()
	for i := 0; i < 3; i++ {
		if got := picker.Pick(pool); got != 0 {
			t.Fatalf("expected front of pool, got %d", got)
		}
		pool = pool[1:]
	}
}

func TestRandomPickerReproducibleForSeed(t *testing.T) {
	pool := []Category{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}

	first := drawSequence(NewRandomPicker(42), pool)
	second := drawSequence(NewRandomPicker(42), pool)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("same seed produced different draws: %v vs %v", first, second)
		}
	}
}

func TestRandomPickerStaysInBounds(t *testing.T) {
	picker := NewRandomPicker(7)
	pool := []Category{{ID: "a"}, {ID: "b"}}
	for i := 0; i < 100; i++ {
		if got := picker.Pick(pool); got < 0 || got >= len(pool) {
			t.Fatalf("pick out of bounds: %d", got)
		}
	}
}

func drawSequence(picker CategoryPicker, pool []Category) []int {
	draws := make([]int, 0, len(pool))
	remaining := append([]Category(nil), pool...)
	for len(remaining) > 0 {
		idx := picker.Pick(remaining)
		draws = append(draws, idx)
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return draws
}

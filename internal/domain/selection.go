package domain

import "math/rand"

// CategoryPicker selects the index of the next category to play from the
// remaining pool. Implementations must be deterministic for a fixed seed so
// tests can pin the round order.
type CategoryPicker interface {
	Pick(pool []Category) int
}

type inOrderPicker struct{}

// PickInOrder returns a picker that always plays the pool front to back.
func PickInOrder() CategoryPicker {
	return inOrderPicker{}
}

func (inOrderPicker) Pick([]Category) int {
	return 0
}

type randomPicker struct {
	rnd *rand.Rand
}

// NewRandomPicker returns a seedable picker that draws the next category
// uniformly from the remaining pool.
func NewRandomPicker(seed int64) CategoryPicker {
	return &randomPicker{rnd: rand.New(rand.NewSource(seed))}
}

func (p *randomPicker) Pick(pool []Category) int {
	if len(pool) == 0 {
		return 0
	}
	return p.rnd.Intn(len(pool))
}

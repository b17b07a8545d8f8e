package engine

import "math/rand"

// RNG is a seedable random source that counts every draw it makes.
// A saved game stores the seed and the draw count; replaying that many
// draws on a fresh source lands on the identical stream state, so
// chance outcomes after a load match the ones before the save.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewRNG returns a fresh source seeded deterministically.
func NewRNG(seed int64) *RNG {
	return &RNG{seed: seed, src: rand.New(rand.NewSource(seed))}
}

// Chance reports a hit with the given percentage probability.
// Chance(0) never hits and Chance(100) always does.
func (r *RNG) Chance(percent int) bool {
	r.pos++
	return r.src.Intn(100) < percent
}

// Pick returns a uniform index in [0, n).
func (r *RNG) Pick(n int) int {
	r.pos++
	return r.src.Intn(n)
}

// Seed returns the seed this source was created with.
func (r *RNG) Seed() int64 { return r.seed }

// Position returns how many draws have been made since creation.
func (r *RNG) Position() int64 { return r.pos }

// RestoreRNG rebuilds a source from a saved seed and draw count.
func RestoreRNG(seed, position int64) *RNG {
	r := NewRNG(seed)
	for ; r.pos < position; r.pos++ {
		r.src.Int63()
	}
	return r
}

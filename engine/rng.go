package engine

import "math/rand"

// Source is the randomness the RNG draws from. *rand.Rand satisfies it;
// tests may supply a scripted source.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// RNG wraps a Source with position tracking.
// Position increments with every draw.
type RNG struct {
	seed int64
	src  Source
	pos  int64
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// NewRNGFromSource creates an RNG that draws from src.
func NewRNGFromSource(src Source) *RNG {
	return &RNG{src: src}
}

// IntRange returns a uniformly random integer in [min, max].
func (r *RNG) IntRange(min, max int) int {
	r.pos++
	if max <= min {
		return min
	}
	return min + r.src.Intn(max-min+1)
}

// Float returns a uniformly random float in [0, 1).
func (r *RNG) Float() float64 {
	r.pos++
	return r.src.Float64()
}

// Chance returns true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.Float() < p
}

// Pick returns a uniformly random index in [0, n). n must be positive.
func (r *RNG) Pick(n int) int {
	r.pos++
	return r.src.Intn(n)
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}

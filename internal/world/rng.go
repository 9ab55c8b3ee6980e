package world

import "math/rand"

// Rand is the world's single random source. Every draw consumes exactly one
// value from the underlying generator and is counted, so a save can record
// (seed, draws) and a load can replay the generator to the same position,
// keeping chance predicates and spinners reproducible across save/load.
type Rand struct {
	seed  int64
	draws uint64
	src   *rand.Rand
}

// NewRand creates a seeded source positioned at its first draw.
func NewRand(seed int64) *Rand {
	return &Rand{seed: seed, src: rand.New(rand.NewSource(seed))}
}

// Restore recreates a source and fast-forwards it by the recorded number of
// draws.
func Restore(seed int64, draws uint64) *Rand {
	r := NewRand(seed)
	for i := uint64(0); i < draws; i++ {
		r.src.Uint64()
	}
	r.draws = draws
	return r
}

func (r *Rand) next() uint64 {
	r.draws++
	return r.src.Uint64()
}

// Intn draws an int in [0, n). n must be positive. The tiny modulo bias is
// irrelevant at game scale and keeps the draw count exact.
func (r *Rand) Intn(n int) int {
	return int(r.next() % uint64(n))
}

// Float64 draws a float in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.next()>>11) / (1 << 53)
}

func (r *Rand) Seed() int64   { return r.seed }
func (r *Rand) Draws() uint64 { return r.draws }

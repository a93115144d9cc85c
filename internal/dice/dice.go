// Package dice provides the authoritative die source. Rolls happen only
// on the server; a value is revealed to other players exclusively through
// a bluff resolution.
package dice

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// Roller produces fair 1-6 die pairs from a deterministically seeded
// source, so tests can script entire games from a single seed. Not safe
// for concurrent use; each room owns its own Roller behind the room lock.
type Roller struct {
	rng *rand.Rand
}

// New returns a Roller seeded from the provided int64. The two 64-bit PCG
// seeds are derived with a splitmix-style finalizer so nearby input seeds
// still give unrelated sequences.
func New(seed int64) *Roller {
	u := uint64(seed)
	return &Roller{rng: rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))}
}

// Roll returns one pair of die values, each uniform in 1..6.
func (r *Roller) Roll() (int, int) {
	return r.rng.IntN(6) + 1, r.rng.IntN(6) + 1
}

// IntN exposes the underlying source for callers that need a uniform
// value outside the dice range, such as room code generation.
func (r *Roller) IntN(n int) int {
	return r.rng.IntN(n)
}

// Int64 draws a raw value, used to derive per-room seeds.
func (r *Roller) Int64() int64 {
	return r.rng.Int64()
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

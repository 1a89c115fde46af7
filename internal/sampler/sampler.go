// Package sampler provides the seedable no-replacement selection shared by
// ingredient unlocks and selection pool population.
package sampler

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// Source is the uniform random source the sampler draws from
type Source interface {
	IntN(n int) int
	Float64() float64
}

// Sampler draws random subsets from pools
type Sampler struct {
	rng Source
}

// New creates a sampler with a deterministic PCG source derived from seed
func New(seed int64) *Sampler {
	return &Sampler{rng: NewSource(seed)}
}

// NewWithSource creates a sampler backed by an existing source
func NewWithSource(src Source) *Sampler {
	return &Sampler{rng: src}
}

// NewSource builds a PCG generator from seed. Equal seeds yield equal sequences.
func NewSource(seed int64) *rand.Rand {
	// Non-cryptographic PRNG is intentional for deterministic game behavior.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// Source exposes the underlying random source so collaborators share one stream
func (s *Sampler) Source() Source {
	return s.rng
}

// IntN returns a uniform int in [0, n). n <= 0 returns 0.
func (s *Sampler) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rng.IntN(n)
}

// Float64 returns a uniform float in [0, 1)
func (s *Sampler) Float64() float64 {
	return s.rng.Float64()
}

// SampleWithoutReplacement returns min(count, len(pool)) distinct elements of pool.
//
// Elements are removed from a copy of the pool at uniformly random indices until
// the remaining size equals count; the survivors are returned in their original
// relative order. The input slice is never modified.
func SampleWithoutReplacement[T any](s *Sampler, pool []T, count int) []T {
	if count < 0 {
		count = 0
	}
	remaining := make([]T, len(pool))
	copy(remaining, pool)

	for len(remaining) > count {
		idx := s.IntN(len(remaining))
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return remaining
}

// Shuffle permutes items in place
func Shuffle[T any](s *Sampler, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := s.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

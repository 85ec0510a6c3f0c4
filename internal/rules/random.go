package rules

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"

	"github.com/terrain-analyst/internal/domain"
)

// Rand - источник случайности для генераторов; *rand.Rand его реализует
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a PCG generator. Seed 0 draws a random seed.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

func seedWord(seed uint64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// Uniform - равномерное значение в [lo, hi)
func Uniform(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// IntBetween - целое в [lo, hi] включительно
func IntBetween(r Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

func Pick[T any](r Rand, items []T) T {
	return items[r.IntN(len(items))]
}

// Jitter offsets p by up to ±delta degrees on each axis.
func Jitter(r Rand, p domain.LonLat, delta float64) domain.LonLat {
	return p.Offset(Uniform(r, -delta, delta), Uniform(r, -delta, delta))
}

// Sample returns k distinct elements of items in random order.
func Sample[T any](r Rand, items []T, k int) []T {
	if k > len(items) {
		k = len(items)
	}
	pool := make([]T, len(items))
	copy(pool, items)
	for i := 0; i < k; i++ {
		j := i + r.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

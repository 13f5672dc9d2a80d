package generate

import (
	"math/rand/v2"

	"github.com/gyeh/visitmart/internal/catalog"
)

// Stream is the seeded source of every random draw made for one visit.
// A Stream is not safe for concurrent use; each visit gets its own.
type Stream struct {
	r *rand.Rand
}

// NewStream returns the stream for visit index i under seed. Streams for
// different indexes are independent, so visits can be drawn in any order
// (or in parallel) and still come out identical.
func NewStream(seed int64, i int) *Stream {
	return &Stream{r: rand.New(rand.NewPCG(uint64(seed), uint64(i)))}
}

// Float64 returns a uniform draw in [0, 1).
func (s *Stream) Float64() float64 {
	return s.r.Float64()
}

// Uniform returns a uniform draw in [lo, hi).
func (s *Stream) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.r.Float64()
}

// IntRange returns a uniform integer in [lo, hi], both ends inclusive.
func (s *Stream) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.IntN(hi-lo+1)
}

// Bernoulli reports whether a single uniform draw falls below p.
func (s *Stream) Bernoulli(p float64) bool {
	return s.r.Float64() < p
}

// Beta25 draws from Beta(2, 5): the second smallest of six uniforms.
// Always consumes exactly six draws.
func (s *Stream) Beta25() float64 {
	lo, second := 2.0, 2.0
	for range 6 {
		u := s.r.Float64()
		switch {
		case u < lo:
			lo, second = u, lo
		case u < second:
			second = u
		}
	}
	return second
}

// Weighted picks a value from a weight table with one uniform draw.
// Weights need not sum to one.
func (s *Stream) Weighted(table []catalog.Weighted) string {
	var total float64
	for _, w := range table {
		total += w.Weight
	}
	x := s.r.Float64() * total
	var acc float64
	for _, w := range table {
		acc += w.Weight
		if x < acc {
			return w.Value
		}
	}
	return table[len(table)-1].Value
}

// Choice picks one element of xs uniformly. xs must not be empty.
func Choice[T any](s *Stream, xs []T) T {
	return xs[s.r.IntN(len(xs))]
}

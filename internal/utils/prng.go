// internal/utils/prng.go
package utils

import (
	"math/rand"
	"time"
)

// PRNGService wraps a seeded generator so a whole run can be replayed from
// one seed.
type PRNGService struct {
	rng  *rand.Rand
	seed int64
}

// NewPRNGService creates a generator with the given seed. A zero seed means
// the current time.
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNGService{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

func (s *PRNGService) Seed() int64 { return s.seed }

// Intn returns a number in [0, n).
func (s *PRNGService) Intn(n int) int {
	return s.rng.Intn(n)
}

// Float64 returns a number in [0.0, 1.0).
func (s *PRNGService) Float64() float64 {
	return s.rng.Float64()
}

// ChooseWeighted picks an index with probability proportional to its
// weight. It returns -1 for an empty table and 0 when no weight is positive.
func (s *PRNGService) ChooseWeighted(weights []int) int {
	if len(weights) == 0 {
		return -1
	}
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0
	}
	r := s.Intn(total)
	upto := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if upto+w > r {
			return i
		}
		upto += w
	}
	return len(weights) - 1
}

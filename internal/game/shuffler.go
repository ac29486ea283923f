package game

import (
	"golang.org/x/exp/rand"
)

// Shuffler permutes n elements through swap, like rand.Shuffle.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// RandomShuffler shuffles with a seeded pseudo random source. The same seed
// always produces the same permutations.
type RandomShuffler struct {
	rng *rand.Rand
}

// NewRandomShuffler creates a shuffler seeded with seed
func NewRandomShuffler(seed uint64) *RandomShuffler {
	return &RandomShuffler{rng: rand.New(rand.NewSource(seed))}
}

func (s *RandomShuffler) Shuffle(n int, swap func(i, j int)) {
	s.rng.Shuffle(n, swap)
}

// CannedShuffler applies a fixed permutation: position i receives the
// element that was at perm[i]. A permutation of the wrong length leaves the
// order untouched.
type CannedShuffler struct {
	perm []int
}

// NewCannedShuffler creates a shuffler replaying perm
func NewCannedShuffler(perm []int) *CannedShuffler {
	return &CannedShuffler{perm: append([]int(nil), perm...)}
}

func (s *CannedShuffler) Shuffle(n int, swap func(i, j int)) {
	if len(s.perm) != n {
		return
	}
	// current[k] is the original index of the element now at k
	current := make([]int, n)
	where := make([]int, n)
	for i := range current {
		current[i] = i
		where[i] = i
	}
	for target := 0; target < n; target++ {
		want := s.perm[target]
		at := where[want]
		if at == target {
			continue
		}
		swap(target, at)
		moved := current[target]
		current[target], current[at] = want, moved
		where[want], where[moved] = target, at
	}
}

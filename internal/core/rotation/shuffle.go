package rotation

import "math/rand/v2"

// Rand is the randomness source used for shuffling. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Shuffle permutes s in place with Fisher–Yates, walking from the last index
// down to 1 and swapping with a uniform index in [0, i].
func Shuffle[T any](r Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// permutation returns a shuffled [0, n).
func permutation(r Rand, n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	Shuffle(r, p)
	return p
}

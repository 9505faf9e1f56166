package rotation

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/moment/internal/core/quote"
)

func makeQuotes(n int) []quote.Quote {
	quotes := make([]quote.Quote, n)
	for i := range quotes {
		quotes[i] = quote.Quote{Text: fmt.Sprintf("quote %d", i), Author: fmt.Sprintf("author %d", i%7)}
	}
	return quotes
}

func TestChunk_Sizes(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		size  int
		sizes []int
	}{
		{name: "120 by 50", n: 120, size: 50, sizes: []int{50, 50, 20}},
		{name: "exact multiple", n: 100, size: 50, sizes: []int{50, 50}},
		{name: "size larger than collection", n: 10, size: 50, sizes: []int{10}},
		{name: "single quote", n: 1, size: 50, sizes: []int{1}},
		{name: "empty collection", n: 0, size: 50, sizes: []int{0}},
		{name: "non-positive size", n: 3, size: 0, sizes: []int{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Chunk(makeQuotes(tt.n), tt.size)

			got := make([]int, len(chunks))
			for i, c := range chunks {
				got[i] = len(c)
			}
			assert.Equal(t, tt.sizes, got)
		})
	}
}

func TestChunk_PartitionsExactly(t *testing.T) {
	for _, n := range []int{1, 49, 50, 51, 120, 333} {
		quotes := makeQuotes(n)
		chunks := Chunk(quotes, DefaultChunkSize)

		if diff := cmp.Diff(quotes, slices.Concat(chunks...)); diff != "" {
			t.Errorf("n=%d: concatenated chunks differ (-want +got):\n%s", n, diff)
		}
	}
}

func TestChunk_Deterministic(t *testing.T) {
	quotes := makeQuotes(120)
	assert.Equal(t, Chunk(quotes, 50), Chunk(quotes, 50))
}

func TestChunk_DoesNotAliasAcrossChunks(t *testing.T) {
	quotes := makeQuotes(4)
	chunks := Chunk(quotes, 2)

	// Appending to the first chunk must not overwrite the second.
	_ = append(chunks[0], quote.Quote{Text: "extra"})
	assert.Equal(t, "quote 2", chunks[1][0].Text)
}

func TestShuffle_IsPermutation(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for _, n := range []int{0, 1, 2, 10, 100} {
		p := permutation(r, n)
		require.Len(t, p, n)

		sorted := slices.Sorted(slices.Values(p))
		for i, v := range sorted {
			assert.Equal(t, i, v, "n=%d", n)
		}
	}
}

func TestShuffle_CoversAllPermutations(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	counts := map[string]int{}

	const rounds = 6000
	for i := 0; i < rounds; i++ {
		s := []int{0, 1, 2}
		Shuffle(r, s)
		counts[fmt.Sprint(s)]++
	}

	require.Len(t, counts, 6)
	for perm, c := range counts {
		assert.InDelta(t, rounds/6, c, 150, "permutation %s", perm)
	}
}

type fixedRand struct{}

func (fixedRand) IntN(n int) int { return 0 }

func TestShuffle_SwapOrder(t *testing.T) {
	// Always picking index 0 rotates the slice: i=2 swaps 0<->2, i=1 swaps 0<->1.
	s := []string{"a", "b", "c"}
	Shuffle(fixedRand{}, s)
	assert.Equal(t, []string{"b", "c", "a"}, s)
}

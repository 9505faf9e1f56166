// Package rotation hands out quotes in shuffled chunks without repetition
// and keeps the rotation session persisted between runs.
package rotation

import "github.com/hay-kot/moment/internal/core/quote"

// DefaultChunkSize is the number of quotes shuffled together.
const DefaultChunkSize = 50

// Chunk splits quotes into contiguous slices of at most size entries, in
// original order. It always returns at least one chunk; an empty collection
// yields a single empty chunk.
func Chunk(quotes []quote.Quote, size int) [][]quote.Quote {
	if size < 1 {
		size = 1
	}

	if len(quotes) == 0 {
		return [][]quote.Quote{{}}
	}

	chunks := make([][]quote.Quote, 0, (len(quotes)+size-1)/size)
	for i := 0; i < len(quotes); i += size {
		end := min(i+size, len(quotes))
		chunks = append(chunks, quotes[i:end:end])
	}

	return chunks
}

// Package session defines the persisted rotation state and its store contract.
package session

import (
	"slices"
	"time"

	"github.com/hay-kot/moment/internal/core/quote"
)

// DefaultDuration is how long a session stays valid after it starts.
const DefaultDuration = 8 * time.Hour

// Session is the rotation state persisted between runs. Chunk contents are
// derived from the quote collection and are never part of it.
type Session struct {
	StartedAt  int64         `json:"sessionStartTimestamp"`
	ChunkOrder []int         `json:"shuffledChunkIndices"`
	Pointer    int           `json:"currentChunkPointer"`
	Remaining  []quote.Quote `json:"currentQuotes"`
}

// StartTime returns StartedAt as a time.Time.
func (s Session) StartTime() time.Time {
	return time.UnixMilli(s.StartedAt)
}

// IsEmpty reports whether the session has no chunk order to rotate through.
func (s Session) IsEmpty() bool {
	return len(s.ChunkOrder) == 0
}

// Expired reports whether now is more than d past the session start.
func (s Session) Expired(now time.Time, d time.Duration) bool {
	return now.UnixMilli()-s.StartedAt > d.Milliseconds()
}

// Exhausted reports whether every chunk in the order has been loaded.
func (s Session) Exhausted() bool {
	return s.Pointer >= len(s.ChunkOrder)
}

// Compatible reports whether the session can rotate over numChunks chunks:
// ChunkOrder must be a permutation of [0, numChunks) and Pointer in range.
func (s Session) Compatible(numChunks int) bool {
	if len(s.ChunkOrder) != numChunks {
		return false
	}
	if s.Pointer < 0 || s.Pointer > numChunks {
		return false
	}

	seen := make([]bool, numChunks)
	for _, idx := range s.ChunkOrder {
		if idx < 0 || idx >= numChunks || seen[idx] {
			return false
		}
		seen[idx] = true
	}

	return true
}

// Clone returns a deep copy of the session.
func (s Session) Clone() Session {
	s.ChunkOrder = slices.Clone(s.ChunkOrder)
	s.Remaining = slices.Clone(s.Remaining)
	return s
}

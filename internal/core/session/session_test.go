package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hay-kot/moment/internal/core/quote"
)

func TestSession_Expired(t *testing.T) {
	start := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	s := Session{StartedAt: start.UnixMilli()}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "fresh", now: start, want: false},
		{name: "exactly at duration", now: start.Add(DefaultDuration), want: false},
		{name: "one ms past duration", now: start.Add(DefaultDuration + time.Millisecond), want: true},
		{name: "a day later", now: start.Add(24 * time.Hour), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Expired(tt.now, DefaultDuration))
		})
	}
}

func TestSession_Compatible(t *testing.T) {
	tests := []struct {
		name      string
		s         Session
		numChunks int
		want      bool
	}{
		{name: "valid permutation", s: Session{ChunkOrder: []int{2, 0, 1}, Pointer: 1}, numChunks: 3, want: true},
		{name: "pointer at end", s: Session{ChunkOrder: []int{0}, Pointer: 1}, numChunks: 1, want: true},
		{name: "length mismatch", s: Session{ChunkOrder: []int{0, 1}}, numChunks: 3, want: false},
		{name: "duplicate index", s: Session{ChunkOrder: []int{0, 0, 1}}, numChunks: 3, want: false},
		{name: "index out of range", s: Session{ChunkOrder: []int{0, 1, 3}}, numChunks: 3, want: false},
		{name: "negative pointer", s: Session{ChunkOrder: []int{0}, Pointer: -1}, numChunks: 1, want: false},
		{name: "pointer past end", s: Session{ChunkOrder: []int{0}, Pointer: 2}, numChunks: 1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.Compatible(tt.numChunks))
		})
	}
}

func TestSession_Clone(t *testing.T) {
	s := Session{
		StartedAt:  1,
		ChunkOrder: []int{1, 0},
		Remaining:  []quote.Quote{{Text: "a"}},
	}

	c := s.Clone()
	c.ChunkOrder[0] = 9
	c.Remaining[0].Text = "changed"

	assert.Equal(t, 1, s.ChunkOrder[0])
	assert.Equal(t, "a", s.Remaining[0].Text)
}

func TestSession_Exhausted(t *testing.T) {
	assert.True(t, Session{}.Exhausted())
	assert.False(t, Session{ChunkOrder: []int{0, 1}, Pointer: 1}.Exhausted())
	assert.True(t, Session{ChunkOrder: []int{0, 1}, Pointer: 2}.Exhausted())
	assert.True(t, Session{}.IsEmpty())
}

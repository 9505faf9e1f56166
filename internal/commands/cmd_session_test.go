package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hay-kot/moment/internal/core/quote"
	"github.com/hay-kot/moment/internal/core/session"
)

func TestDescribeSession(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	sess := session.Session{
		StartedAt:  now.Add(-9 * time.Hour).UnixMilli(),
		ChunkOrder: []int{2, 0, 1},
		Pointer:    2,
		Remaining:  []quote.Quote{{Text: "a"}, {Text: "b"}},
	}

	info := describeSession(sess, true, 8*time.Hour, now)

	assert.True(t, info.Present)
	assert.True(t, info.Expired)
	assert.Equal(t, 3, info.Chunks)
	assert.Equal(t, 2, info.Pointer)
	assert.Equal(t, 2, info.Remaining)
	assert.True(t, info.ExpiresAt.Equal(now.Add(-time.Hour)))

	assert.False(t, describeSession(session.Session{}, true, 8*time.Hour, now).Present)
	assert.False(t, describeSession(sess, false, 8*time.Hour, now).Present)
}

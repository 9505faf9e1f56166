package rotation

import (
	"context"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/moment/internal/core/quote"
	"github.com/hay-kot/moment/internal/core/session"
)

// memStore is an in-memory session.Store that records saves.
type memStore struct {
	sess  session.Session
	ok    bool
	saves int
}

func (m *memStore) Load(context.Context) (session.Session, bool) {
	return m.sess.Clone(), m.ok
}

func (m *memStore) Save(_ context.Context, s session.Session) error {
	m.sess = s.Clone()
	m.ok = true
	m.saves++
	return nil
}

func (m *memStore) Clear(context.Context) error {
	m.sess, m.ok = session.Session{}, false
	return nil
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func newTestEngine(quotes []quote.Quote, store session.Store, clock *fakeClock, seed uint64) *Engine {
	return New(quotes, store,
		WithClock(clock.Now),
		WithRand(rand.New(rand.NewPCG(seed, seed+1))),
	)
}

func TestEngine_StartNewSession(t *testing.T) {
	store := &memStore{}
	clock := newClock()
	e := newTestEngine(makeQuotes(120), store, clock, 1)

	e.StartNewSession(context.Background())
	s := e.Session()

	assert.Equal(t, clock.Now().UnixMilli(), s.StartedAt)
	assert.True(t, s.Compatible(3), "chunk order must be a permutation of [0, 3)")
	assert.Equal(t, 1, s.Pointer, "first chunk is loaded immediately")

	first := Chunk(makeQuotes(120), DefaultChunkSize)[s.ChunkOrder[0]]
	assert.ElementsMatch(t, first, s.Remaining)
	assert.Equal(t, 1, store.saves)
}

func TestEngine_DrawsEveryQuoteOnceBeforeRepeating(t *testing.T) {
	quotes := makeQuotes(120)
	store := &memStore{}
	e := newTestEngine(quotes, store, newClock(), 3)
	ctx := context.Background()

	e.StartNewSession(ctx)

	seen := map[quote.Quote]int{}
	for i := 0; i < len(quotes); i++ {
		q, err := e.DrawNext(ctx)
		require.NoError(t, err)
		seen[q]++
	}

	assert.Len(t, seen, len(quotes))
	for q, n := range seen {
		assert.Equal(t, 1, n, "quote %q drawn %d times", q.Text, n)
	}
}

func TestEngine_NoRepeatWithinChunk(t *testing.T) {
	quotes := makeQuotes(50)
	e := newTestEngine(quotes, &memStore{}, newClock(), 5)
	ctx := context.Background()

	e.StartNewSession(ctx)

	seen := map[string]bool{}
	for range 50 {
		q, err := e.DrawNext(ctx)
		require.NoError(t, err)
		require.False(t, seen[q.Text], "repeat of %q inside chunk", q.Text)
		seen[q.Text] = true
	}
	assert.Empty(t, e.Session().Remaining)
}

func TestEngine_ChunkRolloverFollowsOrder(t *testing.T) {
	quotes := makeQuotes(120)
	chunks := Chunk(quotes, DefaultChunkSize)
	e := newTestEngine(quotes, &memStore{}, newClock(), 9)
	ctx := context.Background()

	e.StartNewSession(ctx)
	order := e.Session().ChunkOrder

	for _, idx := range order {
		var drawn []quote.Quote
		for range chunks[idx] {
			q, err := e.DrawNext(ctx)
			require.NoError(t, err)
			drawn = append(drawn, q)
		}
		assert.ElementsMatch(t, chunks[idx], drawn)
	}

	assert.Equal(t, order, e.Session().ChunkOrder, "order is fixed for the life of the session")
	assert.Equal(t, len(order), e.Session().Pointer)
}

func TestEngine_ExhaustionStartsNewSession(t *testing.T) {
	quotes := makeQuotes(120)
	clock := newClock()
	e := newTestEngine(quotes, &memStore{}, clock, 11)
	ctx := context.Background()

	e.StartNewSession(ctx)
	before := e.Session()

	for range quotes {
		_, err := e.DrawNext(ctx)
		require.NoError(t, err)
	}

	clock.Advance(time.Minute)
	_, err := e.DrawNext(ctx)
	require.NoError(t, err)

	after := e.Session()
	assert.Greater(t, after.StartedAt, before.StartedAt)
	assert.Equal(t, 1, after.Pointer)
	assert.True(t, after.Compatible(3))
	assert.Len(t, after.Remaining, len(Chunk(quotes, DefaultChunkSize)[after.ChunkOrder[0]])-1)
}

func TestEngine_NewSessionTimestampStrictlyIncreases(t *testing.T) {
	// The clock never moves; the new session must still be newer.
	clock := newClock()
	e := newTestEngine(makeQuotes(2), &memStore{}, clock, 13)
	ctx := context.Background()

	e.StartNewSession(ctx)
	first := e.Session().StartedAt

	for range 2 {
		_, err := e.DrawNext(ctx)
		require.NoError(t, err)
	}
	_, err := e.DrawNext(ctx)
	require.NoError(t, err)

	assert.Greater(t, e.Session().StartedAt, first)
}

func TestEngine_Resume(t *testing.T) {
	quotes := makeQuotes(120)
	clock := newClock()
	now := clock.Now()

	valid := session.Session{
		StartedAt:  now.Add(-time.Hour).UnixMilli(),
		ChunkOrder: []int{2, 0, 1},
		Pointer:    2,
		Remaining:  []quote.Quote{quotes[3], quotes[7]},
	}

	tests := []struct {
		name    string
		stored  *session.Session
		resumed bool
	}{
		{name: "no stored session", stored: nil, resumed: false},
		{name: "valid session", stored: &valid, resumed: true},
		{
			name: "exactly eight hours old",
			stored: func() *session.Session {
				s := valid.Clone()
				s.StartedAt = now.Add(-session.DefaultDuration).UnixMilli()
				return &s
			}(),
			resumed: true,
		},
		{
			name: "expired session",
			stored: func() *session.Session {
				s := valid.Clone()
				s.StartedAt = now.Add(-session.DefaultDuration - time.Millisecond).UnixMilli()
				return &s
			}(),
			resumed: false,
		},
		{
			name:    "empty session",
			stored:  &session.Session{StartedAt: now.UnixMilli()},
			resumed: false,
		},
		{
			name: "chunk order from a different collection",
			stored: func() *session.Session {
				s := valid.Clone()
				s.ChunkOrder = []int{0, 1}
				return &s
			}(),
			resumed: false,
		},
		{
			name: "remaining quote not in collection",
			stored: func() *session.Session {
				s := valid.Clone()
				s.Remaining = []quote.Quote{{Text: "gone"}}
				return &s
			}(),
			resumed: false,
		},
		{
			name: "remaining quote from another chunk",
			stored: func() *session.Session {
				s := valid.Clone()
				s.Remaining = []quote.Quote{quotes[3], quotes[60]}
				return &s
			}(),
			resumed: false,
		},
		{
			name: "remaining quote repeated",
			stored: func() *session.Session {
				s := valid.Clone()
				s.Remaining = []quote.Quote{quotes[3], quotes[3]}
				return &s
			}(),
			resumed: false,
		},
		{
			name: "remaining quotes before any chunk loaded",
			stored: func() *session.Session {
				s := valid.Clone()
				s.Pointer = 0
				return &s
			}(),
			resumed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{}
			if tt.stored != nil {
				store.sess, store.ok = tt.stored.Clone(), true
			}

			e := newTestEngine(quotes, store, clock, 17)
			e.Resume(context.Background())

			got := e.Session()
			if tt.resumed {
				assert.Equal(t, *tt.stored, got)
				assert.Zero(t, store.saves)
				return
			}

			assert.Equal(t, now.UnixMilli(), got.StartedAt, "fresh session expected")
			assert.Equal(t, 1, got.Pointer)
			assert.True(t, got.Compatible(3))
		})
	}
}

func TestEngine_ResumeContinuesWhereItLeftOff(t *testing.T) {
	quotes := makeQuotes(120)
	store := &memStore{}
	clock := newClock()
	ctx := context.Background()

	first := newTestEngine(quotes, store, clock, 19)
	first.Resume(ctx)

	var drawn []quote.Quote
	for range 10 {
		q, err := first.DrawNext(ctx)
		require.NoError(t, err)
		drawn = append(drawn, q)
	}

	clock.Advance(time.Hour)
	second := newTestEngine(quotes, store, clock, 23)
	second.Resume(ctx)

	assert.Equal(t, first.Session(), second.Session())

	for range 110 {
		q, err := second.DrawNext(ctx)
		require.NoError(t, err)
		assert.False(t, slices.Contains(drawn, q), "quote %q repeated after reload", q.Text)
		drawn = append(drawn, q)
	}
}

func TestEngine_PersistsEveryDraw(t *testing.T) {
	store := &memStore{}
	e := newTestEngine(makeQuotes(5), store, newClock(), 29)
	ctx := context.Background()

	e.StartNewSession(ctx)
	saves := store.saves

	for i := 1; i <= 3; i++ {
		_, err := e.DrawNext(ctx)
		require.NoError(t, err)
		assert.Equal(t, saves+i, store.saves)
		assert.Equal(t, e.Session(), store.sess)
	}
}

func TestEngine_EmptyCollection(t *testing.T) {
	e := newTestEngine(nil, &memStore{}, newClock(), 31)
	ctx := context.Background()

	assert.Equal(t, 1, e.NumChunks())

	e.Resume(ctx)
	assert.ErrorIs(t, e.EnsureBuffer(ctx), ErrNoQuotes)

	_, err := e.DrawNext(ctx)
	assert.ErrorIs(t, err, ErrNoQuotes)
}

func TestEngine_EmptyCollectionIsNotPersisted(t *testing.T) {
	store := &memStore{}
	e := newTestEngine(nil, store, newClock(), 31)
	ctx := context.Background()

	e.Resume(ctx)
	_, err := e.DrawNext(ctx)
	require.ErrorIs(t, err, ErrNoQuotes)

	assert.Zero(t, store.saves)
	assert.False(t, store.ok)
}

func TestEngine_SingleQuote(t *testing.T) {
	only := quote.Quote{Text: "only", Author: "me"}
	e := newTestEngine([]quote.Quote{only}, &memStore{}, newClock(), 37)
	ctx := context.Background()

	e.Resume(ctx)
	for range 5 {
		q, err := e.DrawNext(ctx)
		require.NoError(t, err)
		assert.Equal(t, only, q)
	}
}

func TestEngine_DeterministicWithSeed(t *testing.T) {
	quotes := makeQuotes(120)
	ctx := context.Background()

	draw := func() []quote.Quote {
		e := newTestEngine(quotes, &memStore{}, newClock(), 41)
		e.StartNewSession(ctx)
		var out []quote.Quote
		for range 60 {
			q, err := e.DrawNext(ctx)
			require.NoError(t, err)
			out = append(out, q)
		}
		return out
	}

	assert.Equal(t, draw(), draw())
}

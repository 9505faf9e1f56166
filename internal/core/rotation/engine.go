package rotation

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/moment/internal/core/quote"
	"github.com/hay-kot/moment/internal/core/session"
)

// ErrNoQuotes is returned when no quote can be drawn even after rollover.
var ErrNoQuotes = errors.New("no quotes available")

// Option configures an Engine.
type Option func(*Engine)

// WithChunkSize sets the number of quotes per chunk.
func WithChunkSize(n int) Option {
	return func(e *Engine) { e.chunkSize = n }
}

// WithSessionDuration sets how long a stored session may be resumed.
func WithSessionDuration(d time.Duration) Option {
	return func(e *Engine) { e.duration = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRand sets the shuffling source.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithLogger sets the engine logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// Engine owns the rotation session for one quote collection. It is not safe
// for concurrent use.
type Engine struct {
	quotes    []quote.Quote
	chunks    [][]quote.Quote
	store     session.Store
	sess      session.Session
	chunkSize int
	duration  time.Duration
	now       func() time.Time
	rng       Rand
	log       zerolog.Logger
}

// New creates an engine for quotes. The session is empty until Resume or
// StartNewSession is called.
func New(quotes []quote.Quote, store session.Store, opts ...Option) *Engine {
	e := &Engine{
		quotes:    quotes,
		store:     store,
		chunkSize: DefaultChunkSize,
		duration:  session.DefaultDuration,
		now:       time.Now,
		rng:       globalRand{},
		log:       zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.chunks = Chunk(e.quotes, e.chunkSize)
	return e
}

// NumChunks returns how many chunks the collection splits into.
func (e *Engine) NumChunks() int {
	return len(e.chunks)
}

// Session returns a copy of the current session.
func (e *Engine) Session() session.Session {
	return e.sess.Clone()
}

// Resume continues the stored session when it is present, unexpired and
// matches the collection, including the quotes still buffered. Any other
// stored state is replaced by a new session.
func (e *Engine) Resume(ctx context.Context) {
	stored, ok := e.store.Load(ctx)

	switch {
	case !ok:
		e.log.Debug().Msg("no stored session")
	case stored.IsEmpty():
		e.log.Debug().Msg("stored session is empty")
	case stored.Expired(e.now(), e.duration):
		e.log.Debug().Time("started_at", stored.StartTime()).Msg("stored session expired")
	case !stored.Compatible(len(e.chunks)):
		e.log.Debug().Int("chunks", len(e.chunks)).Msg("stored session does not match collection")
	case !e.holdsCurrentChunk(stored):
		e.log.Debug().Int("pointer", stored.Pointer).Msg("stored quotes do not belong to the current chunk")
	default:
		e.sess = stored
		e.log.Debug().
			Int("pointer", stored.Pointer).
			Int("remaining", len(stored.Remaining)).
			Msg("resumed session")
		return
	}

	e.StartNewSession(ctx)
}

// StartNewSession discards the current session, shuffles the chunk order
// and loads the first chunk.
func (e *Engine) StartNewSession(ctx context.Context) {
	started := e.now().UnixMilli()
	if started <= e.sess.StartedAt {
		started = e.sess.StartedAt + 1
	}

	e.sess = session.Session{
		StartedAt:  started,
		ChunkOrder: permutation(e.rng, len(e.chunks)),
		Pointer:    0,
		Remaining:  []quote.Quote{},
	}

	e.log.Info().Int("chunks", len(e.chunks)).Msg("started new session")
	e.LoadNextChunk(ctx)
}

// LoadNextChunk replaces the remaining quotes with the next chunk in the
// session order, shuffled. Once every chunk was visited a new session is
// started instead.
func (e *Engine) LoadNextChunk(ctx context.Context) {
	if e.sess.Exhausted() {
		e.StartNewSession(ctx)
		return
	}

	idx := e.sess.ChunkOrder[e.sess.Pointer]
	remaining := slices.Clone(e.chunks[idx])
	Shuffle(e.rng, remaining)

	e.sess.Remaining = remaining
	e.sess.Pointer++

	if len(remaining) == 0 {
		e.log.Debug().Int("chunk", idx).Msg("loaded empty chunk, not persisting")
		return
	}

	e.log.Debug().Int("chunk", idx).Int("pointer", e.sess.Pointer).Msg("loaded chunk")
	e.persist(ctx)
}

// EnsureBuffer loads the next chunk when no quotes remain.
func (e *Engine) EnsureBuffer(ctx context.Context) error {
	if len(e.sess.Remaining) == 0 {
		e.LoadNextChunk(ctx)
	}
	if len(e.sess.Remaining) == 0 {
		return ErrNoQuotes
	}
	return nil
}

// DrawNext returns the next quote and persists the session.
func (e *Engine) DrawNext(ctx context.Context) (quote.Quote, error) {
	if err := e.EnsureBuffer(ctx); err != nil {
		return quote.Quote{}, err
	}

	last := len(e.sess.Remaining) - 1
	q := e.sess.Remaining[last]
	e.sess.Remaining = e.sess.Remaining[:last]

	e.persist(ctx)
	return q, nil
}

// holdsCurrentChunk reports whether the remaining quotes of a compatible
// session are drawn from the chunk its pointer last loaded, duplicates
// counted.
func (e *Engine) holdsCurrentChunk(s session.Session) bool {
	if len(s.Remaining) == 0 {
		return true
	}
	if s.Pointer < 1 {
		return false
	}

	counts := make(map[quote.Quote]int)
	for _, q := range e.chunks[s.ChunkOrder[s.Pointer-1]] {
		counts[q]++
	}
	for _, q := range s.Remaining {
		if counts[q] == 0 {
			return false
		}
		counts[q]--
	}
	return true
}

func (e *Engine) persist(ctx context.Context) {
	if err := e.store.Save(ctx, e.sess); err != nil {
		e.log.Warn().Err(err).Msg("failed to persist session")
	}
}

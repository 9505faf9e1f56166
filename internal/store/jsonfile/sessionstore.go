package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hay-kot/moment/internal/core/session"
	"github.com/hay-kot/moment/internal/core/storage"
)

// DefaultSessionKey is the record name the rotation session is stored under.
const DefaultSessionKey = "quotesSession"

// SessionStore implements session.Store as a single JSON record in a KV store.
type SessionStore struct {
	kv  storage.Store
	key string
	log zerolog.Logger
}

// NewSessionStore creates a session store writing to key in kv. An empty key
// selects DefaultSessionKey.
func NewSessionStore(kv storage.Store, key string, log zerolog.Logger) *SessionStore {
	if key == "" {
		key = DefaultSessionKey
	}
	return &SessionStore{kv: kv, key: key, log: log}
}

// Key returns the record name used by the store.
func (s *SessionStore) Key() string {
	return s.key
}

// Load returns the stored session, or ok=false if it is absent or unreadable.
func (s *SessionStore) Load(ctx context.Context) (session.Session, bool) {
	entry, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.log.Debug().Err(err).Str("key", s.key).Msg("session record unreadable, treating as absent")
		}
		return session.Session{}, false
	}

	var sess session.Session
	if err := json.Unmarshal([]byte(entry.Value), &sess); err != nil {
		s.log.Debug().Err(err).Str("key", s.key).Msg("session record corrupt, treating as absent")
		return session.Session{}, false
	}

	return sess, true
}

// Save serializes the session and replaces the stored record.
func (s *SessionStore) Save(ctx context.Context, sess session.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

// Clear removes the stored record.
func (s *SessionStore) Clear(ctx context.Context) error {
	err := s.kv.Delete(ctx, s.key)
	if err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

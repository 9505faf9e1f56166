package session

import "context"

// Store defines persistence operations for the rotation session.
type Store interface {
	// Load returns the stored session. ok is false when no usable record
	// exists; unreadable or corrupt records are reported the same way.
	Load(ctx context.Context) (s Session, ok bool)
	// Save replaces the stored session.
	Save(ctx context.Context, s Session) error
	// Clear removes the stored session. Clearing an absent session is not an error.
	Clear(ctx context.Context) error
}

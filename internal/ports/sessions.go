package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen11/todolists/internal/domain/user"
)

// SessionStore persists signed-in sessions keyed by session id.
type SessionStore interface {
	// Save stores s, replacing any session with the same id. The session
	// expires after ttl.
	Save(ctx context.Context, s *user.Session, ttl time.Duration) error

	// Get returns the session with id.
	// Returns domain.ErrNotFound if it does not exist or has expired.
	Get(ctx context.Context, id string) (*user.Session, error)

	// Delete removes the session with id. Deleting a missing session is not
	// an error.
	Delete(ctx context.Context, id string) error
}

// AuthStateListener receives the session's user after every sign-in or
// sign-out. A nil user means signed out.
type AuthStateListener func(u *user.User)

// AuthStateBus broadcasts authentication state changes per session.
type AuthStateBus interface {
	// Publish notifies every subscriber of sessionID. A nil u announces
	// sign-out.
	Publish(ctx context.Context, sessionID string, u *user.User) error

	// Subscribe registers fn for future changes of sessionID. The returned
	// function cancels the subscription and is safe to call more than once.
	Subscribe(ctx context.Context, sessionID string, fn AuthStateListener) (func(), error)
}

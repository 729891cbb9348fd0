package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen11/todolists/internal/domain/user"
)

// AuthClient defines the client port for the backend's authentication
// service. Implemented by the Firebase ACL adapter and the in-memory
// emulator; called by the account service.
//
// SignUp and SignIn return a session whose ID is empty: session ids are
// assigned by this service, not by the backend.
type AuthClient interface {
	// SignUp registers a new account and signs it in.
	// Returns domain.ErrConflict if the email is taken and
	// domain.ErrValidation if the backend rejects the email or password.
	SignUp(ctx context.Context, creds user.Credentials) (*user.Session, error)

	// SignIn authenticates an existing account.
	// Returns domain.ErrUnauthenticated for unknown emails or wrong passwords.
	SignIn(ctx context.Context, creds user.Credentials) (*user.Session, error)

	// Refresh exchanges a refresh token for a fresh ID token.
	// Returns domain.ErrUnauthenticated if the refresh token is revoked.
	Refresh(ctx context.Context, refreshToken string) (*user.Session, error)

	// Lookup resolves an ID token to the account it was issued for.
	// Returns domain.ErrUnauthenticated if the token is invalid or expired.
	Lookup(ctx context.Context, idToken string) (*user.User, error)

	// SignOut ends the backend-side session for idToken, where the backend
	// has one. Firebase tokens are stateless, so this may be a no-op.
	SignOut(ctx context.Context, idToken string) error
}

// Fields is the content of a stored document. Values are string or
// time.Time; other types are rejected by the adapters.
type Fields map[string]any

// String returns the string field name, or "" when absent or not a string.
func (f Fields) String(name string) string {
	s, _ := f[name].(string)
	return s
}

// Time returns the timestamp field name, or the zero time when absent.
func (f Fields) Time(name string) time.Time {
	t, _ := f[name].(time.Time)
	return t
}

// Document is a stored record within a collection.
type Document struct {
	ID     string
	Fields Fields
}

// DocumentStore defines the client port for the backend's document store.
// Collections are addressed by slash-separated paths such as
// "users/{uid}/todoLists". Calls are authenticated as the session carried in
// the context (see user.WithSession).
type DocumentStore interface {
	// Create adds a document with a backend-generated id and returns the id.
	Create(ctx context.Context, collection string, fields Fields) (string, error)

	// List returns every document in collection in creation order.
	// A collection with no documents yields an empty slice.
	List(ctx context.Context, collection string) ([]Document, error)

	// Update overwrites only the given fields of an existing document.
	// Returns domain.ErrNotFound if the document does not exist.
	Update(ctx context.Context, collection, id string, fields Fields) error

	// Delete removes a document.
	// Returns domain.ErrNotFound if the document does not exist.
	Delete(ctx context.Context, collection, id string) error
}

// WriteOp is the kind of a batched write.
type WriteOp int

const (
	// WriteCreate creates a document that must not already exist.
	WriteCreate WriteOp = iota + 1
	// WriteDelete deletes a document that must exist.
	WriteDelete
)

// Write is one document mutation within a batch. For WriteCreate an empty
// ID asks the store to assign one.
type Write struct {
	Op         WriteOp
	Collection string
	ID         string
	Fields     Fields
}

// BatchWriter is implemented by document stores that can apply several
// writes atomically. Either every write is applied or none is.
type BatchWriter interface {
	// Commit applies writes atomically and returns the document id of each
	// write, in order.
	Commit(ctx context.Context, writes []Write) ([]string, error)
}

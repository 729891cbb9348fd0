package user

import "context"

type sessionKey struct{}

// WithSession returns a context carrying the resolved session. Backend
// clients read it to authenticate document-store calls as the session user.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session stored by WithSession, or nil.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}

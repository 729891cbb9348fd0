// Package user holds the identity types owned by the backend's
// authentication service: the signed-in User, the server-side Session that
// carries its tokens, and the Credentials collected by the sign-up form.
package user

import (
	"net/mail"
	"strings"
	"time"

	"github.com/jsamuelsen11/todolists/internal/domain"
)

// User is the backend account the current session is signed in as.
type User struct {
	ID    string
	Email string
}

// Session binds a browser session to a signed-in backend user. The tokens
// are issued by the backend and forwarded on every document-store call.
type Session struct {
	ID           string
	User         User
	IDToken      string
	RefreshToken string
	ExpiresAt    time.Time
}

// Expired reports whether the session's ID token has passed its expiry.
// A zero ExpiresAt never expires.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Credentials are the email and password submitted by the sign-up and
// log-in forms.
type Credentials struct {
	Email    string
	Password string
}

// Validate applies the form's native constraints: both inputs are required
// and the email must parse as an address. Anything stricter (password
// strength, duplicate accounts) is left to the backend.
func (c *Credentials) Validate() error {
	fields := make(map[string]string)

	email := strings.TrimSpace(c.Email)
	switch {
	case email == "":
		fields["email"] = domain.MsgRequired
	case !isEmail(email):
		fields["email"] = "must be a valid email address"
	}
	if c.Password == "" {
		fields["password"] = domain.MsgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// isEmail mirrors an <input type="email">: a bare addr-spec, no display name.
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

package identity

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jsamuelsen11/todolists/internal/domain"
	"github.com/jsamuelsen11/todolists/internal/domain/user"
)

// GrantRefreshToken is the grant type of a token refresh.
const GrantRefreshToken = "refresh_token"

// ToPasswordRequest builds a sign-up or sign-in body from credentials.
func ToPasswordRequest(creds user.Credentials) PasswordRequest {
	return PasswordRequest{
		Email:             creds.Email,
		Password:          creds.Password,
		ReturnSecureToken: true,
	}
}

// ToSession converts a sign-up or sign-in response into a session whose
// expiry is now plus ExpiresIn. The session id is left empty.
func ToSession(dto *AuthResponse, now time.Time) (*user.Session, error) {
	if dto.LocalID == "" || dto.IDToken == "" {
		return nil, fmt.Errorf("auth response without account or token: %w", domain.ErrUnavailable)
	}
	expiresAt, err := expiry(dto.ExpiresIn, now)
	if err != nil {
		return nil, err
	}
	return &user.Session{
		User:         user.User{ID: dto.LocalID, Email: dto.Email},
		IDToken:      dto.IDToken,
		RefreshToken: dto.RefreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

// RefreshToSession converts a token refresh response. The response does
// not carry the email, so only User.ID is set.
func RefreshToSession(dto *RefreshResponse, now time.Time) (*user.Session, error) {
	if dto.UserID == "" || dto.IDToken == "" {
		return nil, fmt.Errorf("refresh response without account or token: %w", domain.ErrUnavailable)
	}
	expiresAt, err := expiry(dto.ExpiresIn, now)
	if err != nil {
		return nil, err
	}
	return &user.Session{
		User:         user.User{ID: dto.UserID},
		IDToken:      dto.IDToken,
		RefreshToken: dto.RefreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

// ToUser returns the single account of a lookup response. An empty or
// disabled result means the token no longer identifies anyone.
func ToUser(dto *LookupResponse) (*user.User, error) {
	if len(dto.Users) == 0 || dto.Users[0].Disabled {
		return nil, fmt.Errorf("lookup: %w", domain.ErrUnauthenticated)
	}
	a := dto.Users[0]
	return &user.User{ID: a.LocalID, Email: a.Email}, nil
}

// expiry parses a seconds count. An empty value means the backend did not
// say, which yields a session that never expires locally.
func expiry(seconds string, now time.Time) (time.Time, error) {
	if seconds == "" {
		return time.Time{}, nil
	}
	n, err := strconv.Atoi(seconds)
	if err != nil || n < 0 {
		return time.Time{}, fmt.Errorf("invalid expiresIn %q: %w", seconds, domain.ErrUnavailable)
	}
	return now.Add(time.Duration(n) * time.Second), nil
}

// Package memory provides an in-process stand-in for the remote backend:
// password accounts with signed ID tokens, and a document store that
// enforces the same per-user access rule as the hosted one. It backs the
// local profile and end-to-end tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jsamuelsen11/todolists/internal/domain"
	"github.com/jsamuelsen11/todolists/internal/domain/user"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.AuthClient    = (*Backend)(nil)
	_ ports.DocumentStore = (*Backend)(nil)
	_ ports.BatchWriter   = (*Backend)(nil)
	_ ports.HealthChecker = (*Backend)(nil)
)

// minPasswordLength matches the hosted backend's weak-password rule.
const minPasswordLength = 6

// Options configures a Backend.
type Options struct {
	// Secret signs ID tokens. Required.
	Secret []byte
	// TokenTTL is the lifetime of an ID token.
	TokenTTL time.Duration
	// BcryptCost is the password hashing cost.
	BcryptCost int
}

type account struct {
	id    string
	email string
	hash  []byte
}

type collection struct {
	order []string
	docs  map[string]ports.Fields
}

// Backend implements the auth and document-store ports in memory.
// It is safe for concurrent use.
type Backend struct {
	opts Options
	now  func() time.Time

	authMu   sync.Mutex
	accounts map[string]*account // by email
	refresh  map[string]string   // refresh token -> uid

	docMu       sync.RWMutex
	collections map[string]*collection
}

// New creates an empty Backend.
func New(opts Options) (*Backend, error) {
	if len(opts.Secret) == 0 {
		return nil, errors.New("memory backend: secret is required")
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = time.Hour
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &Backend{
		opts:        opts,
		now:         time.Now,
		accounts:    make(map[string]*account),
		refresh:     make(map[string]string),
		collections: make(map[string]*collection),
	}, nil
}

// Name implements ports.HealthChecker.
func (b *Backend) Name() string {
	return "backend-memory"
}

// HealthCheck implements ports.HealthChecker. The emulator is always up.
func (b *Backend) HealthCheck(context.Context) error {
	return nil
}

// --- auth ---

// SignUp implements ports.AuthClient.
func (b *Backend) SignUp(_ context.Context, creds user.Credentials) (*user.Session, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if len(creds.Password) < minPasswordLength {
		return nil, &domain.ValidationError{Fields: map[string]string{
			"password": fmt.Sprintf("must be at least %d characters", minPasswordLength),
		}}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), b.opts.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	b.authMu.Lock()
	defer b.authMu.Unlock()

	if _, ok := b.accounts[email]; ok {
		return nil, fmt.Errorf("email %s: %w", email, domain.ErrConflict)
	}
	acct := &account{id: newID(), email: email, hash: hash}
	b.accounts[email] = acct

	return b.issueLocked(acct.id, acct.email)
}

// SignIn implements ports.AuthClient.
func (b *Backend) SignIn(_ context.Context, creds user.Credentials) (*user.Session, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	b.authMu.Lock()
	defer b.authMu.Unlock()

	acct, ok := b.accounts[email]
	if !ok || bcrypt.CompareHashAndPassword(acct.hash, []byte(creds.Password)) != nil {
		return nil, fmt.Errorf("invalid login credentials: %w", domain.ErrUnauthenticated)
	}
	return b.issueLocked(acct.id, acct.email)
}

// Refresh implements ports.AuthClient. Refresh tokens are single use.
func (b *Backend) Refresh(_ context.Context, refreshToken string) (*user.Session, error) {
	b.authMu.Lock()
	defer b.authMu.Unlock()

	uid, ok := b.refresh[refreshToken]
	if !ok {
		return nil, fmt.Errorf("refresh token: %w", domain.ErrUnauthenticated)
	}
	delete(b.refresh, refreshToken)

	for _, acct := range b.accounts {
		if acct.id == uid {
			return b.issueLocked(acct.id, acct.email)
		}
	}
	return nil, fmt.Errorf("account %s: %w", uid, domain.ErrUnauthenticated)
}

// Lookup implements ports.AuthClient.
func (b *Backend) Lookup(_ context.Context, idToken string) (*user.User, error) {
	return b.verify(idToken)
}

// SignOut implements ports.AuthClient by revoking the user's refresh tokens.
// Issued ID tokens stay valid until they expire.
func (b *Backend) SignOut(_ context.Context, idToken string) error {
	u, err := b.verify(idToken)
	if err != nil {
		return err
	}

	b.authMu.Lock()
	defer b.authMu.Unlock()
	for token, uid := range b.refresh {
		if uid == u.ID {
			delete(b.refresh, token)
		}
	}
	return nil
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (b *Backend) issueLocked(uid, email string) (*user.Session, error) {
	now := b.now()
	expires := now.Add(b.opts.TokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString(b.opts.Secret)
	if err != nil {
		return nil, fmt.Errorf("signing id token: %w", err)
	}

	refresh := uuid.NewString()
	b.refresh[refresh] = uid

	return &user.Session{
		User:         user.User{ID: uid, Email: email},
		IDToken:      signed,
		RefreshToken: refresh,
		ExpiresAt:    expires,
	}, nil
}

func (b *Backend) verify(idToken string) (*user.User, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(idToken, &claims, func(*jwt.Token) (any, error) {
		return b.opts.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(b.now),
	)
	if err != nil {
		return nil, fmt.Errorf("id token: %w: %w", domain.ErrUnauthenticated, err)
	}
	return &user.User{ID: claims.Subject, Email: claims.Email}, nil
}

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

package acl

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/todolists/internal/adapters/clients/acl/identity"
	"github.com/jsamuelsen11/todolists/internal/domain/user"
	"github.com/jsamuelsen11/todolists/internal/platform/httpclient"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

var _ ports.AuthClient = (*AuthClient)(nil)

// AuthClient implements ports.AuthClient against Firebase Authentication:
// the Identity Toolkit accounts endpoints and the Secure Token exchange.
type AuthClient struct {
	accounts *Requester
	tokens   *Requester
	now      func() time.Time
	logger   *slog.Logger
}

// NewAuthClient creates an AuthClient. accounts must be rooted at the
// Identity Toolkit v1 URL and tokens at the Secure Token v1 URL.
func NewAuthClient(accounts, tokens *httpclient.Client, apiKey string, logger *slog.Logger) *AuthClient {
	return &AuthClient{
		accounts: NewRequester(accounts, logger, WithAPIKey(apiKey)),
		tokens:   NewRequester(tokens, logger, WithAPIKey(apiKey)),
		now:      time.Now,
		logger:   logger,
	}
}

// SignUp creates an account with POST accounts:signUp. The call is sent
// once: a replay after a lost response would fail with EMAIL_EXISTS.
func (c *AuthClient) SignUp(ctx context.Context, creds user.Credentials) (*user.Session, error) {
	var dto identity.AuthResponse
	if err := c.accounts.Do(ctx, http.MethodPost, "/accounts:signUp", nil, http.StatusOK,
		identity.ToPasswordRequest(creds), &dto); err != nil {
		return nil, err
	}
	return identity.ToSession(&dto, c.now())
}

// SignIn verifies credentials with POST accounts:signInWithPassword.
func (c *AuthClient) SignIn(ctx context.Context, creds user.Credentials) (*user.Session, error) {
	var dto identity.AuthResponse
	if err := c.accounts.Do(httpclient.WithIdempotent(ctx), http.MethodPost, "/accounts:signInWithPassword", nil,
		http.StatusOK, identity.ToPasswordRequest(creds), &dto); err != nil {
		return nil, err
	}
	return identity.ToSession(&dto, c.now())
}

// Refresh exchanges a refresh token at the Secure Token endpoint.
func (c *AuthClient) Refresh(ctx context.Context, refreshToken string) (*user.Session, error) {
	var dto identity.RefreshResponse
	if err := c.tokens.Do(httpclient.WithIdempotent(ctx), http.MethodPost, "/token", nil, http.StatusOK,
		identity.RefreshRequest{GrantType: identity.GrantRefreshToken, RefreshToken: refreshToken}, &dto); err != nil {
		return nil, err
	}
	return identity.RefreshToSession(&dto, c.now())
}

// Lookup resolves an ID token with POST accounts:lookup.
func (c *AuthClient) Lookup(ctx context.Context, idToken string) (*user.User, error) {
	var dto identity.LookupResponse
	if err := c.accounts.Do(httpclient.WithIdempotent(ctx), http.MethodPost, "/accounts:lookup", nil, http.StatusOK,
		identity.LookupRequest{IDToken: idToken}, &dto); err != nil {
		return nil, err
	}
	return identity.ToUser(&dto)
}

// SignOut is local to this service: Firebase ID tokens are stateless and
// the REST API has no per-session sign-out. Dropping the session is
// enough; the token lapses at its expiry.
func (c *AuthClient) SignOut(ctx context.Context, _ string) error {
	c.logger.DebugContext(ctx, "firebase sign-out is local",
		slog.String("operation", "AuthClient.SignOut"),
	)
	return nil
}

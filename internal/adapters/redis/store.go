// Package redis implements the session ports on a shared redis server so
// that several service instances see the same sessions and auth-state
// changes.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jsamuelsen11/todolists/internal/domain"
	"github.com/jsamuelsen11/todolists/internal/domain/user"
	"github.com/jsamuelsen11/todolists/internal/platform/config"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

// Key prefixes.
const (
	sessionPrefix = "todolists:session:"
	authPrefix    = "todolists:auth:"
)

var (
	_ ports.SessionStore  = (*SessionStore)(nil)
	_ ports.HealthChecker = (*SessionStore)(nil)
)

// NewClient creates a client for cfg. No connection is made until the first
// command.
func NewClient(cfg *config.RedisConfig) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// sessionRecord is the stored form of a session.
type sessionRecord struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	IDToken      string    `json:"id_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// SessionStore implements ports.SessionStore with one key per session,
// expired by redis itself.
type SessionStore struct {
	client goredis.UniversalClient
}

// NewSessionStore creates a SessionStore on client.
func NewSessionStore(client goredis.UniversalClient) *SessionStore {
	return &SessionStore{client: client}
}

// Save writes s with expiry ttl.
func (st *SessionStore) Save(ctx context.Context, s *user.Session, ttl time.Duration) error {
	data, err := json.Marshal(sessionRecord{
		UserID:       s.User.ID,
		Email:        s.User.Email,
		IDToken:      s.IDToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    s.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := st.client.Set(ctx, sessionPrefix+s.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Get reads the session with id.
func (st *SessionStore) Get(ctx context.Context, id string) (*user.Session, error) {
	data, err := st.client.Get(ctx, sessionPrefix+id).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &user.Session{
		ID:           id,
		User:         user.User{ID: rec.UserID, Email: rec.Email},
		IDToken:      rec.IDToken,
		RefreshToken: rec.RefreshToken,
		ExpiresAt:    rec.ExpiresAt,
	}, nil
}

// Delete removes the session with id.
func (st *SessionStore) Delete(ctx context.Context, id string) error {
	if err := st.client.Del(ctx, sessionPrefix+id).Err(); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// Name identifies the store in health reports.
func (st *SessionStore) Name() string {
	return "redis"
}

// HealthCheck pings the server.
func (st *SessionStore) HealthCheck(ctx context.Context) error {
	return st.client.Ping(ctx).Err()
}

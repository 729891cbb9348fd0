// Package sessions provides in-process implementations of the session
// ports: a SessionStore and an AuthStateBus for a single instance. The redis
// package offers the shared equivalents.
package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/jsamuelsen11/todolists/internal/domain"
	"github.com/jsamuelsen11/todolists/internal/domain/user"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

var (
	_ ports.SessionStore  = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

type entry struct {
	session   user.Session
	expiresAt time.Time
}

// Store keeps sessions in memory. Expired sessions are invisible to Get and
// removed by Purge. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]entry
	now      func() time.Time
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]entry),
		now:      time.Now,
	}
}

// Save stores a copy of s until ttl elapses.
func (st *Store) Save(_ context.Context, s *user.Session, ttl time.Duration) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.sessions[s.ID] = entry{session: *s, expiresAt: st.now().Add(ttl)}
	return nil
}

// Get returns a copy of the session with id.
func (st *Store) Get(_ context.Context, id string) (*user.Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !st.now().Before(e.expiresAt) {
		delete(st.sessions, id)
		return nil, domain.ErrNotFound
	}
	s := e.session
	return &s, nil
}

// Delete removes the session with id.
func (st *Store) Delete(_ context.Context, id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	delete(st.sessions, id)
	return nil
}

// Purge drops every expired session and returns how many were dropped.
func (st *Store) Purge(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	n := 0
	for id, e := range st.sessions {
		if !now.Before(e.expiresAt) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// Name identifies the store in health reports.
func (st *Store) Name() string {
	return "sessions"
}

// HealthCheck always succeeds.
func (st *Store) HealthCheck(context.Context) error {
	return nil
}

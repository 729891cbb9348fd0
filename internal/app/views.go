package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jsamuelsen11/todolists/internal/domain/user"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

// Compile-time check that Views implements ports.TodoViews.
var _ ports.TodoViews = (*Views)(nil)

// Views implements ports.TodoViews: it keeps one TodoView per live session,
// creating it on the session's first request and closing it on log-out or
// after it has been idle for too long.
type Views struct {
	base     context.Context
	store    ports.DocumentStore
	bus      ports.AuthStateBus
	cfg      ViewConfig
	recorder ViewRecorder
	logger   *slog.Logger

	mu    sync.Mutex
	views map[string]*TodoView
}

// NewViews creates an empty registry. base parents the contexts of
// auth-state callbacks and should carry the application logger. recorder
// may be nil.
func NewViews(
	base context.Context,
	store ports.DocumentStore,
	bus ports.AuthStateBus,
	cfg ViewConfig,
	recorder ViewRecorder,
	logger *slog.Logger,
) *Views {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if !cfg.RefreshPolicy.IsValid() {
		cfg.RefreshPolicy = RefreshFull
	}
	if cfg.CallbackTimeout <= 0 {
		cfg.CallbackTimeout = 10 * time.Second
	}
	return &Views{
		base:     base,
		store:    store,
		bus:      bus,
		cfg:      cfg,
		recorder: recorder,
		logger:   logger,
		views:    make(map[string]*TodoView),
	}
}

// View returns the session's view. A new view immediately loads the
// session user's lists and then follows the session's auth state.
func (r *Views) View(ctx context.Context, s *user.Session) (ports.TodoView, error) {
	r.mu.Lock()
	v, ok := r.views[s.ID]
	if !ok {
		v = newTodoView(s.ID, r.store, r.cfg, r.recorder, r.logger)
		r.views[s.ID] = v
	}
	r.mu.Unlock()

	v.bind(s)

	current := s.User
	if err := v.start(ctx, r.bus, &current, r.base); err != nil {
		r.logger.ErrorContext(ctx, "failed to start view",
			slog.String("operation", "Views.View"),
			slog.String("user_id", s.User.ID),
			slog.Any("error", err),
		)
		r.drop(s.ID, v)
		return nil, err
	}
	return v, nil
}

// Release closes the session's view, if any.
func (r *Views) Release(sessionID string) {
	r.mu.Lock()
	v, ok := r.views[sessionID]
	delete(r.views, sessionID)
	r.mu.Unlock()

	if ok {
		v.Close()
	}
}

// SweepIdle closes every view unused since before now minus idle and
// returns how many were closed.
func (r *Views) SweepIdle(now time.Time, idle time.Duration) int {
	cutoff := now.Add(-idle)

	r.mu.Lock()
	var stale []*TodoView
	for id, v := range r.views {
		if v.idleSince().Before(cutoff) {
			stale = append(stale, v)
			delete(r.views, id)
		}
	}
	r.mu.Unlock()

	for _, v := range stale {
		v.Close()
	}
	return len(stale)
}

// Len returns the number of live views.
func (r *Views) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// Close closes every view.
func (r *Views) Close() {
	r.mu.Lock()
	views := r.views
	r.views = make(map[string]*TodoView)
	r.mu.Unlock()

	for _, v := range views {
		v.Close()
	}
}

// drop removes v if it is still the view registered for id.
func (r *Views) drop(id string, v *TodoView) {
	r.mu.Lock()
	if r.views[id] == v {
		delete(r.views, id)
	}
	r.mu.Unlock()
	v.Close()
}

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/todolists/internal/domain"
	"github.com/jsamuelsen11/todolists/internal/domain/user"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

// HomePath is where the client navigates after signing in or out.
const HomePath = "/"

// Compile-time check that AccountService implements ports.AccountService.
var _ ports.AccountService = (*AccountService)(nil)

// AccountService implements ports.AccountService on top of the backend's
// authentication service. It owns the session lifecycle: a successful
// sign-up or log-in stores a session and announces the user on the
// auth-state bus; log-out drops the session and announces sign-out.
type AccountService struct {
	auth     ports.AuthClient
	sessions ports.SessionStore
	bus      ports.AuthStateBus
	views    ports.TodoViews
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

// NewAccountService creates an AccountService. Sessions live for ttl.
// views may be nil; when set, log-out releases the session's view.
func NewAccountService(
	auth ports.AuthClient,
	sessions ports.SessionStore,
	bus ports.AuthStateBus,
	views ports.TodoViews,
	ttl time.Duration,
	logger *slog.Logger,
) *AccountService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AccountService{
		auth:     auth,
		sessions: sessions,
		bus:      bus,
		views:    views,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// SignUp creates an account and signs it in.
func (s *AccountService) SignUp(ctx context.Context, creds user.Credentials) (*ports.AuthResult, error) {
	return s.authenticate(ctx, "sign-up", creds, s.auth.SignUp)
}

// LogIn signs an existing account in.
func (s *AccountService) LogIn(ctx context.Context, creds user.Credentials) (*ports.AuthResult, error) {
	return s.authenticate(ctx, "log-in", creds, s.auth.SignIn)
}

func (s *AccountService) authenticate(
	ctx context.Context,
	op string,
	creds user.Credentials,
	call func(context.Context, user.Credentials) (*user.Session, error),
) (*ports.AuthResult, error) {
	s.logger.InfoContext(ctx, "authenticating", slog.String("operation", op))

	if err := creds.Validate(); err != nil {
		return nil, err
	}

	sess, err := call(ctx, creds)
	if err != nil {
		s.logger.ErrorContext(ctx, "backend rejected credentials",
			slog.String("operation", op),
			slog.Any("error", err),
		)
		return nil, &domain.AuthError{Op: op, Err: err}
	}

	sess.ID = s.newID()
	if err := s.sessions.Save(ctx, sess, s.ttl); err != nil {
		s.logger.ErrorContext(ctx, "failed to save session",
			slog.String("operation", op),
			slog.String("user_id", sess.User.ID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("saving session: %w", err)
	}

	s.publish(ctx, op, sess.ID, &sess.User)

	return &ports.AuthResult{Session: sess, Redirect: HomePath}, nil
}

// LogOut signs the session out. Every failure is logged and skipped so the
// session ends regardless.
func (s *AccountService) LogOut(ctx context.Context, sessionID string) string {
	const op = "log-out"
	s.logger.InfoContext(ctx, "logging out", slog.String("operation", op))

	sess, err := s.sessions.Get(ctx, sessionID)
	switch {
	case err == nil:
		if err := s.auth.SignOut(ctx, sess.IDToken); err != nil {
			s.logger.ErrorContext(ctx, "backend sign-out failed",
				slog.String("operation", op),
				slog.String("user_id", sess.User.ID),
				slog.Any("error", &domain.AuthError{Op: op, Err: err}),
			)
		}
	case !errors.Is(err, domain.ErrNotFound):
		s.logger.ErrorContext(ctx, "failed to load session",
			slog.String("operation", op),
			slog.Any("error", err),
		)
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete session",
			slog.String("operation", op),
			slog.Any("error", err),
		)
	}

	s.publish(ctx, op, sessionID, nil)

	if s.views != nil {
		s.views.Release(sessionID)
	}

	return HomePath
}

// CurrentUser returns the session's user, or nil when signed out.
func (s *AccountService) CurrentUser(ctx context.Context, sessionID string) (*user.User, error) {
	sess, err := s.Session(ctx, sessionID)
	if errors.Is(err, domain.ErrUnauthenticated) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u := sess.User
	return &u, nil
}

// Session returns the live session with id, exchanging the refresh token
// first when the ID token has expired. A session whose refresh fails is
// dropped.
func (s *AccountService) Session(ctx context.Context, id string) (*user.Session, error) {
	if id == "" {
		return nil, domain.ErrUnauthenticated
	}

	sess, err := s.sessions.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load session",
			slog.String("operation", "Session"),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("loading session: %w", err)
	}

	if !sess.Expired(s.now()) {
		return sess, nil
	}

	fresh, err := s.auth.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		s.logger.WarnContext(ctx, "token refresh failed, ending session",
			slog.String("operation", "Session"),
			slog.String("user_id", sess.User.ID),
			slog.Any("error", err),
		)
		if derr := s.sessions.Delete(ctx, id); derr != nil {
			s.logger.ErrorContext(ctx, "failed to delete session",
				slog.String("operation", "Session"),
				slog.Any("error", derr),
			)
		}
		s.publish(ctx, "refresh", id, nil)
		return nil, domain.ErrUnauthenticated
	}

	sess.IDToken = fresh.IDToken
	sess.RefreshToken = fresh.RefreshToken
	sess.ExpiresAt = fresh.ExpiresAt
	if err := s.sessions.Save(ctx, sess, s.ttl); err != nil {
		s.logger.ErrorContext(ctx, "failed to save refreshed session",
			slog.String("operation", "Session"),
			slog.String("user_id", sess.User.ID),
			slog.Any("error", err),
		)
	}
	return sess, nil
}

func (s *AccountService) publish(ctx context.Context, op, sessionID string, u *user.User) {
	if err := s.bus.Publish(ctx, sessionID, u); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish auth state",
			slog.String("operation", op),
			slog.Any("error", err),
		)
	}
}

package appctx

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen11/todolists/internal/domain"
	"github.com/jsamuelsen11/todolists/internal/platform/logging"
)

// Commit runs the queued actions in order. If one fails, the actions that
// already succeeded are rolled back in reverse order and the failure is
// returned. Rollback errors are logged only, and rollback still runs
// when ctx was cancelled mid-commit.
//
// The RequestContext is marked committed whatever the outcome.
// Returns ErrAlreadyCommitted if called more than once.
func (rc *RequestContext) Commit(ctx context.Context) error {
	rc.queueMu.Lock()
	if rc.committed {
		rc.queueMu.Unlock()
		return ErrAlreadyCommitted
	}
	rc.committed = true
	actions := rc.actions
	rc.queueMu.Unlock()

	logger := logging.FromContext(ctx)

	for i, action := range actions {
		logger.DebugContext(ctx, "executing action",
			slog.String("operation", "RequestContext.Commit"),
			slog.Int("step", i+1),
			slog.Int("total", len(actions)),
			slog.String("action", action.Description()),
		)

		if err := action.Execute(ctx); err != nil {
			logger.ErrorContext(ctx, "action failed, rolling back",
				slog.String("operation", "RequestContext.Commit"),
				slog.Int("failed_step", i+1),
				slog.String("action", action.Description()),
				slog.Any("error", err),
			)
			rollback(context.WithoutCancel(ctx), actions[:i], logger)
			return fmt.Errorf("executing %s: %w", action.Description(), err)
		}
	}

	return nil
}

func rollback(ctx context.Context, done []domain.Action, logger *slog.Logger) {
	for i := len(done) - 1; i >= 0; i-- {
		action := done[i]
		if err := action.Rollback(ctx); err != nil {
			logger.ErrorContext(ctx, "rollback failed",
				slog.String("operation", "RequestContext.Commit"),
				slog.Int("step", i+1),
				slog.String("action", action.Description()),
				slog.Any("error", err),
			)
		}
	}
}

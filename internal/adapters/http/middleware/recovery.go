package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/todolists/internal/adapters/http/dto"
	appctx "github.com/jsamuelsen11/todolists/internal/app/context"
	"github.com/jsamuelsen11/todolists/internal/domain/user"
)

// errInternalServer is what the client sees for a recovered panic.
var errInternalServer = errors.New("internal server error")

// Recovery returns middleware that turns a handler panic into a 500
// problem response. The log entry carries the stack, the matched route, and
// the signed-in user when Session resolved one for the request. If the
// response has already started, only the log entry is written.
//
// Recovery must run inside AppContext to see the session.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := recordStatus(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}

				attrs := []slog.Attr{
					slog.String("panic", fmt.Sprint(v)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				}
				if route := routePattern(r); route != "" {
					attrs = append(attrs, slog.String("route", route))
				}
				if u := sessionUser(r); u != nil {
					attrs = append(attrs, slog.String("user_id", u.ID))
				}
				logger.LogAttrs(r.Context(), slog.LevelError, "panic recovered", attrs...)

				if !rw.started() {
					dto.WriteErrorResponse(rw, r, errInternalServer)
				}
			}()

			next.ServeHTTP(rw, r)
		})
	}
}

// sessionUser returns the user Session memoized for r, or nil.
func sessionUser(r *http.Request) *user.User {
	rc := appctx.FromContext(r.Context())
	if rc == nil {
		return nil
	}
	sess, ok := appctx.Peek[*user.Session](rc, sessionCacheKey)
	if !ok || sess == nil {
		return nil
	}
	return &sess.User
}

package middleware

import (
	"context"
	"net/http"

	"github.com/jsamuelsen11/todolists/internal/adapters/http/dto"
	appctx "github.com/jsamuelsen11/todolists/internal/app/context"
	"github.com/jsamuelsen11/todolists/internal/domain"
	"github.com/jsamuelsen11/todolists/internal/domain/user"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

const sessionCacheKey = "session"

// Session returns middleware that resolves the session named by the
// cookieName cookie and stores it via user.WithSession. Requests without a
// live session get a 401 problem response.
//
// When AppContext runs first the lookup is memoized in the RequestContext.
func Session(accounts ports.AccountService, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ck, err := r.Cookie(cookieName)
			if err != nil || ck.Value == "" {
				dto.WriteErrorResponse(w, r, domain.ErrUnauthenticated)
				return
			}

			sess, err := lookupSession(r.Context(), accounts, ck.Value)
			if err != nil {
				dto.WriteErrorResponse(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(user.WithSession(r.Context(), sess)))
		})
	}
}

func lookupSession(ctx context.Context, accounts ports.AccountService, id string) (*user.Session, error) {
	// The request context carries the deadline and span; rc's may not.
	fetch := func(context.Context) (*user.Session, error) {
		return accounts.Session(ctx, id)
	}

	rc := appctx.FromContext(ctx)
	if rc == nil {
		return fetch(ctx)
	}
	return appctx.GetOrFetch(rc, sessionCacheKey, fetch)
}

package middleware

import (
	"net/http"

	appctx "github.com/jsamuelsen11/todolists/internal/app/context"
)

// AppContext returns middleware that gives each request a fresh
// appctx.RequestContext. Session memoizes the resolved session in it and
// Recovery reads that session back, so AppContext runs outermost.
//
// The RequestContext embeds the incoming context only; fetches made through
// it should use their caller's context for deadlines and trace spans.
func AppContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rc := appctx.New(r.Context())
			next.ServeHTTP(w, r.WithContext(appctx.WithRequestContext(r.Context(), rc)))
		})
	}
}

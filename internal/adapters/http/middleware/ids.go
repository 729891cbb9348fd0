package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/todolists/internal/platform/httpclient"
)

const (
	headerRequestID     = "X-Request-ID"
	headerCorrelationID = "X-Correlation-ID"

	// maxIDLength bounds ids accepted from clients.
	maxIDLength = 128
)

// idKey names a request-scoped id in the context. httpclient keeps its own
// keys so outbound Firebase calls can forward the ids without importing
// this package.
type idKey int

const (
	requestIDKey idKey = iota
	correlationIDKey
)

// WithRequestID stores id for logging and for outbound calls.
func WithRequestID(ctx context.Context, id string) context.Context {
	return httpclient.WithRequestID(context.WithValue(ctx, requestIDKey, id), id)
}

// WithCorrelationID stores id for logging and for outbound calls.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return httpclient.WithCorrelationID(context.WithValue(ctx, correlationIDKey, id), id)
}

// RequestIDFromContext returns the request id, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// CorrelationIDFromContext returns the correlation id, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// RequestID returns middleware that reuses a well-formed X-Request-ID from
// the client or generates a UUID, then echoes it in the response.
func RequestID() func(http.Handler) http.Handler {
	return idMiddleware(headerRequestID, WithRequestID, func(*http.Request) string {
		return uuid.NewString()
	})
}

// CorrelationID returns middleware that reuses a well-formed
// X-Correlation-ID from the client or falls back to the request id, then
// echoes it in the response. It must run after RequestID.
func CorrelationID() func(http.Handler) http.Handler {
	return idMiddleware(headerCorrelationID, WithCorrelationID, func(r *http.Request) string {
		return RequestIDFromContext(r.Context())
	})
}

func idMiddleware(
	header string,
	store func(context.Context, string) context.Context,
	fallback func(*http.Request) string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := sanitizeID(r.Header.Get(header))
			if id == "" {
				id = fallback(r)
			}
			w.Header().Set(header, id)
			next.ServeHTTP(w, r.WithContext(store(r.Context(), id)))
		})
	}
}

// sanitizeID returns v if it is a short token of [A-Za-z0-9-_.:], or "".
// Ids end up in logs and response headers.
func sanitizeID(v string) string {
	if v == "" || len(v) > maxIDLength {
		return ""
	}
	for _, c := range v {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.', c == ':':
		default:
			return ""
		}
	}
	return v
}

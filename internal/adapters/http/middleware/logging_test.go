package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/todolists/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/todolists/internal/domain/user"
	"github.com/jsamuelsen11/todolists/internal/platform/logging"
	"github.com/jsamuelsen11/todolists/mocks"
)

// loggedRouter mounts the list routes behind the production middleware
// order, with the given handler for every route.
func loggedRouter(t *testing.T, buf *bytes.Buffer, handler http.HandlerFunc) http.Handler {
	t.Helper()

	accounts := mocks.NewMockAccountService(t)
	accounts.EXPECT().Session(mock.Anything, "sess-1").
		Return(&user.Session{ID: "sess-1", User: user.User{ID: "u1"}}, nil).Maybe()

	r := chi.NewRouter()
	r.Use(
		middleware.AppContext(),
		middleware.RequestID(),
		middleware.CorrelationID(),
		middleware.Logging(testLogger(buf)),
	)
	r.Post("/api/v1/signin", handler)
	r.With(middleware.Session(accounts, testCookieName)).Group(func(r chi.Router) {
		r.Get("/api/v1/lists", handler)
		r.Patch("/api/v1/lists/{listId}/tasks/{taskId}", handler)
	})
	return r
}

func TestLogging_Completion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		method   string
		target   string
		signedIn bool
		status   int
		body     string
		want     []string
		notWant  []string
	}{
		{
			name:     "task edit by signed-in user",
			method:   http.MethodPatch,
			target:   "/api/v1/lists/L1/tasks/t1",
			signedIn: true,
			status:   http.StatusOK,
			body:     `{"id":"t1"}`,
			want: []string{
				"level=INFO",
				"route=/api/v1/lists/{listId}/tasks/{taskId}",
				"status=200",
				"bytes=11",
				"user_id=u1",
				"duration=",
			},
			notWant: []string{"sess-1"},
		},
		{
			name:    "sign-in has no user yet",
			method:  http.MethodPost,
			target:  "/api/v1/signin",
			status:  http.StatusUnauthorized,
			want:    []string{"route=/api/v1/signin", "status=401"},
			notWant: []string{"user_id"},
		},
		{
			name:     "backend failure logs at error",
			method:   http.MethodGet,
			target:   "/api/v1/lists",
			signedIn: true,
			status:   http.StatusBadGateway,
			want:     []string{"level=ERROR", "status=502", "user_id=u1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			router := loggedRouter(t, &buf, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			req := httptest.NewRequest(tt.method, tt.target, http.NoBody)
			if tt.signedIn {
				req.AddCookie(&http.Cookie{Name: testCookieName, Value: "sess-1"})
			}
			router.ServeHTTP(httptest.NewRecorder(), req)

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			var completed string
			for _, l := range lines {
				if strings.Contains(l, "request completed") {
					completed = l
				}
			}
			if completed == "" {
				t.Fatalf("no completion line in %q", buf.String())
			}
			for _, w := range tt.want {
				if !strings.Contains(completed, w) {
					t.Errorf("completion line missing %q: %s", w, completed)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(buf.String(), w) {
					t.Errorf("log contains %q: %s", w, buf.String())
				}
			}
		})
	}
}

func TestLogging_RequestLoggerCarriesIDs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	router := loggedRouter(t, &buf, func(w http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).Info("lists fetched", slog.Int("count", 2))
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/lists", http.NoBody)
	req.Header.Set("X-Request-ID", "req-log")
	req.Header.Set("X-Correlation-ID", "corr-log")
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "sess-1"})
	router.ServeHTTP(httptest.NewRecorder(), req)

	for _, l := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if !strings.Contains(l, "request_id=req-log") || !strings.Contains(l, "correlation_id=corr-log") {
			t.Errorf("line missing ids: %s", l)
		}
	}
	if !strings.Contains(buf.String(), "lists fetched") {
		t.Errorf("handler log not written through the request logger: %s", buf.String())
	}
}

func TestLogging_HeadersRedactedAtDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	router := loggedRouter(t, &buf, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/lists", http.NoBody)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "sess-1"})
	router.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	if !strings.Contains(out, "headers.Cookie=[REDACTED]") {
		t.Errorf("cookie header not redacted: %s", out)
	}
	if strings.Contains(out, "sess-1") {
		t.Errorf("session id leaked: %s", out)
	}
}

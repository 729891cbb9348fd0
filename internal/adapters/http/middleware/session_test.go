package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/todolists/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/todolists/internal/domain"
	"github.com/jsamuelsen11/todolists/internal/domain/user"
	"github.com/jsamuelsen11/todolists/mocks"
)

const testCookieName = "todolists_session"

func TestSession_ResolvesCookie(t *testing.T) {
	t.Parallel()

	sess := &user.Session{ID: "sess-1", User: user.User{ID: "u1", Email: "ada@example.com"}}
	accounts := mocks.NewMockAccountService(t)
	accounts.EXPECT().Session(mock.Anything, "sess-1").Return(sess, nil).Once()

	var got *user.Session
	handler := middleware.AppContext()(
		middleware.Session(accounts, testCookieName)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			got = user.SessionFromContext(r.Context())
		})),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/lists", http.NoBody)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "sess-1"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got == nil || got.User.ID != "u1" {
		t.Errorf("session in context = %+v, want u1", got)
	}
}

func TestSession_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cookie *http.Cookie
		setup  func(m *mocks.MockAccountService)
	}{
		{
			name: "no cookie",
		},
		{
			name:   "empty cookie",
			cookie: &http.Cookie{Name: testCookieName, Value: ""},
		},
		{
			name:   "expired session",
			cookie: &http.Cookie{Name: testCookieName, Value: "gone"},
			setup: func(m *mocks.MockAccountService) {
				m.EXPECT().Session(mock.Anything, "gone").Return(nil, domain.ErrUnauthenticated)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			accounts := mocks.NewMockAccountService(t)
			if tt.setup != nil {
				tt.setup(accounts)
			}

			called := false
			handler := middleware.Session(accounts, testCookieName)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/lists", http.NoBody)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
			if called {
				t.Error("next handler called without a session")
			}
		})
	}
}

package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/todolists/internal/domain/task"
	"github.com/jsamuelsen11/todolists/internal/domain/todolist"
	"github.com/jsamuelsen11/todolists/internal/domain/user"
)

var testTime = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func testSession() *user.Session {
	return &user.Session{
		ID:        "sess-1",
		User:      user.User{ID: "u1", Email: "ada@example.com"},
		IDToken:   "id-token",
		ExpiresAt: testTime.Add(time.Hour),
	}
}

// withSession attaches the session the session middleware would resolve.
func withSession(r *http.Request) *http.Request {
	return r.WithContext(user.WithSession(r.Context(), testSession()))
}

func validTask() task.Task {
	return task.Task{
		ID:          "t1",
		Title:       "Buy groceries",
		Description: "Milk, eggs, bread",
		DueDate:     "2026-02-20",
		Priority:    task.PriorityHigh,
		CreatedAt:   testTime,
	}
}

func validList() todolist.TodoList {
	return todolist.TodoList{
		ID:        "L1",
		Name:      "Errands",
		CreatedBy: "u1",
		CreatedAt: testTime,
		Tasks:     []task.Task{validTask()},
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

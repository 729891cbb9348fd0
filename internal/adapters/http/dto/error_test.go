package dto_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"slices"
	"testing"

	"github.com/jsamuelsen11/todolists/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todolists/internal/domain"
)

func TestWriteErrorResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            error
		wantStatus     int
		wantDetail     string
		wantNotify     string
		wantRetryAfter string
	}{
		{
			name:       "task gone",
			err:        &domain.StoreError{Op: "delete", Path: "users/u1/todoLists/L1/tasks", Err: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
			wantDetail: "store delete users/u1/todoLists/L1/tasks: not found",
		},
		{
			name:       "empty title",
			err:        &domain.ValidationError{Fields: map[string]string{"title": domain.MsgRequired}},
			wantStatus: http.StatusBadRequest,
			wantDetail: "validation error: title: is required",
		},
		{
			name:       "email taken",
			err:        &domain.AuthError{Op: "sign-up", Err: fmt.Errorf("EMAIL_EXISTS: %w", domain.ErrConflict)},
			wantStatus: http.StatusConflict,
			wantDetail: "auth sign-up: EMAIL_EXISTS: conflict",
			wantNotify: "EMAIL_EXISTS: conflict",
		},
		{
			name:       "bad credentials",
			err:        &domain.AuthError{Op: "log-in", Err: fmt.Errorf("INVALID_LOGIN_CREDENTIALS: %w", domain.ErrUnauthenticated)},
			wantStatus: http.StatusUnauthorized,
			wantDetail: "auth log-in: INVALID_LOGIN_CREDENTIALS: not signed in",
			wantNotify: "INVALID_LOGIN_CREDENTIALS: not signed in",
		},
		{
			name:       "foreign list",
			err:        domain.ErrForbidden,
			wantStatus: http.StatusForbidden,
			wantDetail: "forbidden",
		},
		{
			name:           "firestore down",
			err:            &domain.StoreError{Op: "list", Path: "users/u1/todoLists", Err: domain.ErrUnavailable},
			wantStatus:     http.StatusBadGateway,
			wantDetail:     "store list users/u1/todoLists: unavailable",
			wantRetryAfter: "5",
		},
		{
			name:       "unclassified error is not echoed",
			err:        errors.New("dial tcp 10.0.0.7:6379: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantDetail: "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPatch, "/api/v1/lists/L1/tasks/t1", http.NoBody)
			dto.WriteErrorResponse(w, r, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("Content-Type = %q", ct)
			}
			if got := w.Header().Get("Retry-After"); got != tt.wantRetryAfter {
				t.Errorf("Retry-After = %q, want %q", got, tt.wantRetryAfter)
			}

			var resp dto.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			want := dto.ErrorResponse{
				Type:         "about:blank",
				Title:        http.StatusText(tt.wantStatus),
				Status:       tt.wantStatus,
				Detail:       tt.wantDetail,
				Instance:     "/api/v1/lists/L1/tasks/t1",
				Notification: tt.wantNotify,
			}
			resp.Errors = nil
			if !reflect.DeepEqual(resp, want) {
				t.Errorf("body = %+v, want %+v", resp, want)
			}
		})
	}
}

func TestNewErrorResponse_FieldErrorsSorted(t *testing.T) {
	t.Parallel()

	verr := &domain.ValidationError{Fields: map[string]string{
		"title":    domain.MsgRequired,
		"priority": `invalid: "urgent"`,
		"due_date": domain.MsgRequired,
	}}
	r := httptest.NewRequest(http.MethodPost, "/api/v1/lists/L1/tasks", http.NoBody)

	got := dto.NewErrorResponse(r, verr).Errors

	want := []dto.ErrorDetail{
		{Location: "body.due_date", Message: domain.MsgRequired},
		{Location: "body.priority", Message: `invalid: "urgent"`},
		{Location: "body.title", Message: domain.MsgRequired},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Errors = %+v, want %+v", got, want)
	}

	if errs := dto.NewErrorResponse(r, domain.ErrNotFound).Errors; errs != nil {
		t.Errorf("Errors = %v for a non-validation error, want nil", errs)
	}
}

func TestWriteStatusResponse(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/lists", http.NoBody)

	dto.WriteStatusResponse(w, r, http.StatusGatewayTimeout, "request timed out after 20ms")

	if w.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want %d", w.Code, http.StatusGatewayTimeout)
	}
	var resp dto.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if resp.Title != "Gateway Timeout" || resp.Detail != "request timed out after 20ms" || resp.Instance != "/api/v1/lists" {
		t.Errorf("body = %+v", resp)
	}
}

package dto

import (
	"encoding/json"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"slices"

	"github.com/jsamuelsen11/todolists/internal/domain"
)

// backendRetryAfter is sent with 502s, when Firebase or redis is down.
const backendRetryAfter = "5"

// ErrorResponse is an RFC 9457 problem document. Notification holds the
// message a client shows in a blocking alert after a failed sign-up,
// log-in or log-out.
type ErrorResponse struct {
	Type         string        `json:"type"`
	Title        string        `json:"title"`
	Status       int           `json:"status"`
	Detail       string        `json:"detail,omitempty"`
	Instance     string        `json:"instance,omitempty"`
	Notification string        `json:"notification,omitempty"`
	Errors       []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail is one rejected request field.
type ErrorDetail struct {
	Location string `json:"location"`
	Message  string `json:"message"`
	Value    any    `json:"value,omitempty"`
}

// statusBySentinel is checked in order; the first match wins.
var statusBySentinel = []struct {
	err    error
	status int
}{
	{domain.ErrValidation, http.StatusBadRequest},
	{domain.ErrUnauthenticated, http.StatusUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrUnavailable, http.StatusBadGateway},
}

// NewErrorResponse renders err for the client. Errors matching no domain
// sentinel become a 500 whose detail does not echo err.
func NewErrorResponse(r *http.Request, err error) ErrorResponse {
	status := http.StatusInternalServerError
	for _, m := range statusBySentinel {
		if errors.Is(err, m.err) {
			status = m.status
			break
		}
	}

	detail := "internal error"
	if status != http.StatusInternalServerError {
		detail = err.Error()
	}
	resp := problem(r, status, detail)

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Errors = fieldErrors(verr.Fields)
	}
	var aerr *domain.AuthError
	if errors.As(err, &aerr) && aerr.Err != nil {
		resp.Notification = aerr.Err.Error()
	}
	return resp
}

// WriteErrorResponse writes err as application/problem+json.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	writeProblem(w, r, NewErrorResponse(r, err))
}

// WriteStatusResponse writes a problem with no domain error behind it, such
// as a request timeout.
func WriteStatusResponse(w http.ResponseWriter, r *http.Request, status int, detail string) {
	writeProblem(w, r, problem(r, status, detail))
}

func problem(r *http.Request, status int, detail string) ErrorResponse {
	return ErrorResponse{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: r.RequestURI,
	}
}

func writeProblem(w http.ResponseWriter, r *http.Request, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/problem+json")
	if resp.Status == http.StatusBadGateway {
		w.Header().Set("Retry-After", backendRetryAfter)
	}
	w.WriteHeader(resp.Status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.ErrorContext(r.Context(), "encoding problem response",
			slog.Int("status", resp.Status),
			slog.Any("error", err),
		)
	}
}

func fieldErrors(fields map[string]string) []ErrorDetail {
	out := make([]ErrorDetail, 0, len(fields))
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		out = append(out, ErrorDetail{Location: "body." + name, Message: fields[name]})
	}
	return out
}

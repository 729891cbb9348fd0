package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/todolists/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todolists/internal/domain"
	"github.com/jsamuelsen11/todolists/internal/domain/user"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

// Path parameter names.
const (
	paramListID = "listId"
	paramTaskID = "taskId"
)

// pathParam extracts a non-empty chi URL parameter.
func pathParam(r *http.Request, param string) (string, error) {
	v := strings.TrimSpace(chi.URLParam(r, param))
	if v == "" {
		return "", &domain.ValidationError{
			Fields: map[string]string{param: domain.MsgRequired},
		}
	}
	return v, nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

// maxJSONBodyBytes is the maximum allowed size for a JSON request body (64 KB).
const maxJSONBodyBytes = 64 << 10

// decodeJSONBody decodes the request body as JSON into dst. The body is
// limited to maxJSONBodyBytes to prevent resource exhaustion. On failure,
// it writes a 400 error response and returns false.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"body": "invalid JSON"},
		})
		return false
	}
	return true
}

// validatable is implemented by request DTOs that support validation.
type validatable interface {
	Validate() error
}

// decodeAndValidate decodes the JSON request body into dst and validates it.
// On decode or validation failure it writes an error response and returns false.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	if !decodeJSONBody(w, r, dst) {
		return false
	}
	if err := dst.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}

// viewSource resolves the todo view of the request's session.
type viewSource struct {
	views ports.TodoViews
}

// view returns the view for the session placed in the context by the
// session middleware. On failure it writes an error response and returns
// false.
func (s viewSource) view(w http.ResponseWriter, r *http.Request) (ports.TodoView, bool) {
	sess := user.SessionFromContext(r.Context())
	if sess == nil {
		dto.WriteErrorResponse(w, r, domain.ErrUnauthenticated)
		return nil, false
	}

	v, err := s.views.View(r.Context(), sess)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return nil, false
	}
	return v, true
}

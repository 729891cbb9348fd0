// Package acl is the anti-corruption layer between this service and the
// Firebase REST APIs: Identity Toolkit and Secure Token for accounts, and
// Firestore for documents. Wire formats live in the identity and firestore
// subpackages; this package owns the transport and error mapping.
package acl

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/todolists/internal/domain"
)

// maxErrorBodySize limits how much of an error response body we read.
const maxErrorBodySize = 1 << 20

// errorEnvelope is the error body shared by Google REST APIs.
type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// authReasons maps Identity Toolkit error codes, carried in the envelope's
// message, to domain errors.
var authReasons = map[string]error{
	"EMAIL_EXISTS":                domain.ErrConflict,
	"EMAIL_NOT_FOUND":             domain.ErrUnauthenticated,
	"INVALID_PASSWORD":            domain.ErrUnauthenticated,
	"INVALID_LOGIN_CREDENTIALS":   domain.ErrUnauthenticated,
	"USER_DISABLED":               domain.ErrUnauthenticated,
	"USER_NOT_FOUND":              domain.ErrUnauthenticated,
	"INVALID_ID_TOKEN":            domain.ErrUnauthenticated,
	"TOKEN_EXPIRED":               domain.ErrUnauthenticated,
	"INVALID_REFRESH_TOKEN":       domain.ErrUnauthenticated,
	"OPERATION_NOT_ALLOWED":       domain.ErrForbidden,
	"TOO_MANY_ATTEMPTS_TRY_LATER": domain.ErrUnavailable,
}

// authFieldReasons are Identity Toolkit codes that blame one form field.
var authFieldReasons = map[string][2]string{
	"INVALID_EMAIL":    {"email", "must be a valid email address"},
	"MISSING_EMAIL":    {"email", domain.MsgRequired},
	"WEAK_PASSWORD":    {"password", "must be at least 6 characters"},
	"MISSING_PASSWORD": {"password", domain.MsgRequired},
}

// statusErrors maps canonical google.rpc status names to domain errors.
var statusErrors = map[string]error{
	"NOT_FOUND":           domain.ErrNotFound,
	"ALREADY_EXISTS":      domain.ErrConflict,
	"FAILED_PRECONDITION": domain.ErrConflict,
	"ABORTED":             domain.ErrConflict,
	"INVALID_ARGUMENT":    domain.ErrValidation,
	"PERMISSION_DENIED":   domain.ErrForbidden,
	"UNAUTHENTICATED":     domain.ErrUnauthenticated,
	"RESOURCE_EXHAUSTED":  domain.ErrUnavailable,
	"UNAVAILABLE":         domain.ErrUnavailable,
	"INTERNAL":            domain.ErrUnavailable,
	"DEADLINE_EXCEEDED":   domain.ErrUnavailable,
}

// TranslateHTTPError maps an error response from a Google API to a domain
// error. Identity Toolkit reason codes are checked first, then the
// canonical status name, then the HTTP status code.
func TranslateHTTPError(resp *http.Response) error {
	env := parseEnvelope(resp)

	message := env.Error.Message
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	// Identity Toolkit appends detail: "WEAK_PASSWORD : Password should be...".
	reason, _, _ := strings.Cut(message, " : ")
	reason = strings.TrimSpace(reason)

	if f, ok := authFieldReasons[reason]; ok {
		return &domain.ValidationError{Fields: map[string]string{f[0]: f[1]}}
	}
	if sentinel, ok := authReasons[reason]; ok {
		return fmt.Errorf("%s: %w", reason, sentinel)
	}
	if sentinel, ok := statusErrors[env.Error.Status]; ok {
		return fmt.Errorf("%s: %w", message, sentinel)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", message, domain.ErrNotFound)
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%s: %w", message, domain.ErrValidation)
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%s: %w", message, domain.ErrConflict)
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", message, domain.ErrUnauthenticated)
	case resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %w", message, domain.ErrForbidden)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%s: %w", message, domain.ErrUnavailable)
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, message)
	}
}

// parseEnvelope reads the error envelope, returning a zero value when the
// body is absent or not JSON.
func parseEnvelope(resp *http.Response) errorEnvelope {
	var env errorEnvelope
	if resp.Body == nil {
		return env
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return env
	}
	_ = json.Unmarshal(body, &env)
	return env
}

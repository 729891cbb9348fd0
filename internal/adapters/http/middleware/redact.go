package middleware

import (
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strings"
)

const redacted = "[REDACTED]"

// credentialHeaders hold session cookies, Firebase ID tokens and API keys.
var credentialHeaders = []string{
	"Authorization",
	"Cookie",
	"Set-Cookie",
	"X-Api-Key",
	"X-Goog-Api-Key",
}

// RedactHeaders returns one attribute per header, sorted by name, with
// credentials replaced by "[REDACTED]". Repeated values are comma-joined.
func RedactHeaders(headers http.Header) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(headers))
	for _, name := range slices.Sorted(maps.Keys(headers)) {
		value := redacted
		if !slices.Contains(credentialHeaders, http.CanonicalHeaderKey(name)) {
			value = strings.Join(headers[name], ",")
		}
		attrs = append(attrs, slog.String(name, value))
	}
	return attrs
}

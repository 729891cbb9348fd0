package logging

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/m-mizutani/masq"
)

// SensitiveHeaders lists the lowercase header names that carry credentials.
// The HTTP middleware redacts the same set so the two cannot drift.
var SensitiveHeaders = map[string]bool{
	"authorization":  true,
	"x-api-key":      true,
	"x-goog-api-key": true,
	"cookie":         true,
	"set-cookie":     true,
}

// sensitiveFields are attribute keys redacted wherever they appear. Both the
// snake_case used in our logs and the camelCase of the backend wire format
// are listed.
var sensitiveFields = []string{
	"password",
	"secret",
	"token",
	"id_token",
	"idToken",
	"refresh_token",
	"refreshToken",
	"session_id",
	"emulator_secret",
}

var (
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`)

	// jwtPattern requires 10+ characters per segment so version strings
	// like 1.2.3 survive.
	jwtPattern = regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`)

	apiKeyInlinePattern = regexp.MustCompile(`(?i)(api[_\-]?key|apikey|key)\s*[:=]\s*[^\s&]+`)

	// googleAPIKeyPattern matches browser API keys such as Firebase web keys.
	googleAPIKeyPattern = regexp.MustCompile(`AIza[0-9A-Za-z\-_]{35}`)
)

// newRedactAttr builds the masq ReplaceAttr. extra names additional
// attribute keys to redact, such as the configured session cookie name.
func newRedactAttr(extra ...string) func([]string, slog.Attr) slog.Attr {
	opts := make([]masq.Option, 0, len(SensitiveHeaders)+len(sensitiveFields)+len(extra)+6)

	for name := range SensitiveHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, name := range sensitiveFields {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, name := range extra {
		if name = strings.TrimSpace(name); name != "" {
			opts = append(opts, masq.WithFieldName(name))
		}
	}

	opts = append(opts,
		masq.WithFieldPrefix("secret_"),
		masq.WithFieldPrefix("api_key"),
		masq.WithRegex(bearerPattern),
		masq.WithRegex(jwtPattern),
		masq.WithRegex(apiKeyInlinePattern),
		masq.WithRegex(googleAPIKeyPattern),
	)

	return masq.New(opts...)
}

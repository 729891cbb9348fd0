package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/jsamuelsen11/todolists/internal/domain/user"
	"github.com/jsamuelsen11/todolists/internal/platform/httpclient"
)

// apiKeyHeader carries the project's browser API key on every Google API
// call.
const apiKeyHeader = "X-Goog-Api-Key"

// Requester runs one JSON request/response exchange against a Google REST
// API: it builds the URL, encodes the body, attaches credentials, checks
// the status, translates error envelopes, and decodes the reply.
type Requester struct {
	client       *httpclient.Client
	apiKey       string
	sessionToken bool
	logger       *slog.Logger
}

// RequesterOption configures a Requester.
type RequesterOption func(*Requester)

// WithAPIKey sends key in the X-Goog-Api-Key header.
func WithAPIKey(key string) RequesterOption {
	return func(r *Requester) { r.apiKey = key }
}

// WithSessionToken sends the ID token of the session in the request
// context as a bearer token. Requests without a session go unauthenticated
// and are rejected by the backend's access rules.
func WithSessionToken() RequesterOption {
	return func(r *Requester) { r.sessionToken = true }
}

// NewRequester creates a Requester on top of client.
func NewRequester(client *httpclient.Client, logger *slog.Logger, opts ...RequesterOption) *Requester {
	r := &Requester{client: client, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Client returns the underlying transport.
func (r *Requester) Client() *httpclient.Client {
	return r.client
}

// Do sends method to path (relative to the client's base URL) with query
// parameters. A non-nil reqBody is sent as JSON; a non-nil respBody
// receives the decoded reply. Any status other than wantStatus is
// translated by TranslateHTTPError.
func (r *Requester) Do(ctx context.Context, method, path string, query url.Values, wantStatus int, reqBody, respBody any) error {
	req, err := r.newRequest(ctx, method, path, query, reqBody)
	if err != nil {
		return err
	}
	return r.execute(ctx, req, wantStatus, respBody)
}

func (r *Requester) newRequest(ctx context.Context, method, path string, query url.Values, reqBody any) (*http.Request, error) {
	target := r.client.BaseURL() + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	body := io.Reader(http.NoBody)
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s body for %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("creating %s request for %s: %w", method, path, err)
	}

	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.apiKey != "" {
		req.Header.Set(apiKeyHeader, r.apiKey)
	}
	if r.sessionToken {
		if s := user.SessionFromContext(ctx); s != nil && s.IDToken != "" {
			req.Header.Set("Authorization", "Bearer "+s.IDToken)
		}
	}
	return req, nil
}

func (r *Requester) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		r.logger.WarnContext(ctx, "failed to close response body", slog.Any("error", err))
	}
}

// execute sends req and always closes the response body.
func (r *Requester) execute(ctx context.Context, req *http.Request, wantStatus int, respBody any) error {
	resp, err := r.client.Do(ctx, req)
	if resp != nil {
		defer r.closeBody(ctx, resp)
	}
	if err != nil && resp == nil {
		r.logger.ErrorContext(ctx, "backend request failed",
			slog.String("operation", "acl.Requester.Do"),
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.String("peer_service", r.client.Name()),
			slog.Any("error", err),
		)
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}

	// With exhausted retries both resp and err are set; the status tells
	// the caller more than the retry error does.
	if resp.StatusCode != wantStatus {
		translated := TranslateHTTPError(resp)
		r.logger.WarnContext(ctx, "unexpected backend status",
			slog.String("operation", "acl.Requester.Do"),
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Int("status", resp.StatusCode),
			slog.Int("want_status", wantStatus),
			slog.Any("error", translated),
		)
		return translated
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return fmt.Errorf("decoding response from %s %s: %w", req.Method, req.URL.Path, err)
		}
	}
	return nil
}

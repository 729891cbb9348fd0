package acl

import (
	"context"
	"errors"

	"github.com/jsamuelsen11/todolists/internal/ports"
)

var (
	_ ports.HealthChecker = (*AuthClient)(nil)
	_ ports.HealthChecker = (*FirestoreClient)(nil)
)

// Name identifies the auth backend in health reports.
func (c *AuthClient) Name() string {
	return "firebase-auth"
}

// HealthCheck reports the circuit breakers of both auth endpoints. No
// request is sent.
func (c *AuthClient) HealthCheck(ctx context.Context) error {
	return errors.Join(
		c.accounts.Client().HealthCheck(ctx),
		c.tokens.Client().HealthCheck(ctx),
	)
}

// Name identifies the document store in health reports.
func (c *FirestoreClient) Name() string {
	return "firestore"
}

// HealthCheck reports the Firestore circuit breaker without a request.
func (c *FirestoreClient) HealthCheck(ctx context.Context) error {
	return c.req.Client().HealthCheck(ctx)
}

package ports

import "context"

// HealthChecker is a dependency /health/ready consults: a Firebase
// client, the in-memory backend, or the redis session store.
type HealthChecker interface {
	// Name keys the checker in readiness output, e.g. "firebase-auth".
	Name() string
	HealthCheck(ctx context.Context) error
}

// HealthRegistry runs every registered checker. CheckAll maps each name to
// its error, nil when healthy.
type HealthRegistry interface {
	Register(checker HealthChecker)
	CheckAll(ctx context.Context) map[string]error
}

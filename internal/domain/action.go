package domain

import "context"

// Action is one backend write queued during a request, such as creating a
// task copy in the destination list during a move.
type Action interface {
	Execute(ctx context.Context) error

	// Rollback undoes a successful Execute. It is called with a context
	// detached from the request's cancellation.
	Rollback(ctx context.Context) error

	// Description names the write for logs, e.g. "delete task t1 from list L1".
	Description() string
}

// WriteStager queues Actions. Entities staged under a key are visible to
// later reads of that key before the writes commit.
type WriteStager interface {
	Stage(key string, entity any, action Action) error

	// Execute runs action now, outside the queue. It is never rolled back.
	Execute(action Action) error
}

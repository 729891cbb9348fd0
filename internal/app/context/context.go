// Package appctx provides the request-scoped unit of work used by the view
// layer for multi-step backend writes.
//
// A RequestContext memoizes reads and queues write actions. Commit runs the
// queue in order and, if a step fails, rolls back the steps that already
// succeeded in reverse order:
//
//	rc := appctx.New(ctx)
//
//	// Stage the copy; the cached entity gains its id when the action runs.
//	err := rc.Stage("task:copy", copied, createAction)
//
//	// Queue the removal of the original.
//	err = rc.AddAction(deleteAction)
//
//	// Run both; a failed delete deletes the copy again.
//	err = rc.Commit(ctx)
package appctx

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jsamuelsen11/todolists/internal/domain"
)

// Compile-time check that RequestContext implements domain.WriteStager.
var _ domain.WriteStager = (*RequestContext)(nil)

// ErrAlreadyCommitted is returned when AddAction, Stage, or Commit is
// called on a RequestContext that has already been committed.
var ErrAlreadyCommitted = errors.New("appctx: request context already committed")

// ErrNilAction is returned when a nil Action is queued.
var ErrNilAction = errors.New("appctx: nil action")

// ErrTypeMismatch is returned by GetOrFetch when a cached value's type does
// not match the requested type T.
var ErrTypeMismatch = errors.New("appctx: cached value type mismatch")

// RequestContext embeds context.Context and adds a read cache and a queue of
// write actions. Create one per request, or per multi-step operation, and
// commit it at most once.
type RequestContext struct {
	context.Context

	cacheMu sync.Mutex
	cache   map[string]cacheEntry

	queueMu   sync.Mutex
	actions   []domain.Action
	committed bool
}

// cacheEntry stores the result of a GetOrFetch call. Errors are cached too.
type cacheEntry struct {
	value any
	err   error
}

// New creates a RequestContext wrapping ctx with an empty cache and queue.
func New(ctx context.Context) *RequestContext {
	return &RequestContext{
		Context: ctx,
		cache:   make(map[string]cacheEntry),
	}
}

type requestContextKey struct{}

// WithRequestContext returns a copy of ctx carrying rc.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// FromContext returns the RequestContext stored by WithRequestContext, or nil.
func FromContext(ctx context.Context) *RequestContext {
	rc, _ := ctx.Value(requestContextKey{}).(*RequestContext)
	return rc
}

// GetOrFetch returns the cached value for key, or calls fetchFn and caches
// its result. The same key must always be used with the same type T.
//
// The cache lock is not held while fetchFn runs, so two concurrent misses on
// one key may both fetch; the later result wins.
func GetOrFetch[T any](rc *RequestContext, key string, fetchFn func(ctx context.Context) (T, error)) (T, error) {
	rc.cacheMu.Lock()
	entry, ok := rc.cache[key]
	rc.cacheMu.Unlock()

	if ok {
		var zero T
		if entry.err != nil {
			return zero, entry.err
		}
		v, ok := entry.value.(T)
		if !ok {
			return zero, fmt.Errorf("%w: key %q holds %T, requested %T", ErrTypeMismatch, key, entry.value, zero)
		}
		return v, nil
	}

	val, err := fetchFn(rc.Context)

	rc.cacheMu.Lock()
	rc.cache[key] = cacheEntry{value: val, err: err}
	rc.cacheMu.Unlock()

	return val, err
}

// Peek returns the cached value for key without fetching. ok is false
// when nothing is cached, the fetch failed, or the value is not a T.
func Peek[T any](rc *RequestContext, key string) (v T, ok bool) {
	rc.cacheMu.Lock()
	entry, found := rc.cache[key]
	rc.cacheMu.Unlock()

	if !found || entry.err != nil {
		return v, false
	}
	v, ok = entry.value.(T)
	return v, ok
}

// Stage caches entity under key and queues action for Commit. Later
// GetOrFetch calls for key return entity without fetching.
func (rc *RequestContext) Stage(key string, entity any, action domain.Action) error {
	if err := rc.AddAction(action); err != nil {
		return err
	}

	rc.cacheMu.Lock()
	rc.cache[key] = cacheEntry{value: entity}
	rc.cacheMu.Unlock()

	return nil
}

// AddAction queues action for Commit.
func (rc *RequestContext) AddAction(action domain.Action) error {
	if action == nil {
		return ErrNilAction
	}

	rc.queueMu.Lock()
	defer rc.queueMu.Unlock()

	if rc.committed {
		return ErrAlreadyCommitted
	}
	rc.actions = append(rc.actions, action)
	return nil
}

// Execute runs action immediately using the embedded context. It is not
// queued and is never rolled back. Works after Commit.
func (rc *RequestContext) Execute(action domain.Action) error {
	if action == nil {
		return ErrNilAction
	}
	return action.Execute(rc.Context)
}

// Pending returns the number of queued actions.
func (rc *RequestContext) Pending() int {
	rc.queueMu.Lock()
	defer rc.queueMu.Unlock()
	return len(rc.actions)
}

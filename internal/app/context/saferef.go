package appctx

import "sync"

// SafeRef guards a value shared between goroutines. Reads take a shared
// lock; Set and Update take the exclusive lock.
type SafeRef[T any] struct {
	mu  sync.RWMutex
	val T
}

// NewRef creates a SafeRef holding val.
func NewRef[T any](val T) *SafeRef[T] {
	return &SafeRef[T]{val: val}
}

// Get returns the current value. For reference types (slices, maps,
// pointers) the caller must not mutate what it receives; use View or Update.
func (r *SafeRef[T]) Get() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.val
}

// Set replaces the current value.
func (r *SafeRef[T]) Set(val T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.val = val
}

// Update applies fn to the value under the write lock.
func (r *SafeRef[T]) Update(fn func(*T)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.val)
}

// View calls fn with the value under the read lock and returns its result.
// fn must not retain or mutate v.
func View[T, R any](r *SafeRef[T], fn func(v *T) R) R {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fn(&r.val)
}

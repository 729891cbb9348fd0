// Package fanout runs a function over a slice with bounded concurrency,
// keeping results in input order. The view uses it to fetch every list's
// tasks in parallel during a refresh.
package fanout

import (
	"context"
	"errors"
	"sync"
)

// Result holds the outcome of processing a single item.
type Result[R any] struct {
	Value R
	Err   error
}

// Run calls fn for each item using at most maxWorkers goroutines and returns
// the results in input order. Values of maxWorkers below 1 are treated as 1.
//
// Items still waiting for a slot when ctx is canceled record ctx.Err()
// without calling fn. An empty input yields an empty non-nil slice.
func Run[T, R any](ctx context.Context, maxWorkers int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	if len(items) == 0 {
		return []Result[R]{}
	}
	maxWorkers = max(maxWorkers, 1)

	results := make([]Result[R], len(items))
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Go(func() {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[i] = Result[R]{Err: ctx.Err()}
				return
			}

			val, err := fn(ctx, item)
			results[i] = Result[R]{Value: val, Err: err}
		})
	}

	wg.Wait()
	return results
}

// All is Run for all-or-nothing callers. The first failure cancels the
// items not yet started and the failures are returned joined; cancellations
// caused by that failure are not reported. On success the values are
// returned in input order.
func All[T, R any](ctx context.Context, maxWorkers int, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := Run(ctx, maxWorkers, items, func(ctx context.Context, item T) (R, error) {
		val, err := fn(ctx, item)
		if err != nil {
			cancel()
		}
		return val, err
	})

	values := make([]R, len(results))
	var errs []error
	var canceled error
	for i, r := range results {
		switch {
		case r.Err == nil:
			values[i] = r.Value
		case errors.Is(r.Err, context.Canceled):
			canceled = r.Err
		default:
			errs = append(errs, r.Err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if canceled != nil {
		return nil, canceled
	}
	return values, nil
}

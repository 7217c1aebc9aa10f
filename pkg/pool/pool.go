package pool

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// TaskFunc defines the function signature for a worker that processes an item and may return an error.
type TaskFunc[T any] func(ctx context.Context, item T) error

// Run processes a slice of items concurrently with a bounded number of
// workers. Unlike errgroup's default behavior, one failing item does not stop
// the rest; every error is collected and returned.
func Run[T any](ctx context.Context, items []T, numWorkers int, taskFunc TaskFunc[T]) []error {
	if numWorkers < 1 {
		numWorkers = 1
	}

	var (
		mu        sync.Mutex
		allErrors []error
	)

	g := &errgroup.Group{}
	g.SetLimit(numWorkers)

	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		item := item
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			if err := taskFunc(ctx, item); err != nil {
				mu.Lock()
				allErrors = append(allErrors, err)
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return allErrors
}

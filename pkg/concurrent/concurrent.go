package concurrent

import (
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Each runs action for every item with at most workers goroutines in flight.
// Unlike errgroup it does not stop at the first failure: every item is
// processed and all errors are joined. workers <= 0 means no limit.
func Each[T any](items []T, workers int, action func(T) error) error {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for _, item := range items {
		g.Go(func() error {
			if err := action(item); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return errors.Join(errs...)
}

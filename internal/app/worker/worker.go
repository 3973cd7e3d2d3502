package worker

import (
	"context"
	"sync"

	"lunatint/internal/config"
)

// Pool bounds how many tasks run at once
type Pool interface {
	Acquire(ctx context.Context) error
	Release()
	Run(ctx context.Context, n int, task func(i int) error) error
}

type pool struct {
	sem chan struct{}
}

// NewWorkerPool creates a new worker pool sized by concurrency.workers
func NewWorkerPool(cfg *config.Config) Pool {
	return newPool(cfg.Concurrency.Workers)
}

func newPool(size int) *pool {
	if size <= 0 {
		size = 1
	}

	return &pool{
		sem: make(chan struct{}, size),
	}
}

// Acquire acquires a worker slot, blocking if all workers are busy or returning error if context is cancelled
func (w *pool) Acquire(ctx context.Context) error {
	select {
	case w.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release releases a worker slot
func (w *pool) Release() {
	<-w.sem
}

// Run executes task for every index in [0, n) on the pool and waits for all started tasks.
// Scheduling stops after the first failure; the error of the lowest failing index is returned.
func (w *pool) Run(ctx context.Context, n int, task func(i int) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg         sync.WaitGroup
		errs       = make([]error, n)
		acquireErr error
	)

	for i := 0; i < n; i++ {
		if err := w.Acquire(ctx); err != nil {
			acquireErr = err
			break
		}

		wg.Add(1)

		go func(i int) {
			defer wg.Done()
			defer w.Release()

			if err := task(i); err != nil {
				errs[i] = err
				cancel()
			}
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return acquireErr
}

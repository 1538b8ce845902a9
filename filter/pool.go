package filter

import (
	"context"
	"errors"
	"sync"
)

// ErrPoolStopped is returned when work is submitted to a stopped pool
var ErrPoolStopped = errors.New("worker pool is stopped")

// workerPool implements WorkerPool with bounded concurrency
type workerPool struct {
	workers  int
	workChan chan func()
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewWorkerPool creates a new worker pool with the specified number of workers
func NewWorkerPool(workers int) WorkerPool {
	if workers <= 0 {
		workers = 1
	}

	pool := &workerPool{
		workers:  workers,
		workChan: make(chan func(), workers*2),
		done:     make(chan struct{}),
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

// worker runs submitted work until the pool stops
func (p *workerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case work := <-p.workChan:
			if work != nil {
				work()
			}
		case <-p.done:
			// Drain what was accepted before Stop
			for {
				select {
				case work := <-p.workChan:
					if work != nil {
						work()
					}
				default:
					return
				}
			}
		}
	}
}

// Submit submits work to the pool. It blocks while every worker is busy and
// the buffer is full, until ctx is done or the pool stops.
func (p *workerPool) Submit(ctx context.Context, work func()) error {
	select {
	case <-p.done:
		return ErrPoolStopped
	default:
	}

	select {
	case p.workChan <- work:
		return nil
	case <-p.done:
		return ErrPoolStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop gracefully stops the worker pool, running work already accepted
func (p *workerPool) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.done)
	})

	finished := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

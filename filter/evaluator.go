package filter

import (
	"context"
	"runtime"
	"sync"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the batch size for chunked processing
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator implements both Evaluator and BatchEvaluator
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
	pool        WorkerPool
}

var (
	_ Evaluator      = (*ConcurrentEvaluator)(nil)
	_ BatchEvaluator = (*ConcurrentEvaluator)(nil)
)

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.pool = NewWorkerPool(e.workerCount)

	return e
}

// Evaluate returns the indexes of the environments matching filter
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter CompiledFilter, envs []Env) ([]int, error) {
	if len(envs) == 0 {
		return []int{}, nil
	}

	// Small inputs and filters that cannot share state are run inline
	if len(envs) < e.batchSize || !filter.IsThreadSafe() {
		return evaluateRange(filter, envs, 0), nil
	}

	return e.evaluateConcurrent(ctx, filter, envs)
}

// EvaluateBatch evaluates multiple filters against the same environments.
// Filters that fail are left out of the result.
func (e *ConcurrentEvaluator) EvaluateBatch(ctx context.Context, filters map[string]CompiledFilter, envs []Env) (map[string][]int, error) {
	results := make(map[string][]int, len(filters))
	if len(filters) == 0 || len(envs) == 0 {
		return results, nil
	}

	// Each filter gets its own goroutine: running them on the pool would
	// deadlock once they submit their chunks to the same pool.
	resultChan := make(chan BatchResult, len(filters))
	var wg sync.WaitGroup
	for name, filter := range filters {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				resultChan <- BatchResult{FilterName: name, Error: err}
				return
			}

			matches, err := e.Evaluate(ctx, filter, envs)
			resultChan <- BatchResult{FilterName: name, Matches: matches, Error: err}
		}()
	}

	wg.Wait()
	close(resultChan)

	for result := range resultChan {
		if result.Error != nil {
			continue
		}
		results[result.FilterName] = result.Matches
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// evaluateRange evaluates filter on envs; offset is added to every index
func evaluateRange(filter CompiledFilter, envs []Env, offset int) []int {
	matches := make([]int, 0, len(envs)/4)
	for i, env := range envs {
		if filter.Evaluate(env) {
			matches = append(matches, offset+i)
		}
	}
	return matches
}

// evaluateConcurrent splits envs in chunks evaluated on the worker pool
func (e *ConcurrentEvaluator) evaluateConcurrent(ctx context.Context, filter CompiledFilter, envs []Env) ([]int, error) {
	chunkSize := max(len(envs)/e.workerCount, e.batchSize)
	chunks := (len(envs) + chunkSize - 1) / chunkSize

	// Each chunk writes its own slot
	results := make([][]int, chunks)
	var wg sync.WaitGroup

	for c := 0; c < chunks; c++ {
		start := c * chunkSize
		end := min(start+chunkSize, len(envs))

		wg.Add(1)
		err := e.pool.Submit(ctx, func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			results[c] = evaluateRange(filter, envs[start:end], start)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	matches := make([]int, 0, total)
	for _, r := range results {
		matches = append(matches, r...)
	}
	return matches, nil
}

// Stop gracefully stops the evaluator's worker pool
func (e *ConcurrentEvaluator) Stop(ctx context.Context) error {
	return e.pool.Stop(ctx)
}

// Select returns the items whose environment matches filter, in input order
func Select[T any](ctx context.Context, evaluator Evaluator, filter CompiledFilter, items []T, toEnv func(T) Env) ([]T, error) {
	envs := make([]Env, len(items))
	for i, item := range items {
		envs[i] = toEnv(item)
	}

	indexes, err := evaluator.Evaluate(ctx, filter, envs)
	if err != nil {
		return nil, err
	}

	selected := make([]T, len(indexes))
	for i, idx := range indexes {
		selected[i] = items[idx]
	}
	return selected, nil
}

package filter

import (
	"context"
)

// Env holds the variables an expression sees for one record
type Env map[string]any

// Filter defines the basic interface for record filters
type Filter interface {
	// Evaluate checks if a record environment matches the filter criteria
	Evaluate(env Env) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Run evaluates the filter and reports evaluation failures instead of
	// treating them as a non-match
	Run(env Env) (bool, error)

	// Expression returns the original filter expression
	Expression() string

	// IsThreadSafe indicates if the filter can be evaluated concurrently
	IsThreadSafe() bool
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// Evaluator evaluates filters against record environments
type Evaluator interface {
	// Evaluate returns the indexes of the environments matching filter, in
	// input order
	Evaluate(ctx context.Context, filter CompiledFilter, envs []Env) ([]int, error)
}

// BatchEvaluator evaluates multiple filters concurrently
type BatchEvaluator interface {
	// EvaluateBatch evaluates multiple filters against the same environments
	EvaluateBatch(ctx context.Context, filters map[string]CompiledFilter, envs []Env) (map[string][]int, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// BatchResult represents the result of evaluating a filter
type BatchResult struct {
	FilterName string
	Matches    []int
	Error      error
}

// WorkerPool defines the interface for concurrent work execution
type WorkerPool interface {
	// Submit submits work to the pool, waiting for a free slot until ctx is done
	Submit(ctx context.Context, work func()) error

	// Stop gracefully stops the worker pool
	Stop(ctx context.Context) error
}

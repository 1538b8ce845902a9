package filter

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Manager keeps named filters, such as configured presets, and compiles
// ad-hoc expressions with the same compiler
type Manager struct {
	compiler  Compiler
	evaluator *ConcurrentEvaluator
	filters   map[string]CompiledFilter
	mu        sync.RWMutex
}

// NewManager creates a new filter manager. The default compiler caches
// compiled expressions and accepts the simple "field=value" syntax.
func NewManager() *Manager {
	return &Manager{
		compiler:  NewExprCompiler(WithCache(100), WithSimpleSyntax()),
		evaluator: NewConcurrentEvaluator(),
		filters:   make(map[string]CompiledFilter),
	}
}

// Evaluator returns the evaluator used by the manager
func (m *Manager) Evaluator() *ConcurrentEvaluator {
	return m.evaluator
}

// Compile compiles an ad-hoc expression
func (m *Manager) Compile(expression string) (CompiledFilter, error) {
	return m.compiler.Compile(expression)
}

// RegisterFilter registers a new filter or updates an existing one
func (m *Manager) RegisterFilter(name, expression string) error {
	filter, err := m.compiler.Compile(expression)
	if err != nil {
		return fmt.Errorf("failed to compile filter '%s': %w", name, err)
	}

	m.mu.Lock()
	m.filters[name] = filter
	m.mu.Unlock()

	return nil
}

// RegisterFilters registers multiple filters at once. Nothing is registered
// if one of them fails to compile.
func (m *Manager) RegisterFilters(filters map[string]string) error {
	compiled := make(map[string]CompiledFilter, len(filters))

	for name, expr := range filters {
		filter, err := m.compiler.Compile(expr)
		if err != nil {
			return fmt.Errorf("failed to compile filter '%s': %w", name, err)
		}
		compiled[name] = filter
	}

	m.mu.Lock()
	maps.Copy(m.filters, compiled)
	m.mu.Unlock()

	return nil
}

// GetFilter returns a compiled filter by name
func (m *Manager) GetFilter(name string) (CompiledFilter, bool) {
	m.mu.RLock()
	filter, exists := m.filters[name]
	m.mu.RUnlock()
	return filter, exists
}

// ListFilters returns all registered filter names, sorted
func (m *Manager) ListFilters() []string {
	m.mu.RLock()
	names := slices.Collect(maps.Keys(m.filters))
	m.mu.RUnlock()

	slices.Sort(names)
	return names
}

// Resolve picks the filter a command should apply: the named preset, the
// ad-hoc expression, or both combined with "and". It returns nil when
// neither is given.
func (m *Manager) Resolve(expression, preset string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	preset = strings.TrimSpace(preset)

	var presetFilter CompiledFilter
	if preset != "" {
		f, ok := m.GetFilter(preset)
		if !ok {
			return nil, fmt.Errorf("%w: '%s'", ErrUnknownFilter, preset)
		}
		presetFilter = f
	}

	switch {
	case presetFilter == nil && expression == "":
		return nil, nil
	case presetFilter == nil:
		return m.compiler.Compile(expression)
	case expression == "":
		return presetFilter, nil
	}

	adhoc, err := m.compiler.Compile(expression)
	if err != nil {
		return nil, err
	}
	return m.compiler.Compile(fmt.Sprintf("(%s) and (%s)", sourceOf(presetFilter), sourceOf(adhoc)))
}

// EvaluateAll evaluates all registered filters
func (m *Manager) EvaluateAll(ctx context.Context, envs []Env) (map[string][]int, error) {
	m.mu.RLock()
	filters := maps.Clone(m.filters)
	m.mu.RUnlock()

	return m.evaluator.EvaluateBatch(ctx, filters, envs)
}

// EvaluateSelected evaluates only the specified filters
func (m *Manager) EvaluateSelected(ctx context.Context, filterNames []string, envs []Env) (map[string][]int, error) {
	m.mu.RLock()
	filters := make(map[string]CompiledFilter, len(filterNames))
	for _, name := range filterNames {
		filter, exists := m.filters[name]
		if !exists {
			m.mu.RUnlock()
			return nil, fmt.Errorf("%w: '%s'", ErrUnknownFilter, name)
		}
		filters[name] = filter
	}
	m.mu.RUnlock()

	return m.evaluator.EvaluateBatch(ctx, filters, envs)
}

// Close gracefully shuts down the manager
func (m *Manager) Close(ctx context.Context) error {
	return m.evaluator.Stop(ctx)
}

// sourceOf returns the expr source of a filter, converting simple terms
func sourceOf(filter CompiledFilter) string {
	expression := filter.Expression()
	if IsSimpleFilter(expression) {
		if converted, err := ConvertSimpleFilter(expression); err == nil {
			return converted
		}
	}
	return expression
}

package filter

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/file"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression  string
	program     *vm.Program
	// record variables and helpers the expression refers to
	identifiers []string
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[CompiledFilter](size)
		}
	}
}

// WithSimpleSyntax makes the compiler accept simple "field=value" terms and
// convert them to expr before compiling
func WithSimpleSyntax() ExprCompilerOption {
	return func(c *exprCompiler) {
		c.simple = true
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache[CompiledFilter]
	simple      bool
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
			Position:   -1,
		}
	}

	// Check cache if enabled
	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	source := expression
	if c.simple && IsSimpleFilter(expression) {
		converted, err := ConvertSimpleFilter(expression)
		if err != nil {
			return nil, &CompilationError{
				Expression: expression,
				Reason:     "invalid simple filter",
				Position:   -1,
				Err:        err,
			}
		}
		source = converted
	}

	// Compile with static environment for validation
	program, err := expr.Compile(source,
		expr.Env(c.helperFuncs),
		expr.AllowUndefinedVariables(), // Record fields are bound at run time
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Position:   errorPosition(err),
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression:  expression,
		program:     program,
		identifiers: recordIdentifiers(source),
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Evaluate evaluates the filter against a record environment. Records that
// make the expression fail do not match.
func (f *exprFilter) Evaluate(env Env) bool {
	ok, err := f.Run(env)
	return err == nil && ok
}

// Run evaluates the filter against a record environment
func (f *exprFilter) Run(env Env) (bool, error) {
	result, err := expr.Run(f.program, createRuntimeEnvironment(env))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Record:     recordLabel(env),
			Reason:     "failed to evaluate expression",
			Err:        err,
		}
	}

	// Result is guaranteed to be bool due to AsBool() option during compilation
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// IsThreadSafe indicates that expr filters are thread-safe
func (f *exprFilter) IsThreadSafe() bool {
	return true
}

// createHelperFunctions creates the static environment used during compilation
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 32)
	addHelperFunctions(funcs)
	maps.Copy(funcs, recordHelperStubs())
	return funcs
}

// addHelperFunctions adds the record-independent helpers to env
func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["yearsAgo"] = func(years int) time.Time {
		return time.Now().AddDate(-years, 0, 0)
	}
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse(releaseLayout, dateStr)
		return t
	}
	// Case-insensitive string helpers; contains, startsWith and endsWith
	// are already expr operators
	env["containsFold"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWithFold"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWithFold"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["equalFold"] = strings.EqualFold
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["now"] = time.Now
}

// createRuntimeEnvironment merges the helpers with the record variables. The
// record wins on name clashes.
func createRuntimeEnvironment(record Env) map[string]any {
	env := make(map[string]any, len(record)+16)
	addHelperFunctions(env)
	maps.Copy(env, record)
	return env
}

// UndefinedFields returns the names f refers to that env does not define,
// such as a detail-only field used on a list entry. It returns nil for
// filters it cannot inspect.
func UndefinedFields(f CompiledFilter, env Env) []string {
	ef, ok := f.(*exprFilter)
	if !ok {
		return nil
	}
	var missing []string
	for _, name := range ef.identifiers {
		if _, ok := env[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// staticHelpers are the helpers available to every record
var staticHelpers = func() map[string]any {
	env := make(map[string]any, 16)
	addHelperFunctions(env)
	return env
}()

// identifierCollector gathers identifiers while walking an expression
type identifierCollector struct {
	seen     map[string]struct{}
	declared map[string]struct{}
}

func (c *identifierCollector) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		c.seen[n.Value] = struct{}{}
	case *ast.VariableDeclaratorNode:
		c.declared[n.Name] = struct{}{}
	}
}

// recordIdentifiers lists, sorted, the identifiers of source that must come
// from the record
func recordIdentifiers(source string) []string {
	tree, err := parser.Parse(source)
	if err != nil {
		return nil
	}

	c := &identifierCollector{
		seen:     make(map[string]struct{}),
		declared: make(map[string]struct{}),
	}
	ast.Walk(&tree.Node, c)

	names := make([]string, 0, len(c.seen))
	for name := range c.seen {
		if _, ok := staticHelpers[name]; ok {
			continue
		}
		if _, ok := c.declared[name]; ok {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// recordLabel names a record in error messages
func recordLabel(env Env) string {
	for _, key := range []string{"ID", "Name"} {
		if s, ok := env[key].(string); ok && s != "" {
			return s
		}
	}
	return "unknown"
}

// errorPosition extracts the column of an expr syntax error, -1 if unknown
func errorPosition(err error) int {
	var fileErr *file.Error
	if errors.As(err, &fileErr) {
		return fileErr.Column
	}
	return -1
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/tcgdex/filter"
	"github.com/s0up4200/tcgdex/tcgdex"
)

// listFlags are the flags shared by the cards, sets and series commands
type listFlags struct {
	id      string
	terms   []string
	sort    string
	order   string
	page    int
	perPage int
	where   string
	preset  string
	details bool
}

func (f *listFlags) register(cmd *cobra.Command, noun string) {
	cmd.Flags().StringVar(&f.id, "id", "", fmt.Sprintf("fetch a single %s by id", noun))
	cmd.Flags().StringSliceVar(&f.terms, "filter", nil, "TCGdex filter term applied by the API, e.g. name=furret (repeatable)")
	cmd.Flags().StringVar(&f.sort, "sort", "", "field to sort by, e.g. name or localId")
	cmd.Flags().StringVar(&f.order, "order", "ASC", "sort order (ASC or DESC)")
	cmd.Flags().IntVar(&f.page, "page", 0, "page number, starting at 1")
	cmd.Flags().IntVar(&f.perPage, "per-page", 0, "results per page")
	cmd.Flags().StringVarP(&f.where, "where", "w", "", "expression applied to the results, e.g. 'hasType(\"Fire\") and HP > 100'")
	cmd.Flags().StringVarP(&f.preset, "preset", "p", "", "use a filter preset from config")
	cmd.Flags().BoolVarP(&f.details, "details", "d", false, fmt.Sprintf("fetch the full record of every %s", noun))

	cmd.MarkFlagsMutuallyExclusive("id", "filter")
	cmd.MarkFlagsMutuallyExclusive("id", "sort")
	cmd.MarkFlagsMutuallyExclusive("id", "page")
}

// spec builds the list query from the flags
func (f *listFlags) spec() (tcgdex.Spec, error) {
	q := tcgdex.NewQuery().WithFiltering(f.terms...)

	if f.sort != "" {
		order, err := tcgdex.ParseOrder(f.order)
		if err != nil {
			return nil, err
		}
		q = q.WithSorting(f.sort, order)
	}

	if f.page != 0 || f.perPage != 0 {
		if f.page < 1 || f.perPage < 1 {
			return nil, fmt.Errorf("--page and --per-page must both be positive")
		}
		q = q.WithPagination(f.page, f.perPage)
	}

	return q.Spec(), nil
}

// filter returns the client-side filter to apply, nil if none. Without
// --where and --preset the configured default expression applies.
func (f *listFlags) filter() (filter.CompiledFilter, error) {
	where := f.where
	if where == "" && f.preset == "" {
		where = cfg.Filter.DefaultExpression
	}

	compiled, err := filters.Resolve(where, f.preset)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	if compiled != nil {
		logger.Debug().Str("filter", compiled.Expression()).Msg("Applying filter")
	}
	return compiled, nil
}

// apply keeps the items matching f; a nil filter keeps everything
func apply[T any](ctx context.Context, f filter.CompiledFilter, items []T, toEnv func(T) filter.Env) ([]T, error) {
	if f == nil {
		return items, nil
	}
	if len(items) > 0 {
		warnUnusable(f, toEnv(items[0]))
	}
	matches, err := filter.Select(ctx, filters.Evaluator(), f, items, toEnv)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("total", len(items)).Int("matched", len(matches)).Msg("Filtered results")
	return matches, nil
}

// warnUnusable warns when f cannot work on records shaped like env, since
// records that fail to evaluate are silently dropped
func warnUnusable(f filter.CompiledFilter, env filter.Env) {
	if missing := filter.UndefinedFields(f, env); len(missing) > 0 {
		logger.Warn().
			Str("filter", f.Expression()).
			Strs("fields", missing).
			Msg("Filter refers to fields these results do not have; --details fetches full records")
		return
	}
	if _, err := f.Run(env); err != nil {
		logger.Warn().Err(err).Str("filter", f.Expression()).Msg("Filter fails on these results")
	}
}

// emptyAsNone turns ErrEmptyResult into an empty answer
func emptyAsNone(err error) error {
	if tcgdex.IsEmptyResult(err) {
		logger.Debug().Msg("TCGdex returned an empty result")
		return nil
	}
	return err
}

// describe adds the problem details of an API error for the terminal
func describe(err error) error {
	apiErr, ok := tcgdex.AsAPIError(err)
	if !ok {
		return err
	}
	parts := []string{fmt.Sprintf("status %d", apiErr.Status)}
	if apiErr.Details != "" {
		parts = append(parts, apiErr.Details)
	}
	if apiErr.Endpoint != "" {
		parts = append(parts, strings.TrimSpace(apiErr.Method+" "+apiErr.Endpoint))
	}
	return fmt.Errorf("%w (%s)", err, strings.Join(parts, ", "))
}

// printer returns a function that writes formatter output to the command's
// stdout
func printer(cmd *cobra.Command) func(string, error) error {
	return func(s string, err error) error {
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), s)
		return err
	}
}

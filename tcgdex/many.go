package tcgdex

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// getMany calls get for every id with at most client.concurrency requests in
// flight. The result keeps the order of ids.
func getMany[T Record](ctx context.Context, c *Client, kind string, ids []string, get func(context.Context, string) (T, error)) ([]T, error) {
	records := make([]T, len(ids))
	if len(ids) == 0 {
		return records, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, id := range ids {
		g.Go(func() error {
			record, err := get(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get %s %s: %w", kind, id, err)
			}
			// each goroutine owns one slot
			records[i] = record
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Debug().Str("kind", kind).Int("count", len(records)).Msg("Retrieved details from TCGdex")
	return records, nil
}

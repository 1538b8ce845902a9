package tcgdex

import (
	"context"
	"fmt"
)

// Cards gives access to the cards endpoint
type Cards struct {
	client *Client
}

// List returns the brief cards matching spec; a nil spec lists every card.
//
// An empty list is reported as ErrEmptyResult.
func (a *Cards) List(ctx context.Context, spec Spec) (CardList, error) {
	if err := requireList(spec); err != nil {
		return nil, err
	}
	return Fetch[CardList](ctx, a.client, EndpointCards, spec)
}

// Get returns a card by its global id, e.g. "swsh3-136"
func (a *Cards) Get(ctx context.Context, id string) (*Card, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	return Fetch[*Card](ctx, a.client, EndpointCards, ByID{ID: id})
}

// GetMany fetches the detailed record of every id concurrently. The result
// keeps the order of ids. The first failure cancels the remaining requests
// and is returned.
func (a *Cards) GetMany(ctx context.Context, ids []string) ([]*Card, error) {
	return getMany(ctx, a.client, "card", ids, a.Get)
}

// Details fetches the detailed record of every card of a brief list
func (a *Cards) Details(ctx context.Context, list CardList) ([]*Card, error) {
	ids := make([]string, len(list))
	for i, brief := range list {
		ids[i] = brief.ID
	}
	return a.GetMany(ctx, ids)
}

// requireList rejects id lookups passed to a list call
func requireList(spec Spec) error {
	if spec == nil {
		return nil
	}
	if id, ok := spec.lookup(); ok {
		return fmt.Errorf("%w: %q", ErrLookupInList, id)
	}
	return nil
}

package tcgdex

import "context"

// Sets gives access to the sets endpoint. A set is a group of cards.
type Sets struct {
	client *Client
}

// List returns the brief sets matching spec; a nil spec lists every set.
//
// An empty list is reported as ErrEmptyResult.
func (a *Sets) List(ctx context.Context, spec Spec) (SetList, error) {
	if err := requireList(spec); err != nil {
		return nil, err
	}
	return Fetch[SetList](ctx, a.client, EndpointSets, spec)
}

// Get returns a set by id, e.g. "swsh3"
func (a *Sets) Get(ctx context.Context, id string) (*Set, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	return Fetch[*Set](ctx, a.client, EndpointSets, ByID{ID: id})
}

// GetMany fetches the detailed record of every id concurrently, keeping the
// order of ids
func (a *Sets) GetMany(ctx context.Context, ids []string) ([]*Set, error) {
	return getMany(ctx, a.client, "set", ids, a.Get)
}

// Details fetches the detailed record of every set of a brief list
func (a *Sets) Details(ctx context.Context, list SetList) ([]*Set, error) {
	ids := make([]string, len(list))
	for i, brief := range list {
		ids[i] = brief.ID
	}
	return a.GetMany(ctx, ids)
}

// Card returns a card by its set and its number inside the set
func (a *Sets) Card(ctx context.Context, setID, localID string) (*Card, error) {
	if setID == "" || localID == "" {
		return nil, ErrMissingID
	}
	return fetchURL[*Card](ctx, a.client, a.client.resourceURL(EndpointSets, nil, setID, localID))
}

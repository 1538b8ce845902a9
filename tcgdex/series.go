package tcgdex

import "context"

// Series gives access to the series endpoint. A serie is a group of sets.
type Series struct {
	client *Client
}

// List returns the brief series matching spec; a nil spec lists every serie.
//
// An empty list is reported as ErrEmptyResult.
func (a *Series) List(ctx context.Context, spec Spec) (SerieList, error) {
	if err := requireList(spec); err != nil {
		return nil, err
	}
	return Fetch[SerieList](ctx, a.client, EndpointSeries, spec)
}

// Get returns a serie by id, e.g. "swsh"
func (a *Series) Get(ctx context.Context, id string) (*Serie, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	return Fetch[*Serie](ctx, a.client, EndpointSeries, ByID{ID: id})
}

// GetMany fetches the detailed record of every id concurrently, keeping the
// order of ids
func (a *Series) GetMany(ctx context.Context, ids []string) ([]*Serie, error) {
	return getMany(ctx, a.client, "serie", ids, a.Get)
}

// Details fetches the detailed record of every serie of a brief list
func (a *Series) Details(ctx context.Context, list SerieList) ([]*Serie, error) {
	ids := make([]string, len(list))
	for i, brief := range list {
		ids[i] = brief.ID
	}
	return a.GetMany(ctx, ids)
}

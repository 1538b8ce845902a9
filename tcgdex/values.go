package tcgdex

import "context"

// Values gives access to an endpoint that lists primitive values: types,
// categories, HP, illustrators, rarities and retreat costs
type Values[T string | int] struct {
	client   *Client
	endpoint Endpoint
}

// Endpoint returns the resource name the accessor reads
func (a *Values[T]) Endpoint() Endpoint {
	return a.endpoint
}

// List returns every value TCGdex knows for the endpoint
func (a *Values[T]) List(ctx context.Context) ([]T, error) {
	return fetchValues[T](ctx, a.client, a.endpoint)
}

package tcgdex

import (
	"context"
)

// CardAPI defines the card operations
type CardAPI interface {
	// List retrieves brief cards matching a list query
	List(ctx context.Context, spec Spec) (CardList, error)

	// Get retrieves a single card by id
	Get(ctx context.Context, id string) (*Card, error)

	// GetMany retrieves several cards concurrently, keeping their order
	GetMany(ctx context.Context, ids []string) ([]*Card, error)
}

// SetAPI defines the set operations
type SetAPI interface {
	// List retrieves brief sets matching a list query
	List(ctx context.Context, spec Spec) (SetList, error)

	// Get retrieves a single set by id
	Get(ctx context.Context, id string) (*Set, error)

	// GetMany retrieves several sets concurrently, keeping their order
	GetMany(ctx context.Context, ids []string) ([]*Set, error)

	// Card retrieves a card by set id and local number
	Card(ctx context.Context, setID, localID string) (*Card, error)
}

// SerieAPI defines the serie operations
type SerieAPI interface {
	// List retrieves brief series matching a list query
	List(ctx context.Context, spec Spec) (SerieList, error)

	// Get retrieves a single serie by id
	Get(ctx context.Context, id string) (*Serie, error)

	// GetMany retrieves several series concurrently, keeping their order
	GetMany(ctx context.Context, ids []string) ([]*Serie, error)
}

// ValueAPI defines the operation of the value list endpoints
type ValueAPI[T string | int] interface {
	// List retrieves every value of the endpoint
	List(ctx context.Context) ([]T, error)
}

var (
	_ CardAPI          = (*Cards)(nil)
	_ SetAPI           = (*Sets)(nil)
	_ SerieAPI         = (*Series)(nil)
	_ ValueAPI[string] = (*Values[string])(nil)
	_ ValueAPI[int]    = (*Values[int])(nil)
)

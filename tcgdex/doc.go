// Package tcgdex provides a client for the TCGdex API (https://tcgdex.dev).
//
// TCGdex is a multi-language database of Pokémon Trading Card Game cards,
// sets and series. This package implements a typed, context-aware Go client
// for its REST API.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Query: builds filter, sort, pagination or id-lookup query strings
//   - Client: the shared, immutable API client (transport + language)
//   - Accessors: one per API resource (cards, sets, series, value lists)
//   - Resolver: turns a decoded response into a record, an API error or an
//     empty-result error
//   - Errors: a three-way error taxonomy (transport, API, empty result)
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := tcgdex.NewClient(logger, tcgdex.WithLang(tcgdex.FR))
//	if err != nil {
//		return err
//	}
//
//	ctx := context.Background()
//
//	// A single set by id
//	set, err := client.Sets().Get(ctx, "swsh3")
//
//	// A filtered and sorted card list
//	q := tcgdex.NewQuery().
//		WithFiltering("name=furret", "id=ex").
//		WithSorting("name", tcgdex.Asc)
//	cards, err := client.Cards().List(ctx, q)
//
// # Error Handling
//
// Every failed call returns exactly one of:
//
//   - *TransportError: the request never produced a usable response
//     (network failure, timeout, unexpected status, undecodable body)
//   - *APIError: TCGdex answered with a problem document
//   - ErrEmptyResult: TCGdex answered with a well-formed but empty record
//
//	if apiErr, ok := tcgdex.AsAPIError(err); ok && apiErr.IsNotFound() {
//		// Handle unknown id
//	}
package tcgdex

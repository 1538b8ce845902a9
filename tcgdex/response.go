package tcgdex

import (
	"bytes"
	"encoding/json"
)

// envelope is one decoded response body: either a problem document or a
// payload of type T. TCGdex does not tag the two, so the shape decides.
type envelope[T any] struct {
	problem *APIError
	data    T
}

// UnmarshalJSON implements json.Unmarshaler
func (e *envelope[T]) UnmarshalJSON(body []byte) error {
	if isProblem(body) {
		var p APIError
		if err := json.Unmarshal(body, &p); err != nil {
			return err
		}
		e.problem = &p
		return nil
	}
	return json.Unmarshal(body, &e.data)
}

// isProblem reports whether body is an RFC 7807 style problem document, i.e.
// a JSON object with both a "status" and a "title" member. No card, set or
// serie record carries either key.
func isProblem(body []byte) bool {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return false
	}

	var shape struct {
		Status json.RawMessage `json:"status"`
		Title  json.RawMessage `json:"title"`
	}
	if err := json.Unmarshal(body, &shape); err != nil {
		return false
	}
	return shape.Status != nil && shape.Title != nil
}

// resolve classifies a decoded envelope as an API error, an empty result or
// a payload
func resolve[T Record](env envelope[T]) (T, error) {
	var zero T
	if env.problem != nil {
		return zero, env.problem
	}
	if env.data.IsEmpty() {
		return zero, ErrEmptyResult
	}
	return env.data, nil
}

// resolveValues is resolve for primitive value lists, which have no
// emptiness rule: an empty list is a valid answer
func resolveValues[T any](env envelope[[]T]) ([]T, error) {
	if env.problem != nil {
		return nil, env.problem
	}
	if env.data == nil {
		return []T{}, nil
	}
	return env.data, nil
}

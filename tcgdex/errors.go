package tcgdex

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrEmptyResult indicates TCGdex answered with a well-formed but empty
	// record, which it does instead of a 404 for some unknown ids
	ErrEmptyResult = errors.New("tcgdex: response is empty")
	// ErrUnsupportedLang indicates a language TCGdex does not serve
	ErrUnsupportedLang = errors.New("unsupported language")
	// ErrMissingID indicates a single-record lookup without an id
	ErrMissingID = errors.New("tcgdex: id is required")
	// ErrLookupInList indicates an id lookup passed where a list query is expected
	ErrLookupInList = errors.New("tcgdex: id lookup passed to a list request")
)

// APIError is a problem document returned by TCGdex.
//
// APIError is comparable, so two errors decoded from the same document are
// equal with == and with assert.Equal.
type APIError struct {
	// Type is a URL that identifies the problem type
	Type string `json:"type"`
	// Title summarizes the problem
	Title string `json:"title"`
	// Status is the HTTP status code
	Status int `json:"status"`
	// Endpoint is the path that caused the problem
	Endpoint string `json:"endpoint"`
	// Method is the HTTP method used
	Method string `json:"method"`
	// Lang is the language of the request, when reported
	Lang string `json:"lang"`
	// Details gives more information, when reported
	Details string `json:"details"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("tcgdex error: %s", e.Title)
}

// IsNotFound checks if the error reports an unknown resource
func (e *APIError) IsNotFound() bool {
	return e.Status == 404
}

// TransportError is any failure that happened before TCGdex produced a usable
// answer: connection errors, timeouts, unexpected status codes and bodies
// that could not be decoded.
type TransportError struct {
	URL string
	// StatusCode is zero when no response was received
	StatusCode int
	// Body holds the start of an unexpected response body
	Body string
	Err  error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.StatusCode != 0 && e.Err == nil {
		return fmt.Sprintf("tcgdex request %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("tcgdex request %s failed with status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("tcgdex request %s failed: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is a transport failure
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsAPIError reports whether err carries a TCGdex problem document
func IsAPIError(err error) bool {
	_, ok := AsAPIError(err)
	return ok
}

// IsEmptyResult reports whether err is ErrEmptyResult
func IsEmptyResult(err error) bool {
	return errors.Is(err, ErrEmptyResult)
}

// AsAPIError returns the problem document carried by err, if any
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

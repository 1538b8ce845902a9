package tcgdex

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL     string
	lang        Lang
	timeout     time.Duration
	userAgent   string
	httpClient  *http.Client
	concurrency int
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL:     DefaultBaseURL,
		lang:        EN,
		timeout:     30 * time.Second,
		userAgent:   DefaultUserAgent,
		concurrency: DefaultConcurrency,
	}
}

// WithBaseURL points the client at another TCGdex deployment. The URL must
// end with the API version, e.g. "https://api.tcgdex.net/v2".
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithLang sets the language of the returned data. English is the default.
func WithLang(lang Lang) Option {
	return func(o *clientOptions) {
		o.lang = lang
	}
}

// WithTimeout sets the HTTP client timeout.
// It is ignored when a custom HTTP client is supplied.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithHTTPClient replaces the default pooled HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithConcurrency limits how many requests batch calls such as
// Cards.GetMany keep in flight.
func WithConcurrency(n int) Option {
	return func(o *clientOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

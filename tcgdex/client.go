package tcgdex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the public TCGdex API
	DefaultBaseURL = "https://api.tcgdex.net/v2/"
	// DefaultUserAgent identifies this client to TCGdex
	DefaultUserAgent = "tcgdex-go"
	// DefaultConcurrency bounds the requests a batch call keeps in flight
	DefaultConcurrency = 8

	// maxErrorBody caps how much of an unexpected body is kept in errors
	maxErrorBody = 512
)

// Endpoint is the name of a TCGdex resource
type Endpoint string

const (
	EndpointCards        Endpoint = "cards"
	EndpointSets         Endpoint = "sets"
	EndpointSeries       Endpoint = "series"
	EndpointTypes        Endpoint = "types"
	EndpointCategories   Endpoint = "categories"
	EndpointHP           Endpoint = "hp"
	EndpointIllustrators Endpoint = "illustrators"
	EndpointRarities     Endpoint = "rarities"
	EndpointRetreats     Endpoint = "retreats"
)

// Client represents a TCGdex API client.
//
// A Client is immutable once built and safe for concurrent use. Create one
// and share it; use WithLang to get a client for another language.
type Client struct {
	baseURL     string
	lang        Lang
	userAgent   string
	httpClient  *http.Client
	concurrency int
	logger      zerolog.Logger
}

// NewClient creates a new TCGdex client
func NewClient(logger zerolog.Logger, opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.baseURL == "" {
		return nil, fmt.Errorf("tcgdex base URL is required")
	}
	parsed, err := url.Parse(o.baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid tcgdex base URL %q", o.baseURL)
	}
	if !o.lang.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLang, o.lang)
	}

	// Ensure baseURL ends with exactly one slash
	baseURL := strings.TrimRight(o.baseURL, "/") + "/"

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = cleanhttp.DefaultPooledClient()
		httpClient.Timeout = o.timeout
	}

	return &Client{
		baseURL:     baseURL,
		lang:        o.lang,
		userAgent:   o.userAgent,
		httpClient:  httpClient,
		concurrency: o.concurrency,
		logger:      logger,
	}, nil
}

// Lang returns the language of the data the client fetches
func (c *Client) Lang() Lang {
	return c.lang
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// WithLang returns a copy of the client fetching data in another language.
// The copy shares the HTTP transport.
func (c *Client) WithLang(lang Lang) (*Client, error) {
	if !lang.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLang, lang)
	}
	clone := *c
	clone.lang = lang
	return &clone, nil
}

// Ping checks that TCGdex answers by fetching the smallest list it serves
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.Categories().List(ctx); err != nil {
		return fmt.Errorf("failed to reach TCGdex: %w", err)
	}
	return nil
}

// Cards returns the cards accessor
func (c *Client) Cards() *Cards {
	return &Cards{client: c}
}

// Sets returns the sets accessor
func (c *Client) Sets() *Sets {
	return &Sets{client: c}
}

// Series returns the series accessor
func (c *Client) Series() *Series {
	return &Series{client: c}
}

// Types returns the Pokémon types accessor
func (c *Client) Types() *Values[string] {
	return &Values[string]{client: c, endpoint: EndpointTypes}
}

// Categories returns the card categories accessor
func (c *Client) Categories() *Values[string] {
	return &Values[string]{client: c, endpoint: EndpointCategories}
}

// HP returns the Pokémon HP values accessor
func (c *Client) HP() *Values[int] {
	return &Values[int]{client: c, endpoint: EndpointHP}
}

// Illustrators returns the illustrators accessor
func (c *Client) Illustrators() *Values[string] {
	return &Values[string]{client: c, endpoint: EndpointIllustrators}
}

// Rarities returns the rarities accessor
func (c *Client) Rarities() *Values[string] {
	return &Values[string]{client: c, endpoint: EndpointRarities}
}

// Retreats returns the retreat costs accessor
func (c *Client) Retreats() *Values[int] {
	return &Values[int]{client: c, endpoint: EndpointRetreats}
}

// Fetch performs one GET against endpoint and resolves the answer into T.
//
// A nil spec, an empty Query or a zero ByFilter lists the whole resource; an
// id spec fetches a single record. T must match the shape TCGdex returns for
// the request: a *Card for a card id, a CardList for a card list, and so on.
func Fetch[T Record](ctx context.Context, c *Client, endpoint Endpoint, spec Spec) (T, error) {
	return fetchURL[T](ctx, c, c.resourceURL(endpoint, spec))
}

// fetchURL is Fetch for an already assembled URL
func fetchURL[T Record](ctx context.Context, c *Client, rawURL string) (T, error) {
	env, err := getEnvelope[T](ctx, c, rawURL)
	if err != nil {
		var zero T
		return zero, err
	}
	return resolve(env)
}

// fetchValues fetches a primitive value list
func fetchValues[T any](ctx context.Context, c *Client, endpoint Endpoint) ([]T, error) {
	env, err := getEnvelope[[]T](ctx, c, c.resourceURL(endpoint, nil))
	if err != nil {
		return nil, err
	}
	return resolveValues(env)
}

// resourceURL assembles base + lang + "/" + endpoint, then "/" + id for a
// lookup or "?" + query for a non-empty list query
func (c *Client) resourceURL(endpoint Endpoint, spec Spec, segments ...string) string {
	var sb strings.Builder
	sb.WriteString(c.baseURL)
	sb.WriteString(c.lang.String())
	sb.WriteString("/")
	sb.WriteString(string(endpoint))

	for _, segment := range segments {
		sb.WriteString("/")
		sb.WriteString(url.PathEscape(segment))
	}

	if spec == nil {
		return sb.String()
	}
	if id, ok := spec.lookup(); ok {
		sb.WriteString("/")
		sb.WriteString(url.PathEscape(id))
		return sb.String()
	}
	if query := spec.Encode(); query != "" {
		sb.WriteString("?")
		sb.WriteString(query)
	}
	return sb.String()
}

// getEnvelope performs the GET and decodes the body. A problem document is
// decoded whatever the status code; any other body with a non-2xx status is
// a transport failure.
func getEnvelope[T any](ctx context.Context, c *Client, rawURL string) (envelope[T], error) {
	var env envelope[T]

	body, status, err := c.doRequest(ctx, rawURL)
	if err != nil {
		return env, err
	}

	if (status < 200 || status >= 300) && !isProblem(body) {
		return env, &TransportError{
			URL:        rawURL,
			StatusCode: status,
			Body:       truncate(string(body), maxErrorBody),
		}
	}

	if err := json.Unmarshal(body, &env); err != nil {
		return env, &TransportError{
			URL:        rawURL,
			StatusCode: status,
			Err:        fmt.Errorf("failed to decode response: %w", err),
		}
	}

	return env, nil
}

// doRequest performs an HTTP GET and returns the body and status code
func (c *Client) doRequest(ctx context.Context, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, &TransportError{URL: rawURL, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &TransportError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &TransportError{
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to read response body: %w", err),
		}
	}

	c.logger.Debug().
		Str("url", rawURL).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Msg("TCGdex API request")

	return body, resp.StatusCode, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

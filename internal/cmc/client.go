// Package cmc implements the CoinMarketCap Pro REST API client.
// Every response is wrapped in an envelope carrying an application-level
// status independent of the transport status; a non-zero error_code or a
// non-2xx transport status fails the call with *APIError.
//
// Docs: https://coinmarketcap.com/api/documentation/v1/
package cmc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/YimingYAN/coinmarketcap-mcp/internal/infra"
)

const (
	// DefaultBaseURL is the CoinMarketCap Pro API endpoint.
	DefaultBaseURL = "https://pro-api.coinmarketcap.com"

	apiKeyHeader = "X-CMC_PRO_API_KEY"

	// maxResponseBytes bounds the response read; the largest expected payload
	// is a 5000-row map page.
	maxResponseBytes = 32 << 20
)

// APIError is returned when the API envelope or the transport reports a
// failure.
type APIError struct {
	StatusCode int    // HTTP status of the response
	ErrorCode  int    // application error code from the envelope, 0 if absent
	Message    string // error message from the envelope
}

func (e *APIError) Error() string {
	return fmt.Sprintf("coinmarketcap API error (%d): %s", e.StatusCode, e.Message)
}

// MissingParamError is returned locally, before any network call, when an
// operation that needs at least one identifying parameter got none.
type MissingParamError struct {
	Op     string
	Params []string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("%s: at least one of %s is required", e.Op, strings.Join(e.Params, ", "))
}

// Client is the CoinMarketCap API client. It is safe for concurrent use;
// construct it once and share it.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests to point the client
// at a local server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a CoinMarketCap client authenticated with the given API key.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		http:    infra.HTTPClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// --- Queries ---

// MapQuery filters the cryptocurrency ID map.
type MapQuery struct {
	Symbol        string // comma-joined symbols, e.g. "BTC,ETH"
	Slug          string // comma-joined slugs
	ListingStatus string // "active" (default), "inactive", "untracked"
	Start         int    // pagination offset, 1-indexed
	Limit         int    // 1-5000, default 100
	Sort          string // "id" or "cmc_rank" (default)
}

// InfoQuery selects cryptocurrencies for the metadata endpoint.
type InfoQuery struct {
	ID      string // comma-joined CoinMarketCap IDs
	Symbol  string // comma-joined symbols
	Slug    string // comma-joined slugs
	Address string // token contract address
}

// QuoteQuery selects cryptocurrencies for the latest-quotes endpoint.
type QuoteQuery struct {
	ID      string
	Symbol  string
	Slug    string
	Convert string // conversion currency, default "USD"
}

// ExchangeMapQuery filters the exchange ID map.
type ExchangeMapQuery struct {
	Slug          string
	ListingStatus string
	Start         int
	Limit         int
	Sort          string
}

// ExchangeInfoQuery selects exchanges for the metadata endpoint.
type ExchangeInfoQuery struct {
	ID   string
	Slug string
}

// --- Operations ---

// CryptocurrencyMap returns the ID map rows matching the query.
func (c *Client) CryptocurrencyMap(ctx context.Context, q MapQuery) ([]MapEntry, error) {
	params := url.Values{}
	params.Set("listing_status", defaultStr(q.ListingStatus, "active"))
	params.Set("start", strconv.Itoa(defaultInt(q.Start, 1)))
	params.Set("limit", strconv.Itoa(defaultInt(q.Limit, 100)))
	params.Set("sort", defaultStr(q.Sort, "cmc_rank"))
	if q.Symbol != "" {
		params.Set("symbol", q.Symbol)
	}
	if q.Slug != "" {
		params.Set("slug", q.Slug)
	}

	var entries []MapEntry
	if err := c.get(ctx, "/v1/cryptocurrency/map", params, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CryptocurrencyInfo returns static metadata keyed by the looked-up
// identifier. A single key can map to several assets; both response shapes
// are flattened into a slice per key.
func (c *Client) CryptocurrencyInfo(ctx context.Context, q InfoQuery) (map[string][]InfoEntry, error) {
	params := url.Values{}
	setIfPresent(params, "id", q.ID)
	setIfPresent(params, "symbol", q.Symbol)
	setIfPresent(params, "slug", q.Slug)
	setIfPresent(params, "address", q.Address)
	if len(params) == 0 {
		return nil, &MissingParamError{
			Op:     "cryptocurrency info",
			Params: []string{"id", "symbol", "slug", "address"},
		}
	}

	var raw map[string]infoEntryList
	if err := c.get(ctx, "/v2/cryptocurrency/info", params, &raw); err != nil {
		return nil, err
	}
	out := make(map[string][]InfoEntry, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	return out, nil
}

// QuotesLatest returns the latest market quotes keyed by the looked-up
// identifier.
func (c *Client) QuotesLatest(ctx context.Context, q QuoteQuery) (map[string][]QuoteEntry, error) {
	params := url.Values{}
	setIfPresent(params, "id", q.ID)
	setIfPresent(params, "symbol", q.Symbol)
	setIfPresent(params, "slug", q.Slug)
	if len(params) == 0 {
		return nil, &MissingParamError{
			Op:     "cryptocurrency quotes",
			Params: []string{"id", "symbol", "slug"},
		}
	}
	params.Set("convert", defaultStr(q.Convert, "USD"))

	var raw map[string]quoteEntryList
	if err := c.get(ctx, "/v2/cryptocurrency/quotes/latest", params, &raw); err != nil {
		return nil, err
	}
	out := make(map[string][]QuoteEntry, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	return out, nil
}

// ExchangeMap returns the exchange ID map rows matching the query.
func (c *Client) ExchangeMap(ctx context.Context, q ExchangeMapQuery) ([]ExchangeMapEntry, error) {
	params := url.Values{}
	params.Set("listing_status", defaultStr(q.ListingStatus, "active"))
	params.Set("start", strconv.Itoa(defaultInt(q.Start, 1)))
	params.Set("limit", strconv.Itoa(defaultInt(q.Limit, 100)))
	params.Set("sort", defaultStr(q.Sort, "volume_24h"))
	if q.Slug != "" {
		params.Set("slug", q.Slug)
	}

	var entries []ExchangeMapEntry
	if err := c.get(ctx, "/v1/exchange/map", params, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ExchangeInfo returns exchange metadata keyed by the looked-up identifier.
func (c *Client) ExchangeInfo(ctx context.Context, q ExchangeInfoQuery) (map[string]ExchangeInfoEntry, error) {
	params := url.Values{}
	setIfPresent(params, "id", q.ID)
	setIfPresent(params, "slug", q.Slug)
	if len(params) == 0 {
		return nil, &MissingParamError{
			Op:     "exchange info",
			Params: []string{"id", "slug"},
		}
	}

	var out map[string]ExchangeInfoEntry
	if err := c.get(ctx, "/v1/exchange/info", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GlobalMetrics returns the latest global market metrics.
func (c *Client) GlobalMetrics(ctx context.Context, convert string) (*GlobalMetrics, error) {
	params := url.Values{}
	params.Set("convert", defaultStr(convert, "USD"))

	var out GlobalMetrics
	if err := c.get(ctx, "/v1/global-metrics/quotes/latest", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// KeyInfo returns plan limits and usage for the configured API key.
func (c *Client) KeyInfo(ctx context.Context) (*KeyInfo, error) {
	var out KeyInfo
	if err := c.get(ctx, "/v1/key/info", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Request plumbing ---

// envelope is the wrapper object every API response is nested in.
type envelope struct {
	Status struct {
		ErrorCode    int    `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	} `json:"status"`
	Data json.RawMessage `json:"data"`
}

// get issues a request, checks the envelope, and decodes data into dest.
func (c *Client) get(ctx context.Context, path string, params url.Values, dest any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	rc, status, err := infra.DoGet(ctx, c.http, u, map[string]string{apiKeyHeader: c.apiKey})
	if err != nil {
		return err
	}

	body, err := infra.ReadBody(rc, maxResponseBytes)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("parse response for %s (HTTP %d): %w", path, status, err)
	}

	// Either signal alone fails the call: an application error code in the
	// envelope, or a transport status outside the success range.
	if env.Status.ErrorCode != 0 || status < 200 || status >= 300 {
		msg := env.Status.ErrorMessage
		if msg == "" {
			msg = "unknown error"
		}
		return &APIError{
			StatusCode: status,
			ErrorCode:  env.Status.ErrorCode,
			Message:    msg,
		}
	}

	if dest != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, dest); err != nil {
			return fmt.Errorf("parse data for %s: %w", path, err)
		}
	}
	return nil
}

func defaultStr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func defaultInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func setIfPresent(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}

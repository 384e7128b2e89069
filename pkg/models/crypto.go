// Package models defines the projected response shapes returned by the MCP
// tools. Each type carries the documented field subset of the corresponding
// API endpoint, nothing more.
package models

// Platform identifies the parent chain a token is issued on.
type Platform struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	Slug         string `json:"slug"`
	TokenAddress string `json:"token_address,omitempty"`
}

// CryptoListing is the map-endpoint projection: catalog identity plus
// liveness.
type CryptoListing struct {
	ID                  int       `json:"id"`
	Name                string    `json:"name"`
	Symbol              string    `json:"symbol"`
	Slug                string    `json:"slug"`
	Rank                *int      `json:"rank"`
	IsActive            *int      `json:"is_active"`
	FirstHistoricalData string    `json:"first_historical_data,omitempty"`
	Platform            *Platform `json:"platform,omitempty"`
}

// MapResult wraps the cryptocurrency_map tool response.
type MapResult struct {
	Cryptocurrencies []CryptoListing `json:"cryptocurrencies"`
	Count            int             `json:"count"`
}

// CryptoProfile is the info-endpoint projection: static metadata.
type CryptoProfile struct {
	ID                            int                 `json:"id"`
	Name                          string              `json:"name"`
	Symbol                        string              `json:"symbol"`
	Slug                          string              `json:"slug"`
	Category                      string              `json:"category,omitempty"`
	Description                   string              `json:"description,omitempty"`
	Logo                          string              `json:"logo,omitempty"`
	URLs                          map[string][]string `json:"urls"`
	Tags                          []string            `json:"tags"`
	Platform                      *Platform           `json:"platform,omitempty"`
	DateAdded                     string              `json:"date_added,omitempty"`
	DateLaunched                  string              `json:"date_launched,omitempty"`
	IsInfiniteSupply              *bool               `json:"is_infinite_supply,omitempty"`
	SelfReportedCirculatingSupply *float64            `json:"self_reported_circulating_supply,omitempty"`
	SelfReportedMarketCap         *float64            `json:"self_reported_market_cap,omitempty"`
}

// InfoResult wraps the cryptocurrency_info tool response.
type InfoResult struct {
	Cryptocurrencies []CryptoProfile `json:"cryptocurrencies"`
	Count            int             `json:"count"`
}

// QuoteData is the market data block for the requested conversion currency.
type QuoteData struct {
	Price                 *float64 `json:"price"`
	Volume24h             *float64 `json:"volume_24h"`
	VolumeChange24h       *float64 `json:"volume_change_24h"`
	PercentChange1h       *float64 `json:"percent_change_1h"`
	PercentChange24h      *float64 `json:"percent_change_24h"`
	PercentChange7d       *float64 `json:"percent_change_7d"`
	PercentChange30d      *float64 `json:"percent_change_30d"`
	MarketCap             *float64 `json:"market_cap"`
	MarketCapDominance    *float64 `json:"market_cap_dominance"`
	FullyDilutedMarketCap *float64 `json:"fully_diluted_market_cap"`
	LastUpdated           string   `json:"last_updated,omitempty"`
}

// CryptoQuote is the quotes-endpoint projection: identity, supply, and the
// latest market data.
type CryptoQuote struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	Symbol            string    `json:"symbol"`
	Slug              string    `json:"slug"`
	CMCRank           *int      `json:"cmc_rank"`
	CirculatingSupply *float64  `json:"circulating_supply"`
	TotalSupply       *float64  `json:"total_supply"`
	MaxSupply         *float64  `json:"max_supply"`
	IsActive          *int      `json:"is_active,omitempty"`
	LastUpdated       string    `json:"last_updated,omitempty"`
	Quote             QuoteData `json:"quote"`
}

// QuotesResult wraps the cryptocurrency_quotes_latest tool response.
type QuotesResult struct {
	Quotes  []CryptoQuote `json:"quotes"`
	Count   int           `json:"count"`
	Convert string        `json:"convert"`
}

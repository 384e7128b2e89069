package cmc

import "encoding/json"

// Platform identifies the parent chain a token is issued on.
type Platform struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	Slug         string `json:"slug"`
	TokenAddress string `json:"token_address,omitempty"`
}

// MapEntry is one row of the cryptocurrency ID map: the canonical identity
// of a listed asset.
type MapEntry struct {
	ID                  int       `json:"id"`
	Rank                *int      `json:"rank,omitempty"`
	Name                string    `json:"name"`
	Symbol              string    `json:"symbol"`
	Slug                string    `json:"slug"`
	IsActive            *int      `json:"is_active,omitempty"`
	FirstHistoricalData string    `json:"first_historical_data,omitempty"`
	LastHistoricalData  string    `json:"last_historical_data,omitempty"`
	Platform            *Platform `json:"platform,omitempty"`
}

// InfoEntry is the static metadata profile of a cryptocurrency.
type InfoEntry struct {
	ID                            int                 `json:"id"`
	Name                          string              `json:"name"`
	Symbol                        string              `json:"symbol"`
	Slug                          string              `json:"slug"`
	Category                      string              `json:"category,omitempty"`
	Description                   string              `json:"description,omitempty"`
	Logo                          string              `json:"logo,omitempty"`
	URLs                          map[string][]string `json:"urls,omitempty"`
	Tags                          []string            `json:"tags,omitempty"`
	Platform                      *Platform           `json:"platform,omitempty"`
	DateAdded                     string              `json:"date_added,omitempty"`
	DateLaunched                  string              `json:"date_launched,omitempty"`
	InfiniteSupply                *bool               `json:"infinite_supply,omitempty"`
	SelfReportedCirculatingSupply *float64            `json:"self_reported_circulating_supply,omitempty"`
	SelfReportedMarketCap         *float64            `json:"self_reported_market_cap,omitempty"`
}

// Websites returns the declared website URLs from the metadata profile.
func (e *InfoEntry) Websites() []string {
	if e.URLs == nil {
		return nil
	}
	return e.URLs["website"]
}

// Quote is the market data block for a single conversion currency.
type Quote struct {
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

// QuoteEntry is one cryptocurrency with its latest market quotes, keyed by
// conversion currency.
type QuoteEntry struct {
	ID                int              `json:"id"`
	Name              string           `json:"name"`
	Symbol            string           `json:"symbol"`
	Slug              string           `json:"slug"`
	CMCRank           *int             `json:"cmc_rank,omitempty"`
	CirculatingSupply *float64         `json:"circulating_supply,omitempty"`
	TotalSupply       *float64         `json:"total_supply,omitempty"`
	MaxSupply         *float64         `json:"max_supply,omitempty"`
	IsActive          *int             `json:"is_active,omitempty"`
	LastUpdated       string           `json:"last_updated,omitempty"`
	Quote             map[string]Quote `json:"quote,omitempty"`
}

// ExchangeMapEntry is one row of the exchange ID map.
type ExchangeMapEntry struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	Slug                string `json:"slug"`
	IsActive            *int   `json:"is_active,omitempty"`
	FirstHistoricalData string `json:"first_historical_data,omitempty"`
	LastHistoricalData  string `json:"last_historical_data,omitempty"`
}

// ExchangeInfoEntry is the static metadata profile of an exchange.
type ExchangeInfoEntry struct {
	ID            int                 `json:"id"`
	Name          string              `json:"name"`
	Slug          string              `json:"slug"`
	Description   string              `json:"description,omitempty"`
	Logo          string              `json:"logo,omitempty"`
	URLs          map[string][]string `json:"urls,omitempty"`
	DateLaunched  string              `json:"date_launched,omitempty"`
	MakerFee      *float64            `json:"maker_fee,omitempty"`
	TakerFee      *float64            `json:"taker_fee,omitempty"`
	SpotVolumeUSD *float64            `json:"spot_volume_usd,omitempty"`
}

// GlobalQuote is the aggregate market data block for a conversion currency.
type GlobalQuote struct {
	TotalMarketCap   *float64 `json:"total_market_cap"`
	TotalVolume24h   *float64 `json:"total_volume_24h"`
	AltcoinMarketCap *float64 `json:"altcoin_market_cap"`
	AltcoinVolume24h *float64 `json:"altcoin_volume_24h"`
}

// GlobalMetrics is the global market snapshot.
type GlobalMetrics struct {
	TotalCryptocurrencies  *int                   `json:"total_cryptocurrencies,omitempty"`
	ActiveCryptocurrencies *int                   `json:"active_cryptocurrencies,omitempty"`
	ActiveMarketPairs      *int                   `json:"active_market_pairs,omitempty"`
	ActiveExchanges        *int                   `json:"active_exchanges,omitempty"`
	BTCDominance           *float64               `json:"btc_dominance,omitempty"`
	ETHDominance           *float64               `json:"eth_dominance,omitempty"`
	DeFiVolume24h          *float64               `json:"defi_volume_24h,omitempty"`
	DeFiMarketCap          *float64               `json:"defi_market_cap,omitempty"`
	StablecoinVolume24h    *float64               `json:"stablecoin_volume_24h,omitempty"`
	StablecoinMarketCap    *float64               `json:"stablecoin_market_cap,omitempty"`
	Quote                  map[string]GlobalQuote `json:"quote,omitempty"`
}

// KeyUsagePeriod reports API key consumption for one accounting window.
type KeyUsagePeriod struct {
	RequestsMade *int     `json:"requests_made,omitempty"`
	RequestsLeft *int     `json:"requests_left,omitempty"`
	CreditsUsed  *float64 `json:"credits_used,omitempty"`
	CreditsLeft  *float64 `json:"credits_left,omitempty"`
}

// KeyPlan describes the API key plan limits.
type KeyPlan struct {
	CreditLimitDaily   *int `json:"credit_limit_daily,omitempty"`
	CreditLimitMonthly *int `json:"credit_limit_monthly,omitempty"`
	RateLimitMinute    *int `json:"rate_limit_minute,omitempty"`
}

// KeyInfo is the API key usage report.
type KeyInfo struct {
	Plan  KeyPlan `json:"plan"`
	Usage struct {
		CurrentMinute KeyUsagePeriod `json:"current_minute"`
		CurrentDay    KeyUsagePeriod `json:"current_day"`
		CurrentMonth  KeyUsagePeriod `json:"current_month"`
	} `json:"usage"`
}

// infoEntryList accepts both a single metadata object and a list of objects.
// The info endpoint returns a list under a key when one symbol resolves to
// several listed assets, and a bare object otherwise.
type infoEntryList []InfoEntry

func (l *infoEntryList) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '[' {
		var list []InfoEntry
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		*l = list
		return nil
	}
	var one InfoEntry
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	*l = infoEntryList{one}
	return nil
}

// quoteEntryList mirrors infoEntryList for the quotes endpoint.
type quoteEntryList []QuoteEntry

func (l *quoteEntryList) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '[' {
		var list []QuoteEntry
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		*l = list
		return nil
	}
	var one QuoteEntry
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	*l = quoteEntryList{one}
	return nil
}

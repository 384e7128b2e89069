package models

// Exchange is the exchange-map projection.
type Exchange struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	Slug                string `json:"slug"`
	IsActive            *int   `json:"is_active"`
	FirstHistoricalData string `json:"first_historical_data,omitempty"`
}

// ExchangeMapResult wraps the exchange_map tool response.
type ExchangeMapResult struct {
	Exchanges []Exchange `json:"exchanges"`
	Count     int        `json:"count"`
}

// ExchangeProfile is the exchange-info projection.
type ExchangeProfile struct {
	ID            int                 `json:"id"`
	Name          string              `json:"name"`
	Slug          string              `json:"slug"`
	Description   string              `json:"description,omitempty"`
	Logo          string              `json:"logo,omitempty"`
	URLs          map[string][]string `json:"urls"`
	DateLaunched  string              `json:"date_launched,omitempty"`
	MakerFee      *float64            `json:"maker_fee,omitempty"`
	TakerFee      *float64            `json:"taker_fee,omitempty"`
	SpotVolumeUSD *float64            `json:"spot_volume_usd,omitempty"`
}

// ExchangeInfoResult wraps the exchange_info tool response.
type ExchangeInfoResult struct {
	Exchanges []ExchangeProfile `json:"exchanges"`
	Count     int               `json:"count"`
}

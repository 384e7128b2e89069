package models

// GlobalQuote is the aggregate market data block for a conversion currency.
type GlobalQuote struct {
	TotalMarketCap   *float64 `json:"total_market_cap"`
	TotalVolume24h   *float64 `json:"total_volume_24h"`
	AltcoinMarketCap *float64 `json:"altcoin_market_cap"`
	AltcoinVolume24h *float64 `json:"altcoin_volume_24h"`
}

// GlobalMetricsResult is the global_metrics_quotes_latest tool response.
type GlobalMetricsResult struct {
	TotalCryptocurrencies  *int        `json:"total_cryptocurrencies"`
	ActiveCryptocurrencies *int        `json:"active_cryptocurrencies"`
	ActiveMarketPairs      *int        `json:"active_market_pairs"`
	ActiveExchanges        *int        `json:"active_exchanges"`
	BTCDominance           *float64    `json:"btc_dominance"`
	ETHDominance           *float64    `json:"eth_dominance"`
	DeFiVolume24h          *float64    `json:"defi_volume_24h"`
	DeFiMarketCap          *float64    `json:"defi_market_cap"`
	StablecoinVolume24h    *float64    `json:"stablecoin_volume_24h"`
	StablecoinMarketCap    *float64    `json:"stablecoin_market_cap"`
	Quote                  GlobalQuote `json:"quote"`
	Convert                string      `json:"convert"`
}

// KeyPlanSummary reports the API key plan limits.
type KeyPlanSummary struct {
	CreditLimitDaily   *int `json:"credit_limit_daily"`
	CreditLimitMonthly *int `json:"credit_limit_monthly"`
	RateLimitMinute    *int `json:"rate_limit_minute"`
}

// KeyUsageSummary reports current API key consumption.
type KeyUsageSummary struct {
	CurrentMinute *int     `json:"current_minute"`
	CurrentDay    *float64 `json:"current_day"`
	CurrentMonth  *float64 `json:"current_month"`
}

// KeyInfoResult is the key_info tool response.
type KeyInfoResult struct {
	Plan  KeyPlanSummary  `json:"plan"`
	Usage KeyUsageSummary `json:"usage"`
}

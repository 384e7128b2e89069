package mcpserver

import (
	"github.com/YimingYAN/coinmarketcap-mcp/internal/cmc"
	"github.com/YimingYAN/coinmarketcap-mcp/pkg/models"
)

// Projection helpers: reduce raw API entries to the documented field subset
// each tool returns.

func projectPlatform(p *cmc.Platform) *models.Platform {
	if p == nil {
		return nil
	}
	return &models.Platform{
		ID:           p.ID,
		Name:         p.Name,
		Symbol:       p.Symbol,
		Slug:         p.Slug,
		TokenAddress: p.TokenAddress,
	}
}

func projectListing(e cmc.MapEntry) models.CryptoListing {
	return models.CryptoListing{
		ID:                  e.ID,
		Name:                e.Name,
		Symbol:              e.Symbol,
		Slug:                e.Slug,
		Rank:                e.Rank,
		IsActive:            e.IsActive,
		FirstHistoricalData: e.FirstHistoricalData,
		Platform:            projectPlatform(e.Platform),
	}
}

func projectProfile(e cmc.InfoEntry) models.CryptoProfile {
	return models.CryptoProfile{
		ID:                            e.ID,
		Name:                          e.Name,
		Symbol:                        e.Symbol,
		Slug:                          e.Slug,
		Category:                      e.Category,
		Description:                   e.Description,
		Logo:                          e.Logo,
		URLs:                          e.URLs,
		Tags:                          e.Tags,
		Platform:                      projectPlatform(e.Platform),
		DateAdded:                     e.DateAdded,
		DateLaunched:                  e.DateLaunched,
		IsInfiniteSupply:              e.InfiniteSupply,
		SelfReportedCirculatingSupply: e.SelfReportedCirculatingSupply,
		SelfReportedMarketCap:         e.SelfReportedMarketCap,
	}
}

func projectQuote(e cmc.QuoteEntry, convert string) models.CryptoQuote {
	out := models.CryptoQuote{
		ID:                e.ID,
		Name:              e.Name,
		Symbol:            e.Symbol,
		Slug:              e.Slug,
		CMCRank:           e.CMCRank,
		CirculatingSupply: e.CirculatingSupply,
		TotalSupply:       e.TotalSupply,
		MaxSupply:         e.MaxSupply,
		IsActive:          e.IsActive,
		LastUpdated:       e.LastUpdated,
	}
	if q, ok := e.Quote[convert]; ok {
		out.Quote = models.QuoteData{
			Price:                 q.Price,
			Volume24h:             q.Volume24h,
			VolumeChange24h:       q.VolumeChange24h,
			PercentChange1h:       q.PercentChange1h,
			PercentChange24h:      q.PercentChange24h,
			PercentChange7d:       q.PercentChange7d,
			PercentChange30d:      q.PercentChange30d,
			MarketCap:             q.MarketCap,
			MarketCapDominance:    q.MarketCapDominance,
			FullyDilutedMarketCap: q.FullyDilutedMarketCap,
			LastUpdated:           q.LastUpdated,
		}
	}
	return out
}

func projectExchange(e cmc.ExchangeMapEntry) models.Exchange {
	return models.Exchange{
		ID:                  e.ID,
		Name:                e.Name,
		Slug:                e.Slug,
		IsActive:            e.IsActive,
		FirstHistoricalData: e.FirstHistoricalData,
	}
}

func projectExchangeProfile(e cmc.ExchangeInfoEntry) models.ExchangeProfile {
	return models.ExchangeProfile{
		ID:            e.ID,
		Name:          e.Name,
		Slug:          e.Slug,
		Description:   e.Description,
		Logo:          e.Logo,
		URLs:          e.URLs,
		DateLaunched:  e.DateLaunched,
		MakerFee:      e.MakerFee,
		TakerFee:      e.TakerFee,
		SpotVolumeUSD: e.SpotVolumeUSD,
	}
}

func projectGlobalMetrics(m *cmc.GlobalMetrics, convert string) models.GlobalMetricsResult {
	out := models.GlobalMetricsResult{
		TotalCryptocurrencies:  m.TotalCryptocurrencies,
		ActiveCryptocurrencies: m.ActiveCryptocurrencies,
		ActiveMarketPairs:      m.ActiveMarketPairs,
		ActiveExchanges:        m.ActiveExchanges,
		BTCDominance:           m.BTCDominance,
		ETHDominance:           m.ETHDominance,
		DeFiVolume24h:          m.DeFiVolume24h,
		DeFiMarketCap:          m.DeFiMarketCap,
		StablecoinVolume24h:    m.StablecoinVolume24h,
		StablecoinMarketCap:    m.StablecoinMarketCap,
		Convert:                convert,
	}
	if q, ok := m.Quote[convert]; ok {
		out.Quote = models.GlobalQuote{
			TotalMarketCap:   q.TotalMarketCap,
			TotalVolume24h:   q.TotalVolume24h,
			AltcoinMarketCap: q.AltcoinMarketCap,
			AltcoinVolume24h: q.AltcoinVolume24h,
		}
	}
	return out
}

func projectKeyInfo(k *cmc.KeyInfo) models.KeyInfoResult {
	return models.KeyInfoResult{
		Plan: models.KeyPlanSummary{
			CreditLimitDaily:   k.Plan.CreditLimitDaily,
			CreditLimitMonthly: k.Plan.CreditLimitMonthly,
			RateLimitMinute:    k.Plan.RateLimitMinute,
		},
		Usage: models.KeyUsageSummary{
			CurrentMinute: k.Usage.CurrentMinute.RequestsMade,
			CurrentDay:    k.Usage.CurrentDay.CreditsUsed,
			CurrentMonth:  k.Usage.CurrentMonth.CreditsUsed,
		},
	}
}

package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"

	"github.com/YimingYAN/coinmarketcap-mcp/internal/cmc"
	"github.com/YimingYAN/coinmarketcap-mcp/internal/resolver"
	"github.com/YimingYAN/coinmarketcap-mcp/pkg/models"
)

// registerTools declares the tool surface: the progressive search plus one
// pass-through per raw API operation.
func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("search_cryptocurrency",
		mcp.WithDescription("Progressive search to find a cryptocurrency on CoinMarketCap. "+
			"Tries exact symbol match, symbol variations, slug match, and fuzzy name matching "+
			"in order of decreasing confidence, then optionally verifies candidates against a homepage URL."),
		mcp.WithString("name", mcp.Description(`Cryptocurrency name (e.g., "Bitcoin", "Render Token")`)),
		mcp.WithString("symbol", mcp.Description(`Cryptocurrency symbol (e.g., "BTC", "RNDR")`)),
		mcp.WithString("homepage", mcp.Description("Project homepage URL for verification (recommended for fuzzy matches)")),
	), s.handleSearch)

	s.mcp.AddTool(mcp.NewTool("cryptocurrency_map",
		mcp.WithDescription("Check if cryptocurrencies are listed on CoinMarketCap and get their CMC IDs. "+
			"The most efficient lookup by symbol or slug."),
		mcp.WithString("symbol", mcp.Description(`Comma-separated symbols (e.g., "BTC,ETH,SOL")`)),
		mcp.WithString("slug", mcp.Description(`Comma-separated slugs (e.g., "bitcoin,ethereum")`)),
		mcp.WithString("listing_status", mcp.Description(`Filter by status: "active" (default), "inactive", or "untracked"`)),
		mcp.WithNumber("limit", mcp.Description("Maximum results to return (1-5000, default 100)")),
	), s.handleMap)

	s.mcp.AddTool(mcp.NewTool("cryptocurrency_info",
		mcp.WithDescription("Get detailed metadata for cryptocurrencies: description, logo, website, "+
			"social links, tags, and platform details."),
		mcp.WithString("id", mcp.Description(`Comma-separated CoinMarketCap IDs (e.g., "1,1027")`)),
		mcp.WithString("symbol", mcp.Description(`Comma-separated symbols (e.g., "BTC,ETH")`)),
		mcp.WithString("slug", mcp.Description(`Comma-separated slugs (e.g., "bitcoin,ethereum")`)),
		mcp.WithString("address", mcp.Description("Contract address for token lookup")),
	), s.handleInfo)

	s.mcp.AddTool(mcp.NewTool("cryptocurrency_quotes_latest",
		mcp.WithDescription("Get the latest market data for cryptocurrencies: price, volume, "+
			"market cap, supply, and price changes."),
		mcp.WithString("id", mcp.Description(`Comma-separated CoinMarketCap IDs (e.g., "1,1027")`)),
		mcp.WithString("symbol", mcp.Description(`Comma-separated symbols (e.g., "BTC,ETH")`)),
		mcp.WithString("slug", mcp.Description(`Comma-separated slugs (e.g., "bitcoin,ethereum")`)),
		mcp.WithString("convert", mcp.Description(`Currency for price conversion (default "USD")`)),
	), s.handleQuotes)

	s.mcp.AddTool(mcp.NewTool("exchange_map",
		mcp.WithDescription("Search for exchanges on CoinMarketCap."),
		mcp.WithString("slug", mcp.Description("Comma-separated exchange slugs")),
		mcp.WithString("listing_status", mcp.Description(`Filter by status: "active" (default), "inactive", or "untracked"`)),
		mcp.WithNumber("limit", mcp.Description("Maximum results (1-5000, default 100)")),
	), s.handleExchangeMap)

	s.mcp.AddTool(mcp.NewTool("exchange_info",
		mcp.WithDescription("Get detailed metadata for exchanges: description, URLs, fees, and volume."),
		mcp.WithString("id", mcp.Description("Comma-separated CoinMarketCap exchange IDs")),
		mcp.WithString("slug", mcp.Description(`Comma-separated exchange slugs (e.g., "binance,coinbase-exchange")`)),
	), s.handleExchangeInfo)

	s.mcp.AddTool(mcp.NewTool("global_metrics_quotes_latest",
		mcp.WithDescription("Get global cryptocurrency market metrics: total market cap, 24h volume, "+
			"BTC/ETH dominance, and active currency counts."),
		mcp.WithString("convert", mcp.Description(`Currency for value conversion (default "USD")`)),
	), s.handleGlobalMetrics)

	s.mcp.AddTool(mcp.NewTool("key_info",
		mcp.WithDescription("Get CoinMarketCap API key plan limits and current credit usage."),
	), s.handleKeyInfo)
}

func (s *Server) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	client, err := s.catalog()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := resolver.New(client).Search(ctx,
		cast.ToString(args["name"]),
		cast.ToString(args["symbol"]),
		cast.ToString(args["homepage"]),
	)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

func (s *Server) handleMap(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	client, err := s.catalog()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entries, err := client.CryptocurrencyMap(ctx, cmc.MapQuery{
		Symbol:        cast.ToString(args["symbol"]),
		Slug:          cast.ToString(args["slug"]),
		ListingStatus: cast.ToString(args["listing_status"]),
		Limit:         cast.ToInt(args["limit"]),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := models.MapResult{
		Cryptocurrencies: make([]models.CryptoListing, 0, len(entries)),
		Count:            len(entries),
	}
	for _, e := range entries {
		result.Cryptocurrencies = append(result.Cryptocurrencies, projectListing(e))
	}
	return jsonResult(result)
}

func (s *Server) handleInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	client, err := s.catalog()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := client.CryptocurrencyInfo(ctx, cmc.InfoQuery{
		ID:      cast.ToString(args["id"]),
		Symbol:  cast.ToString(args["symbol"]),
		Slug:    cast.ToString(args["slug"]),
		Address: cast.ToString(args["address"]),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result models.InfoResult
	for _, key := range sortedKeys(data) {
		for _, e := range data[key] {
			result.Cryptocurrencies = append(result.Cryptocurrencies, projectProfile(e))
		}
	}
	result.Count = len(result.Cryptocurrencies)
	return jsonResult(result)
}

func (s *Server) handleQuotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	client, err := s.catalog()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	convert := cast.ToString(args["convert"])
	if convert == "" {
		convert = "USD"
	}
	data, err := client.QuotesLatest(ctx, cmc.QuoteQuery{
		ID:      cast.ToString(args["id"]),
		Symbol:  cast.ToString(args["symbol"]),
		Slug:    cast.ToString(args["slug"]),
		Convert: convert,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := models.QuotesResult{Convert: convert}
	for _, key := range sortedKeys(data) {
		for _, e := range data[key] {
			result.Quotes = append(result.Quotes, projectQuote(e, convert))
		}
	}
	result.Count = len(result.Quotes)
	return jsonResult(result)
}

func (s *Server) handleExchangeMap(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	client, err := s.catalog()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entries, err := client.ExchangeMap(ctx, cmc.ExchangeMapQuery{
		Slug:          cast.ToString(args["slug"]),
		ListingStatus: cast.ToString(args["listing_status"]),
		Limit:         cast.ToInt(args["limit"]),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := models.ExchangeMapResult{
		Exchanges: make([]models.Exchange, 0, len(entries)),
		Count:     len(entries),
	}
	for _, e := range entries {
		result.Exchanges = append(result.Exchanges, projectExchange(e))
	}
	return jsonResult(result)
}

func (s *Server) handleExchangeInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	client, err := s.catalog()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := client.ExchangeInfo(ctx, cmc.ExchangeInfoQuery{
		ID:   cast.ToString(args["id"]),
		Slug: cast.ToString(args["slug"]),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result models.ExchangeInfoResult
	for _, key := range sortedKeys(data) {
		result.Exchanges = append(result.Exchanges, projectExchangeProfile(data[key]))
	}
	result.Count = len(result.Exchanges)
	return jsonResult(result)
}

func (s *Server) handleGlobalMetrics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	client, err := s.catalog()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	convert := cast.ToString(args["convert"])
	if convert == "" {
		convert = "USD"
	}
	metrics, err := client.GlobalMetrics(ctx, convert)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(projectGlobalMetrics(metrics, convert))
}

func (s *Server) handleKeyInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	client, err := s.catalog()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	info, err := client.KeyInfo(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(projectKeyInfo(info))
}

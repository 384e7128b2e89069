package mcpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/YimingYAN/coinmarketcap-mcp/internal/cmc"
	"github.com/YimingYAN/coinmarketcap-mcp/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{HTTPAddr: "127.0.0.1:0", CORSOrigins: []string{"*"}},
		Logging: config.LoggingConfig{Level: "info"},
	}
}

// newTestServer builds a Server whose catalog client talks to the given
// handler instead of the real API.
func newTestServer(t *testing.T, handler http.HandlerFunc) *Server {
	t.Helper()
	api := httptest.NewServer(handler)
	t.Cleanup(api.Close)
	client := cmc.New("test-key", cmc.WithBaseURL(api.URL))
	return New(testConfig(), "test", WithClient(client))
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText asserts the tool call succeeded and returns its text payload.
func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res.IsError {
		t.Fatalf("tool returned error: %+v", res.Content)
	}
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return text.Text
}

func okEnvelope(data string) string {
	return `{"status":{"error_code":0,"error_message":null},"data":` + data + `}`
}

func TestHandleMap(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/cryptocurrency/map" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(okEnvelope(`[
			{"id":1,"rank":1,"name":"Bitcoin","symbol":"BTC","slug":"bitcoin","is_active":1},
			{"id":1027,"rank":2,"name":"Ethereum","symbol":"ETH","slug":"ethereum","is_active":1}
		]`)))
	})

	res, err := srv.handleMap(context.Background(), callRequest(map[string]any{"symbol": "BTC,ETH"}))
	if err != nil {
		t.Fatalf("handleMap: %v", err)
	}

	var out struct {
		Cryptocurrencies []struct {
			ID     int    `json:"id"`
			Symbol string `json:"symbol"`
		} `json:"cryptocurrencies"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if out.Count != 2 || len(out.Cryptocurrencies) != 2 {
		t.Fatalf("count = %d, entries = %d", out.Count, len(out.Cryptocurrencies))
	}
	if out.Cryptocurrencies[0].ID != 1 || out.Cryptocurrencies[1].Symbol != "ETH" {
		t.Errorf("unexpected entries: %+v", out.Cryptocurrencies)
	}
}

func TestHandleSearch(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/cryptocurrency/map":
			if r.URL.Query().Get("symbol") != "BTC" {
				t.Errorf("symbol = %q", r.URL.Query().Get("symbol"))
			}
			w.Write([]byte(okEnvelope(`[{"id":1,"rank":1,"name":"Bitcoin","symbol":"BTC","slug":"bitcoin"}]`)))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	})

	res, err := srv.handleSearch(context.Background(), callRequest(map[string]any{"symbol": "BTC"}))
	if err != nil {
		t.Fatalf("handleSearch: %v", err)
	}

	var out struct {
		Found      bool `json:"found"`
		MatchCount int  `json:"match_count"`
		BestMatch  struct {
			ID         int    `json:"id"`
			Confidence string `json:"confidence"`
			Method     string `json:"match_method"`
		} `json:"best_match"`
		SearchLog []string `json:"search_log"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if !out.Found || out.MatchCount != 1 {
		t.Fatalf("found=%v count=%d", out.Found, out.MatchCount)
	}
	if out.BestMatch.ID != 1 || out.BestMatch.Confidence != "high" || out.BestMatch.Method != "exact_symbol" {
		t.Errorf("best match = %+v", out.BestMatch)
	}
	if len(out.SearchLog) == 0 {
		t.Error("empty search log")
	}
}

func TestHandleSearchMissingParams(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	res, err := srv.handleSearch(context.Background(), callRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("handleSearch: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected tool error for missing name and symbol")
	}
}

func TestHandleQuotesDefaultsConvert(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("convert"); got != "USD" {
			t.Errorf("convert = %q, want USD default", got)
		}
		w.Write([]byte(okEnvelope(`{
			"1": {"id":1,"name":"Bitcoin","symbol":"BTC","slug":"bitcoin","cmc_rank":1,
			      "quote":{"USD":{"price":97000.1}}}
		}`)))
	})

	res, err := srv.handleQuotes(context.Background(), callRequest(map[string]any{"id": "1"}))
	if err != nil {
		t.Fatalf("handleQuotes: %v", err)
	}

	var out struct {
		Quotes []struct {
			Symbol string `json:"symbol"`
			Quote  struct {
				Price *float64 `json:"price"`
			} `json:"quote"`
		} `json:"quotes"`
		Convert string `json:"convert"`
		Count   int    `json:"count"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if out.Convert != "USD" || out.Count != 1 {
		t.Fatalf("convert=%q count=%d", out.Convert, out.Count)
	}
	if out.Quotes[0].Quote.Price == nil || *out.Quotes[0].Quote.Price != 97000.1 {
		t.Errorf("price = %v", out.Quotes[0].Quote.Price)
	}
}

func TestHandleInfoDeterministicOrder(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(okEnvelope(`{
			"1027": {"id":1027,"name":"Ethereum","symbol":"ETH","slug":"ethereum"},
			"1":    {"id":1,"name":"Bitcoin","symbol":"BTC","slug":"bitcoin"}
		}`)))
	})

	res, err := srv.handleInfo(context.Background(), callRequest(map[string]any{"id": "1,1027"}))
	if err != nil {
		t.Fatalf("handleInfo: %v", err)
	}

	var out struct {
		Cryptocurrencies []struct {
			ID int `json:"id"`
		} `json:"cryptocurrencies"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	// Keys are flattened in numeric order, not map order.
	if len(out.Cryptocurrencies) != 2 || out.Cryptocurrencies[0].ID != 1 || out.Cryptocurrencies[1].ID != 1027 {
		t.Errorf("unexpected order: %+v", out.Cryptocurrencies)
	}
}

func TestHandleAPIErrorBecomesToolError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":{"error_code":1002,"error_message":"API key missing."},"data":null}`))
	})

	res, err := srv.handleMap(context.Background(), callRequest(map[string]any{"symbol": "BTC"}))
	if err != nil {
		t.Fatalf("handleMap: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected tool error")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	if !strings.Contains(text.Text, "API key missing.") {
		t.Errorf("error text = %q", text.Text)
	}
}

func TestMissingCredentialIsToolError(t *testing.T) {
	// No injected client, no credential in the environment: the first tool
	// call reports the missing key instead of the server failing to start.
	for _, name := range config.APIKeyEnvVars {
		t.Setenv(name, "")
	}
	srv := New(testConfig(), "test")

	res, err := srv.handleKeyInfo(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handleKeyInfo: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected tool error for missing credential")
	}
	text := res.Content[0].(mcp.TextContent)
	if !strings.Contains(text.Text, "COINMARKETCAP_API_KEY") {
		t.Errorf("error text = %q", text.Text)
	}
}

func TestHandleGlobalMetrics(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/global-metrics/quotes/latest" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(okEnvelope(`{
			"btc_dominance": 54.2,
			"active_cryptocurrencies": 9000,
			"quote": {"USD": {"total_market_cap": 2500000000000}}
		}`)))
	})

	res, err := srv.handleGlobalMetrics(context.Background(), callRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("handleGlobalMetrics: %v", err)
	}

	var out struct {
		BTCDominance *float64 `json:"btc_dominance"`
		Quote        struct {
			TotalMarketCap *float64 `json:"total_market_cap"`
		} `json:"quote"`
		Convert string `json:"convert"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if out.BTCDominance == nil || *out.BTCDominance != 54.2 {
		t.Errorf("btc_dominance = %v", out.BTCDominance)
	}
	if out.Convert != "USD" || out.Quote.TotalMarketCap == nil {
		t.Errorf("quote = %+v convert = %q", out.Quote, out.Convert)
	}
}

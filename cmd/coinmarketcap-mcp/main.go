// coinmarketcap-mcp — CoinMarketCap catalog MCP server.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/YimingYAN/coinmarketcap-mcp/internal/cmc"
	"github.com/YimingYAN/coinmarketcap-mcp/internal/config"
	"github.com/YimingYAN/coinmarketcap-mcp/internal/mcpserver"
	"github.com/YimingYAN/coinmarketcap-mcp/internal/resolver"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "coinmarketcap-mcp",
	Short: "coinmarketcap-mcp — CoinMarketCap catalog tools over MCP",
	Long: `coinmarketcap-mcp
An MCP server exposing the CoinMarketCap catalog: progressive cryptocurrency
search with symbol variations, slug and fuzzy name matching, homepage
verification, plus raw map/info/quotes, exchange, global metrics and key
usage lookups.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("coinmarketcap-mcp %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Serve Command ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Run the MCP server on stdio (the default, for MCP hosts that spawn the
binary) or over streamable HTTP with --http.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := mcpserver.New(cfg, version)

		useHTTP, _ := cmd.Flags().GetBool("http")
		if useHTTP {
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = cfg.Server.HTTPAddr
			}
			return srv.ListenAndServe(addr)
		}
		return srv.ServeStdio()
	},
}

func init() {
	serveCmd.Flags().Bool("http", false, "serve over streamable HTTP instead of stdio")
	serveCmd.Flags().String("addr", "", "HTTP listen address (default: config server.http_addr)")
}

// --- Search Command ---

var searchCmd = &cobra.Command{
	Use:   "search [name]",
	Short: "Run a progressive cryptocurrency search from the command line",
	Long: `Resolve a cryptocurrency by name and/or symbol using the same progressive
pipeline the search_cryptocurrency tool runs: exact symbol, symbol
variations, slug, then fuzzy name matching, with optional homepage
verification.

Examples:
  coinmarketcap-mcp search Bitcoin
  coinmarketcap-mcp search --symbol RNDR
  coinmarketcap-mcp search "Render" --symbol RNDR --homepage https://rendernetwork.com
  coinmarketcap-mcp search Ethereum --profile`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		symbol, _ := cmd.Flags().GetString("symbol")
		homepage, _ := cmd.Flags().GetString("homepage")
		profile, _ := cmd.Flags().GetBool("profile")

		key, err := config.APIKey()
		if err != nil {
			return err
		}
		client := cmc.New(key)

		result, err := resolver.New(client).Search(cmd.Context(), name, symbol, homepage)
		if err != nil {
			return err
		}
		if err := printJSON(result); err != nil {
			return err
		}
		if !profile || result.BestMatch == nil {
			return nil
		}

		// Fetch metadata and quote for the best match concurrently.
		id := strconv.Itoa(result.BestMatch.ID)
		var (
			info   map[string][]cmc.InfoEntry
			quotes map[string][]cmc.QuoteEntry
		)
		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			var err error
			info, err = client.CryptocurrencyInfo(ctx, cmc.InfoQuery{ID: id})
			return err
		})
		g.Go(func() error {
			var err error
			quotes, err = client.QuotesLatest(ctx, cmc.QuoteQuery{ID: id, Convert: "USD"})
			return err
		})
		if err := g.Wait(); err != nil {
			return fmt.Errorf("failed to fetch profile for id %s: %w", id, err)
		}

		fmt.Println("\n--- Profile ---")
		if entries := info[id]; len(entries) > 0 {
			if err := printJSON(entries[0]); err != nil {
				return err
			}
		}
		fmt.Println("\n--- Latest Quote (USD) ---")
		if entries := quotes[id]; len(entries) > 0 {
			if err := printJSON(entries[0]); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().String("symbol", "", "cryptocurrency symbol (e.g., BTC)")
	searchCmd.Flags().String("homepage", "", "project homepage URL for verification")
	searchCmd.Flags().Bool("profile", false, "also fetch metadata and latest quote for the best match")
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and credential status",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  coinmarketcap-mcp — Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:     %s (%s)\n", version, commit)
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    HTTP Addr:    %s\n", cfg.Server.HTTPAddr)
		fmt.Printf("    CORS Origins: %v\n", cfg.Server.CORSOrigins)
		fmt.Printf("    Log Level:    %s\n", cfg.Logging.Level)
		fmt.Println()

		fmt.Println("  API Keys:")
		k := config.CheckAPIKey()
		status := "❌ not set"
		if k.IsSet {
			status = fmt.Sprintf("✅ set (%s: %s)", k.Source, k.Masked)
		}
		fmt.Printf("    %-25s %s\n", k.Name+":", status)

		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

// printJSON pretty-prints v to stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

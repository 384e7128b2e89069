// Package mcpserver exposes the CoinMarketCap operations as MCP tools.
//
// The primary tool is search_cryptocurrency, backed by the progressive
// resolver; the remaining tools are pass-throughs over the raw API
// operations, each returning a projected subset of response fields.
package mcpserver

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/YimingYAN/coinmarketcap-mcp/internal/cmc"
	"github.com/YimingYAN/coinmarketcap-mcp/internal/config"
)

// Name is the MCP server name announced to hosts.
const Name = "coinmarketcap-mcp"

// Server wires the catalog client and resolver into an MCP tool surface.
type Server struct {
	cfg *config.Config
	mcp *server.MCPServer

	mu        sync.Mutex
	client    *cmc.Client
	newClient func() (*cmc.Client, error)
}

// Option customizes a Server.
type Option func(*Server)

// WithClient injects a pre-built catalog client, bypassing credential
// resolution. Used by tests.
func WithClient(c *cmc.Client) Option {
	return func(s *Server) { s.client = c }
}

// New creates the MCP server and registers all tools. The catalog client is
// not created here: the credential is resolved lazily on the first tool call
// so the server can start without one.
func New(cfg *config.Config, version string, opts ...Option) *Server {
	s := &Server{
		cfg: cfg,
		newClient: func() (*cmc.Client, error) {
			key, err := config.APIKey()
			if err != nil {
				return nil, err
			}
			return cmc.New(key), nil
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcp = server.NewMCPServer(Name, version)
	s.registerTools()
	return s
}

// catalog returns the shared catalog client, creating it on first use.
func (s *Server) catalog() (*cmc.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, nil
	}
	c, err := s.newClient()
	if err != nil {
		return nil, err
	}
	s.client = c
	return c, nil
}

// ServeStdio runs the MCP server over stdin/stdout until EOF.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// ListenAndServe runs the MCP server over streamable HTTP on addr, mounted
// behind a router with CORS and a health endpoint.
func (s *Server) ListenAndServe(addr string) error {
	streamable := server.NewStreamableHTTPServer(s.mcp)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","server":"` + Name + `"}`))
	})
	r.Handle("/mcp", streamable)
	r.Handle("/mcp/*", streamable)

	log.Printf("%s listening on http://%s/mcp", Name, addr)
	return http.ListenAndServe(addr, r)
}

// jsonResult marshals a tool response as pretty-printed JSON text content.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// sortedKeys orders response map keys numerically where possible so output
// ordering is deterministic.
func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, aerr := strconv.Atoi(keys[i])
		b, berr := strconv.Atoi(keys[j])
		if aerr == nil && berr == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})
	return keys
}

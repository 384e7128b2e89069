package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// No config file in the test working directory: defaults apply.
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTPAddr != "127.0.0.1:8080" {
		t.Errorf("http_addr = %q", cfg.Server.HTTPAddr)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "*" {
		t.Errorf("cors_origins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("logging.level = %q", cfg.Logging.Level)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CMCMCP_SERVER_HTTP_ADDR", "0.0.0.0:9999")
	t.Setenv("CMCMCP_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTPAddr != "0.0.0.0:9999" {
		t.Errorf("http_addr = %q, want env override", cfg.Server.HTTPAddr)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging.level = %q, want env override", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `server:
  http_addr: "127.0.0.1:3000"
  cors_origins:
    - "https://example.com"
logging:
  level: warn
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Server.HTTPAddr != "127.0.0.1:3000" {
		t.Errorf("http_addr = %q", cfg.Server.HTTPAddr)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "https://example.com" {
		t.Errorf("cors_origins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("logging.level = %q", cfg.Logging.Level)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestAPIKeyPrecedence(t *testing.T) {
	t.Setenv("COINMARKETCAP_API_KEY", "primary-key")
	t.Setenv("CMC_API_KEY", "fallback-key")

	key, err := APIKey()
	if err != nil {
		t.Fatalf("APIKey: %v", err)
	}
	if key != "primary-key" {
		t.Errorf("key = %q, want COINMARKETCAP_API_KEY to win", key)
	}
}

func TestAPIKeyFallback(t *testing.T) {
	t.Setenv("COINMARKETCAP_API_KEY", "")
	t.Setenv("CMC_API_KEY", "fallback-key")

	key, err := APIKey()
	if err != nil {
		t.Fatalf("APIKey: %v", err)
	}
	if key != "fallback-key" {
		t.Errorf("key = %q", key)
	}
}

func TestAPIKeyMissing(t *testing.T) {
	t.Setenv("COINMARKETCAP_API_KEY", "")
	t.Setenv("CMC_API_KEY", "")

	_, err := APIKey()
	if err != ErrMissingAPIKey {
		t.Errorf("err = %v, want ErrMissingAPIKey", err)
	}
}

func TestCheckAPIKey(t *testing.T) {
	t.Setenv("COINMARKETCAP_API_KEY", "")
	t.Setenv("CMC_API_KEY", "abcdefghij123456")

	status := CheckAPIKey()
	if !status.IsSet {
		t.Fatal("expected key to be reported as set")
	}
	if status.Source != "CMC_API_KEY" {
		t.Errorf("source = %q", status.Source)
	}
	if status.Masked != "abc...456" {
		t.Errorf("masked = %q", status.Masked)
	}
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"short", "***"},
		{"12345678", "***"},
		{"123456789", "123...789"},
		{"abcdefghij123456", "abc...456"},
	}
	for _, tt := range tests {
		if got := maskKey(tt.key); got != tt.want {
			t.Errorf("maskKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

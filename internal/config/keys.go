package config

import (
	"errors"
	"os"
)

// APIKeyEnvVars lists the environment variables consulted for the
// CoinMarketCap credential, in order; the first non-empty one wins.
var APIKeyEnvVars = []string{"COINMARKETCAP_API_KEY", "CMC_API_KEY"}

// ErrMissingAPIKey is returned when no credential is present in the
// environment.
var ErrMissingAPIKey = errors.New(
	"COINMARKETCAP_API_KEY or CMC_API_KEY environment variable is required; " +
		"get a free API key at https://coinmarketcap.com/api/")

// APIKey resolves the CoinMarketCap API key from the environment.
func APIKey() (string, error) {
	for _, name := range APIKeyEnvVars {
		if v := os.Getenv(name); v != "" {
			return v, nil
		}
	}
	return "", ErrMissingAPIKey
}

// KeyStatus represents the presence of the API credential for display.
type KeyStatus struct {
	Name   string `json:"name"`
	IsSet  bool   `json:"is_set"`
	Source string `json:"source,omitempty"` // env var the key came from
	Masked string `json:"masked,omitempty"` // e.g., "abc...789"
}

// CheckAPIKey reports whether the CoinMarketCap credential is configured,
// without exposing it.
func CheckAPIKey() KeyStatus {
	status := KeyStatus{Name: "CoinMarketCap API Key"}
	for _, name := range APIKeyEnvVars {
		if v := os.Getenv(name); v != "" {
			status.IsSet = true
			status.Source = name
			status.Masked = maskKey(v)
			break
		}
	}
	return status
}

// maskKey masks an API key for display, showing only first 3 and last 3 chars.
func maskKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:3] + "..." + key[len(key)-3:]
}

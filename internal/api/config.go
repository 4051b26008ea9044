package api

import "strings"

// Config holds the API client settings.
type Config struct {
	BaseURL   string
	TimeoutMs int
	LogCalls  bool
}

// DefaultConfig returns a Config pointing at a local development server.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "http://localhost:8000",
		TimeoutMs: 15000,
		LogCalls:  false,
	}
}

func (c Config) endpoint(path string) string {
	return strings.TrimRight(c.BaseURL, "/") + path
}

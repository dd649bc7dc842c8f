// Package pagination provides offset-based pagination shared by the book
// list and search endpoints: query-parameter parsing, offset/page-count
// arithmetic, and a generic response envelope.
package pagination

import (
	"os"
	"strconv"
)

// Config holds pagination limits. It is loaded once at startup and passed to
// the handlers that parse query parameters.
type Config struct {
	DefaultPage  int // page used when the query omits one (typically 1)
	DefaultLimit int // items per page when the query omits a limit
	MaxLimit     int // upper bound on the limit query parameter
}

// DefaultConfig returns the built-in configuration: page=1, limit=20, max=100.
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 20,
		MaxLimit:     100,
	}
}

// LoadFromEnv loads the configuration from PAGINATION_DEFAULT_PAGE,
// PAGINATION_DEFAULT_LIMIT and PAGINATION_MAX_LIMIT. Unset or unparsable
// variables fall back to the defaults.
func LoadFromEnv() Config {
	return Config{
		DefaultPage:  getEnvAsInt("PAGINATION_DEFAULT_PAGE", 1),
		DefaultLimit: getEnvAsInt("PAGINATION_DEFAULT_LIMIT", 20),
		MaxLimit:     getEnvAsInt("PAGINATION_MAX_LIMIT", 100),
	}
}

func getEnvAsInt(key string, defaultValue int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultValue
	}
	return val
}

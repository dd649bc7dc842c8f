package middleware

import (
	"fmt"
	"net/url"
	"strings"

	"bookshelf/pkg/config"
)

// Defaults applied when the corresponding env vars are unset.
var (
	defaultCORSMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	defaultCORSHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
)

const defaultCORSMaxAge = 86400

// LoadCORSConfig builds a CORSConfig from environment variables.
//
//   - CORS_ALLOWED_ORIGINS: comma-separated origins, required (fail-closed)
//   - CORS_ALLOWED_METHODS: optional, defaults to the common REST verbs
//   - CORS_ALLOWED_HEADERS: optional
//   - CORS_MAX_AGE: optional preflight cache seconds
func LoadCORSConfig() (*CORSConfig, error) {
	origins := config.GetEnvStringList("CORS_ALLOWED_ORIGINS", nil)
	if len(origins) == 0 {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS is required; refusing to start with no allowed origins")
	}
	for _, origin := range origins {
		if err := validateOrigin(origin); err != nil {
			return nil, fmt.Errorf("invalid origin %q: %w", origin, err)
		}
	}

	methods := config.GetEnvStringList("CORS_ALLOWED_METHODS", defaultCORSMethods)
	for _, m := range methods {
		if !validCORSMethod(m) {
			return nil, fmt.Errorf("invalid CORS method %q", m)
		}
	}

	maxAge := config.GetEnvInt("CORS_MAX_AGE", defaultCORSMaxAge)
	if maxAge < 0 {
		return nil, fmt.Errorf("CORS_MAX_AGE must be non-negative, got %d", maxAge)
	}

	return &CORSConfig{
		AllowedOrigins: origins,
		AllowedMethods: methods,
		AllowedHeaders: config.GetEnvStringList("CORS_ALLOWED_HEADERS", defaultCORSHeaders),
		MaxAge:         maxAge,
	}, nil
}

func validateOrigin(origin string) error {
	if strings.HasSuffix(origin, "/") {
		return fmt.Errorf("origin must not have a trailing slash")
	}
	u, err := url.Parse(origin)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("origin scheme must be http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("origin must include a host")
	}
	if u.Path != "" {
		return fmt.Errorf("origin must not include a path")
	}
	return nil
}

func validCORSMethod(method string) bool {
	switch method {
	case "GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS", "HEAD":
		return true
	}
	return false
}

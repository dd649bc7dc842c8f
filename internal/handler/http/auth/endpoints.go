package auth

import "strings"

// PublicEndpoints are served without a JWT:
// health probes for orchestration, /metrics for Prometheus scraping,
// Swagger for developers, and /auth/token because a token cannot be
// required to obtain a token.
var PublicEndpoints = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
	"/swagger/",
	"/auth/token",
}

// ConfigurePublicEndpoints replaces the public endpoint list, typically
// from the YAML security config at startup. Empty input is ignored.
func ConfigurePublicEndpoints(endpoints []string) {
	if len(endpoints) == 0 {
		return
	}
	PublicEndpoints = endpoints
}

// IsPublicEndpoint reports whether path may be served unauthenticated.
//
// Entries ending in "/" match by prefix (/swagger/ covers
// /swagger/index.html); other entries match exactly, with an optional
// trailing slash or query string. /health therefore does not cover
// /healthcheck or /health/detail.
func IsPublicEndpoint(path string) bool {
	for _, endpoint := range PublicEndpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}

		if path == endpoint || path == endpoint+"/" {
			return true
		}
		if strings.HasPrefix(path, endpoint+"?") {
			return true
		}
	}
	return false
}

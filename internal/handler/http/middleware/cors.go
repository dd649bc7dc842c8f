// Package middleware provides HTTP middleware shared by the API server:
// CORS, CSP, client IP extraction and IP rate limiting.
package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds the CORS policy applied by the CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is the exact-match whitelist of permitted origins.
	AllowedOrigins []string

	// AllowedMethods are the HTTP methods permitted in cross-origin requests.
	AllowedMethods []string

	// AllowedHeaders are the request headers permitted in cross-origin requests.
	AllowedHeaders []string

	// MaxAge is how long browsers may cache preflight results, in seconds.
	MaxAge int

	// Logger receives policy violation warnings. May be nil.
	Logger *slog.Logger
}

func (c *CORSConfig) originAllowed(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// CORS returns middleware enforcing the given CORS policy.
//
// Same-origin requests (no Origin header) pass through untouched.
// Disallowed origins are logged and forwarded without CORS headers,
// leaving the browser to block the response. Preflight OPTIONS
// requests are answered directly with 204.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !config.originAllowed(origin) {
				if config.Logger != nil {
					config.Logger.Warn("CORS: origin not allowed",
						slog.String("origin", origin),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("remote_addr", r.RemoteAddr),
					)
				}
				next.ServeHTTP(w, r)
				return
			}

			// Echo the request origin; required when credentials are allowed.
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

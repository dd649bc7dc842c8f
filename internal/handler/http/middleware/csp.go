package middleware

import (
	"net/http"
	"strings"

	"bookshelf/pkg/security/csp"
)

// CSPConfig configures the Content-Security-Policy middleware.
type CSPConfig struct {
	// Enabled toggles CSP headers entirely.
	Enabled bool

	// DefaultPolicy applies when no path-specific policy matches.
	DefaultPolicy *csp.Builder

	// PathPolicies maps path prefixes to policies. The longest
	// matching prefix wins. Swagger UI needs a relaxed policy,
	// JSON endpoints get the strict one.
	PathPolicies map[string]*csp.Builder

	// ReportOnly switches every policy to report-only mode.
	ReportOnly bool
}

// DefaultCSPConfig returns a policy set guarding the Swagger UI while
// keeping API responses strict.
func DefaultCSPConfig() CSPConfig {
	return CSPConfig{
		Enabled:       true,
		DefaultPolicy: csp.StrictPolicy(),
		PathPolicies: map[string]*csp.Builder{
			"/swagger/": csp.SwaggerUIPolicy(),
		},
	}
}

// CSP returns middleware that sets Content-Security-Policy headers.
func CSP(config CSPConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			policy := selectCSPPolicy(config, r.URL.Path)
			if policy == nil {
				next.ServeHTTP(w, r)
				return
			}

			if config.ReportOnly {
				policy = policy.ReportOnly(true)
			}

			if value := policy.Build(); value != "" {
				w.Header().Set(policy.HeaderName(), value)
			}

			next.ServeHTTP(w, r)
		})
	}
}

func selectCSPPolicy(config CSPConfig, path string) *csp.Builder {
	var (
		best    *csp.Builder
		bestLen = -1
	)
	for prefix, policy := range config.PathPolicies {
		if strings.HasPrefix(path, prefix) && len(prefix) > bestLen {
			best = policy
			bestLen = len(prefix)
		}
	}
	if best != nil {
		return best
	}
	return config.DefaultPolicy
}

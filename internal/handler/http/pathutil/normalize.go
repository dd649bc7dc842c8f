package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern pairs a compiled pattern with its normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns lists the dynamic routes, most specific first. Patterns are
// compiled once at package initialization.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/books/\d+$`), Template: "/books/:id"},
}

// NormalizePath maps dynamic URL paths to templates so that metrics labels
// stay at a fixed cardinality: /books/123 becomes /books/:id while static
// paths such as /books/search, /health and /metrics pass through unchanged.
// Query strings and trailing slashes are stripped first.
//
// Examples:
//
//	NormalizePath("/books/123")         // "/books/:id"
//	NormalizePath("/books/123?page=1")  // "/books/:id"
//	NormalizePath("/books/123/")        // "/books/:id"
//	NormalizePath("/books/search")      // "/books/search" (unchanged)
//	NormalizePath("/health")            // "/health" (unchanged)
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	// Unmatched paths pass through; static routes are already bounded.
	return path
}

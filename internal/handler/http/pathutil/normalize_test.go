package pathutil_test

import (
	"testing"

	"bookshelf/internal/handler/http/pathutil"
)

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "book id", path: "/books/123", want: "/books/:id"},
		{name: "another book id", path: "/books/456789", want: "/books/:id"},
		{name: "book id with query", path: "/books/123?fields=title", want: "/books/:id"},
		{name: "book id with trailing slash", path: "/books/123/", want: "/books/:id"},
		{name: "book list", path: "/books", want: "/books"},
		{name: "book search", path: "/books/search", want: "/books/search"},
		{name: "book search with query", path: "/books/search?title=go", want: "/books/search"},
		{name: "health", path: "/health", want: "/health"},
		{name: "metrics", path: "/metrics", want: "/metrics"},
		{name: "auth token", path: "/auth/token", want: "/auth/token"},
		{name: "root", path: "/", want: "/"},
		{name: "unknown path untouched", path: "/unknown/path/123", want: "/unknown/path/123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pathutil.NormalizePath(tt.path)
			if got != tt.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookshelf/internal/handler/http/requestid"

	"github.com/google/uuid"
)

func TestFromContextEmpty(t *testing.T) {
	t.Parallel()

	if id := requestid.FromContext(context.Background()); id != "" {
		t.Errorf("FromContext(empty) = %q, want \"\"", id)
	}
}

func TestWithRequestID(t *testing.T) {
	t.Parallel()

	ctx := requestid.WithRequestID(context.Background(), "abc-123")
	if id := requestid.FromContext(ctx); id != "abc-123" {
		t.Errorf("FromContext = %q, want abc-123", id)
	}
}

func TestMiddlewareGeneratesID(t *testing.T) {
	t.Parallel()

	var seen string
	h := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/books", nil))

	if seen == "" {
		t.Fatal("request ID not set in context")
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("generated ID %q is not a UUID: %v", seen, err)
	}
	if got := w.Header().Get(requestid.RequestIDHeader); got != seen {
		t.Errorf("response header = %q, want %q", got, seen)
	}
}

func TestMiddlewarePropagatesExistingID(t *testing.T) {
	t.Parallel()

	var seen string
	h := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
	}))

	r := httptest.NewRequest("GET", "/books", nil)
	r.Header.Set(requestid.RequestIDHeader, "client-supplied-id")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if seen != "client-supplied-id" {
		t.Errorf("context ID = %q, want client-supplied-id", seen)
	}
	if got := w.Header().Get(requestid.RequestIDHeader); got != "client-supplied-id" {
		t.Errorf("response header = %q, want client-supplied-id", got)
	}
}

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"bookshelf/internal/handler/http/respond"
)

func TestJSON(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	respond.JSON(w, 201, map[string]int64{"id": 42})

	if w.Code != 201 {
		t.Errorf("status = %d, want 201", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body map[string]int64
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["id"] != 42 {
		t.Errorf("body id = %d, want 42", body["id"])
	}
}

func TestJSONNilBody(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	respond.JSON(w, 204, nil)

	if w.Code != 204 {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", w.Body.String())
	}
}

func TestSafeError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		code     int
		err      error
		wantBody string
	}{
		{
			name:     "validation error passed through",
			code:     400,
			err:      errors.New("title is required"),
			wantBody: "title is required",
		},
		{
			name:     "not found passed through",
			code:     404,
			err:      errors.New("book not found"),
			wantBody: "book not found",
		},
		{
			name:     "internal detail masked",
			code:     400,
			err:      errors.New(`pq: connection reset by peer`),
			wantBody: "internal server error",
		},
		{
			name:     "500 always masked even when message looks safe",
			code:     500,
			err:      errors.New("title is required"),
			wantBody: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			respond.SafeError(w, tt.code, tt.err)

			if w.Code != tt.code {
				t.Errorf("status = %d, want %d", w.Code, tt.code)
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal body: %v", err)
			}
			if body["error"] != tt.wantBody {
				t.Errorf("error = %q, want %q", body["error"], tt.wantBody)
			}
		})
	}
}

func TestSafeErrorNil(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	respond.SafeError(w, 500, nil)

	// nilエラーは何も書き込まない
	if w.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", w.Body.String())
	}
}

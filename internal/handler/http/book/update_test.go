package book_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bookshelf/internal/domain/entity"
	"bookshelf/internal/handler/http/book"
	"bookshelf/internal/repository"
	bookUC "bookshelf/internal/usecase/book"
)

/* ───────── モック実装 ───────── */

type stubUpdateRepo struct {
	book      *entity.Book
	updateErr error
	updated   *entity.Book
}

func (s *stubUpdateRepo) Get(_ context.Context, id int64) (*entity.Book, error) {
	if s.book != nil && s.book.ID == id {
		clone := *s.book
		return &clone, nil
	}
	return nil, nil
}

func (s *stubUpdateRepo) Update(_ context.Context, b *entity.Book) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updated = b
	return nil
}

// 以下は未使用だが、インターフェースを満たすために実装
func (s *stubUpdateRepo) List(_ context.Context) ([]*entity.Book, error) {
	return nil, nil
}
func (s *stubUpdateRepo) ListPaginated(_ context.Context, _, _ int) ([]*entity.Book, error) {
	return nil, nil
}
func (s *stubUpdateRepo) CountBooks(_ context.Context) (int64, error) {
	return 0, nil
}
func (s *stubUpdateRepo) Search(_ context.Context, _ string) ([]*entity.Book, error) {
	return nil, nil
}
func (s *stubUpdateRepo) SearchWithFilters(_ context.Context, _ []string, _ repository.BookSearchFilters) ([]*entity.Book, error) {
	return nil, nil
}
func (s *stubUpdateRepo) Create(_ context.Context, _ *entity.Book) error {
	return nil
}
func (s *stubUpdateRepo) Delete(_ context.Context, _ int64) error {
	return nil
}
func (s *stubUpdateRepo) ExistsByTitleAuthor(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func existingBook() *entity.Book {
	now := time.Now()
	return &entity.Book{
		ID:        1,
		Title:     "Old Title",
		Author:    "Old Author",
		Price:     1000,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

/* ───────── テストケース ───────── */

func TestUpdateHandler_Success(t *testing.T) {
	stub := &stubUpdateRepo{book: existingBook()}
	handler := book.UpdateHandler{Svc: &bookUC.Service{Repo: stub}}

	body := `{"title":"New Title"}`
	req := httptest.NewRequest(http.MethodPut, "/books/1", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d (body: %s)", rr.Code, http.StatusOK, rr.Body.String())
	}

	// レスポンスのパース
	var result book.DTO
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	// 指定したフィールドだけが更新されること
	if result.Title != "New Title" {
		t.Errorf("result.Title = %q, want %q", result.Title, "New Title")
	}
	if result.Author != "Old Author" {
		t.Errorf("result.Author = %q, want %q", result.Author, "Old Author")
	}
	if result.Price != 1000 {
		t.Errorf("result.Price = %d, want 1000", result.Price)
	}

	if stub.updated == nil {
		t.Fatal("repository Update was not called")
	}
}

func TestUpdateHandler_InvalidID(t *testing.T) {
	stub := &stubUpdateRepo{}
	handler := book.UpdateHandler{Svc: &bookUC.Service{Repo: stub}}

	req := httptest.NewRequest(http.MethodPut, "/books/abc", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestUpdateHandler_InvalidJSON(t *testing.T) {
	stub := &stubUpdateRepo{book: existingBook()}
	handler := book.UpdateHandler{Svc: &bookUC.Service{Repo: stub}}

	req := httptest.NewRequest(http.MethodPut, "/books/1", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestUpdateHandler_NotFound(t *testing.T) {
	stub := &stubUpdateRepo{} // 書籍が存在しない
	handler := book.UpdateHandler{Svc: &bookUC.Service{Repo: stub}}

	body := `{"title":"New Title"}`
	req := httptest.NewRequest(http.MethodPut, "/books/999", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestUpdateHandler_ValidationError(t *testing.T) {
	// 空文字へ更新しようとした場合は400
	stub := &stubUpdateRepo{book: existingBook()}
	handler := book.UpdateHandler{Svc: &bookUC.Service{Repo: stub}}

	body := `{"title":""}`
	req := httptest.NewRequest(http.MethodPut, "/books/1", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestUpdateHandler_RepositoryError(t *testing.T) {
	stub := &stubUpdateRepo{
		book:      existingBook(),
		updateErr: errors.New("database error"),
	}
	handler := book.UpdateHandler{Svc: &bookUC.Service{Repo: stub}}

	body := `{"title":"New Title"}`
	req := httptest.NewRequest(http.MethodPut, "/books/1", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}

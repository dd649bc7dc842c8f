package repository

import (
	"context"

	"bookshelf/internal/domain/entity"
)

// BookSearchFilters contains optional filters for book search
type BookSearchFilters struct {
	Author   *string // Optional: Filter by exact author name
	MinPrice *int64  // Optional: Filter books priced >= this amount (minor units)
	MaxPrice *int64  // Optional: Filter books priced <= this amount (minor units)
}

type BookRepository interface {
	List(ctx context.Context) ([]*entity.Book, error)
	// ListPaginated retrieves a page of books using LIMIT and OFFSET.
	// Parameters:
	//   - offset: Number of rows to skip (calculated from page number)
	//   - limit: Maximum number of rows to return
	// Returns books ordered by created_at DESC.
	ListPaginated(ctx context.Context, offset, limit int) ([]*entity.Book, error)
	// CountBooks returns the total number of books in the database.
	// This is used for calculating pagination metadata (total pages, etc.).
	CountBooks(ctx context.Context) (int64, error)
	Get(ctx context.Context, id int64) (*entity.Book, error)
	Search(ctx context.Context, keyword string) ([]*entity.Book, error)
	// SearchWithFilters searches books with multi-keyword AND logic across
	// title and author, plus optional filters.
	SearchWithFilters(ctx context.Context, keywords []string, filters BookSearchFilters) ([]*entity.Book, error)
	Create(ctx context.Context, book *entity.Book) error
	Update(ctx context.Context, book *entity.Book) error
	Delete(ctx context.Context, id int64) error
	// ExistsByTitleAuthor reports whether a book with the exact title and
	// author pair already exists. Used to keep seed imports idempotent.
	ExistsByTitleAuthor(ctx context.Context, title, author string) (bool, error)
}

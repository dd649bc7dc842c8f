package book

import (
	"context"
	"fmt"
	"time"

	"bookshelf/internal/common/pagination"
	"bookshelf/internal/domain/entity"
	"bookshelf/internal/repository"
)

// CreateInput represents the input parameters for creating a new book.
type CreateInput struct {
	Title  string
	Author string
	Price  int64
}

// UpdateInput represents the input parameters for updating an existing book.
// Fields with nil values will not be updated.
type UpdateInput struct {
	ID     int64
	Title  *string
	Author *string
	Price  *int64
}

// Service provides book management use cases.
// It handles business logic for book operations and delegates persistence to the repository.
// Events is optional; when set, lifecycle events are published after successful mutations.
type Service struct {
	Repo   repository.BookRepository
	Events EventPublisher
}

// PaginatedResult represents the result of a paginated query.
// It contains both the data and pagination metadata.
type PaginatedResult struct {
	Data       []*entity.Book
	Pagination pagination.Metadata
}

// List retrieves all books from the repository.
// Returns an error if the repository operation fails.
func (s *Service) List(ctx context.Context) ([]*entity.Book, error) {
	books, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// ListPaginated retrieves books with pagination support.
// It calculates the appropriate offset, retrieves the data and total count,
// and returns a PaginatedResult with both data and metadata.
func (s *Service) ListPaginated(ctx context.Context, params pagination.Params) (*PaginatedResult, error) {
	// Calculate offset using pagination utilities
	offset := pagination.CalculateOffset(params.Page, params.Limit)

	// Get total count for metadata
	total, err := s.Repo.CountBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}

	// Get paginated data
	books, err := s.Repo.ListPaginated(ctx, offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list books paginated: %w", err)
	}

	// Calculate total pages using pagination utilities
	totalPages := pagination.CalculateTotalPages(total, params.Limit)

	return &PaginatedResult{
		Data: books,
		Pagination: pagination.Metadata{
			Total:      total,
			Page:       params.Page,
			Limit:      params.Limit,
			TotalPages: totalPages,
		},
	}, nil
}

// Get retrieves a single book by its ID.
// Returns ErrInvalidBookID if the ID is not positive.
// Returns ErrBookNotFound if the book does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Book, error) {
	if id <= 0 {
		return nil, ErrInvalidBookID
	}

	book, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	return book, nil
}

// Search finds books matching the given keyword.
// The search is performed against book titles and author names.
// Returns an error if the repository operation fails.
func (s *Service) Search(ctx context.Context, kw string) ([]*entity.Book, error) {
	books, err := s.Repo.Search(ctx, kw)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return books, nil
}

// SearchWithFilters searches books with multi-keyword support and optional filters.
// Keywords are space-separated and use AND logic (all keywords must match).
// Filters are optional and applied if provided.
// Returns an error if the repository operation fails.
func (s *Service) SearchWithFilters(ctx context.Context, keywords []string, filters repository.BookSearchFilters) ([]*entity.Book, error) {
	books, err := s.Repo.SearchWithFilters(ctx, keywords, filters)
	if err != nil {
		return nil, fmt.Errorf("search books with filters: %w", err)
	}
	return books, nil
}

// Create creates a new book with the provided input.
// It validates all input fields and rejects duplicates by title and author.
// Returns the created book with its generated ID.
// Returns a ValidationError if any input field is invalid.
// Returns ErrDuplicateBook if a book with the same title and author exists.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Book, error) {
	if err := entity.ValidateTitle(in.Title); err != nil {
		return nil, err
	}
	if err := entity.ValidateAuthor(in.Author); err != nil {
		return nil, err
	}
	if err := entity.ValidatePrice(in.Price); err != nil {
		return nil, err
	}

	// 重複チェック
	exists, err := s.Repo.ExistsByTitleAuthor(ctx, in.Title, in.Author)
	if err != nil {
		return nil, fmt.Errorf("check duplicate book: %w", err)
	}
	if exists {
		return nil, ErrDuplicateBook
	}

	now := time.Now()
	b := &entity.Book{
		Title:     in.Title,
		Author:    in.Author,
		Price:     in.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	if s.Events != nil {
		s.Events.PublishEventAsync(ctx, entity.EventBookCreated, b)
	}
	return b, nil
}

// Update modifies an existing book with the provided input.
// Only non-nil fields in the input will be updated.
// Returns the updated book.
// Returns ErrInvalidBookID if the ID is not positive.
// Returns ErrBookNotFound if the book does not exist.
// Returns a ValidationError if any updated field is invalid.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.Book, error) {
	if in.ID <= 0 {
		return nil, ErrInvalidBookID
	}

	b, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if b == nil {
		return nil, ErrBookNotFound
	}

	if in.Title != nil {
		if err := entity.ValidateTitle(*in.Title); err != nil {
			return nil, err
		}
		b.Title = *in.Title
	}
	if in.Author != nil {
		if err := entity.ValidateAuthor(*in.Author); err != nil {
			return nil, err
		}
		b.Author = *in.Author
	}
	if in.Price != nil {
		if err := entity.ValidatePrice(*in.Price); err != nil {
			return nil, err
		}
		b.Price = *in.Price
	}

	b.UpdatedAt = time.Now()

	if err := s.Repo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	if s.Events != nil {
		s.Events.PublishEventAsync(ctx, entity.EventBookUpdated, b)
	}
	return b, nil
}

// Delete removes a book by its ID.
// Returns ErrInvalidBookID if the ID is not positive.
// Returns ErrBookNotFound if the book does not exist.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidBookID
	}

	// 削除イベントに書籍のスナップショットが必要なため先に取得する
	b, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get book: %w", err)
	}
	if b == nil {
		return ErrBookNotFound
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	if s.Events != nil {
		s.Events.PublishEventAsync(ctx, entity.EventBookDeleted, b)
	}
	return nil
}

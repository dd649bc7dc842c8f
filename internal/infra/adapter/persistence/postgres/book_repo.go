package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"bookshelf/internal/domain/entity"
	"bookshelf/internal/pkg/search"
	"bookshelf/internal/repository"
)

type BookRepo struct {
	db           *sql.DB
	queryBuilder *BookQueryBuilder
}

func NewBookRepo(db *sql.DB) repository.BookRepository {
	return &BookRepo{
		db:           db,
		queryBuilder: NewBookQueryBuilder(),
	}
}

func (repo *BookRepo) List(ctx context.Context) ([]*entity.Book, error) {
	const query = `
SELECT id, title, author, price, created_at, updated_at
FROM books
ORDER BY created_at DESC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	// パフォーマンス最適化: メモリ再割り当てを削減するため事前割り当て
	books := make([]*entity.Book, 0, 100)
	for rows.Next() {
		var book entity.Book
		if err := rows.Scan(&book.ID, &book.Title, &book.Author,
			&book.Price, &book.CreatedAt, &book.UpdatedAt); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		books = append(books, &book)
	}
	return books, rows.Err()
}

// ListPaginated retrieves a page of books ordered by creation time.
// Uses LIMIT and OFFSET for efficient pagination.
func (repo *BookRepo) ListPaginated(ctx context.Context, offset, limit int) ([]*entity.Book, error) {
	const query = `
SELECT id, title, author, price, created_at, updated_at
FROM books
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	rows, err := repo.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListPaginated: %w", err)
	}
	defer func() { _ = rows.Close() }()

	books := make([]*entity.Book, 0, limit)
	for rows.Next() {
		var book entity.Book
		if err := rows.Scan(&book.ID, &book.Title, &book.Author,
			&book.Price, &book.CreatedAt, &book.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ListPaginated: Scan: %w", err)
		}
		books = append(books, &book)
	}
	return books, rows.Err()
}

// CountBooks returns the total number of books in the database.
func (repo *BookRepo) CountBooks(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM books`
	var count int64
	err := repo.db.QueryRowContext(ctx, query).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("CountBooks: %w", err)
	}
	return count, nil
}

func (repo *BookRepo) Get(ctx context.Context, id int64) (*entity.Book, error) {
	const query = `
SELECT id, title, author, price, created_at, updated_at
FROM books
WHERE id = $1
LIMIT 1`
	var book entity.Book
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&book.ID, &book.Title, &book.Author, &book.Price,
			&book.CreatedAt, &book.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &book, nil
}

func (repo *BookRepo) Search(ctx context.Context, keyword string) ([]*entity.Book, error) {
	const query = `
SELECT id, title, author, price, created_at, updated_at
FROM books
WHERE title  ILIKE $1
   OR author ILIKE $1
ORDER BY created_at DESC`
	param := "%" + keyword + "%"
	rows, err := repo.db.QueryContext(ctx, query, param)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	defer func() { _ = rows.Close() }()

	// パフォーマンス最適化: メモリ再割り当てを削減するため事前割り当て
	books := make([]*entity.Book, 0, 100)
	for rows.Next() {
		var book entity.Book
		if err := rows.Scan(&book.ID, &book.Title, &book.Author,
			&book.Price, &book.CreatedAt, &book.UpdatedAt); err != nil {
			return nil, fmt.Errorf("Search: Scan: %w", err)
		}
		books = append(books, &book)
	}
	return books, rows.Err()
}

func (repo *BookRepo) SearchWithFilters(ctx context.Context, keywords []string, filters repository.BookSearchFilters) ([]*entity.Book, error) {
	// Check if there are any search criteria (keywords or filters)
	hasKeywords := len(keywords) > 0
	hasFilters := filters.Author != nil || filters.MinPrice != nil || filters.MaxPrice != nil

	// No keywords and no filters -> return empty result
	if !hasKeywords && !hasFilters {
		return []*entity.Book{}, nil
	}

	// Apply search timeout to prevent long-running queries
	ctx, cancel := context.WithTimeout(ctx, search.DefaultSearchTimeout)
	defer cancel()

	// Build WHERE clause using QueryBuilder
	whereClause, args := repo.queryBuilder.BuildWhereClause(keywords, filters)

	// Construct final query
	query := fmt.Sprintf(`
SELECT id, title, author, price, created_at, updated_at
FROM books
%s
ORDER BY created_at DESC`, whereClause)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("SearchWithFilters: %w", err)
	}
	defer func() { _ = rows.Close() }()

	books := make([]*entity.Book, 0, 100)
	for rows.Next() {
		var book entity.Book
		if err := rows.Scan(&book.ID, &book.Title, &book.Author,
			&book.Price, &book.CreatedAt, &book.UpdatedAt); err != nil {
			return nil, fmt.Errorf("SearchWithFilters: Scan: %w", err)
		}
		books = append(books, &book)
	}
	return books, rows.Err()
}

// Create inserts the book and fills in its generated ID.
func (repo *BookRepo) Create(ctx context.Context, book *entity.Book) error {
	const query = `
INSERT INTO books
       (title, author, price, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		book.Title, book.Author, book.Price,
		book.CreatedAt, book.UpdatedAt,
	).Scan(&book.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *BookRepo) Update(ctx context.Context, book *entity.Book) error {
	const query = `
UPDATE books SET
       title      = $1,
       author     = $2,
       price      = $3,
       updated_at = $4
WHERE id = $5`
	res, err := repo.db.ExecContext(ctx, query,
		book.Title, book.Author, book.Price,
		book.UpdatedAt, book.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: no rows affected")
	}
	return nil
}

func (repo *BookRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM books WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: no rows affected")
	}
	return nil
}

func (repo *BookRepo) ExistsByTitleAuthor(ctx context.Context, title, author string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM books WHERE title = $1 AND author = $2)`
	var existsFlag bool
	err := repo.db.QueryRowContext(ctx, query, title, author).Scan(&existsFlag)
	if err != nil {
		return false, fmt.Errorf("ExistsByTitleAuthor: %w", err)
	}
	return existsFlag, nil
}

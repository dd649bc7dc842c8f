// Package sqlite provides SQLite implementations of repository interfaces.
// It backs the local development mode where no PostgreSQL instance is available.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"bookshelf/internal/domain/entity"
	"bookshelf/internal/pkg/search"
	"bookshelf/internal/repository"
)

// BookRepo implements the BookRepository interface using SQLite.
type BookRepo struct {
	db           *sql.DB
	queryBuilder *BookQueryBuilder
}

// NewBookRepo creates a new SQLite-backed book repository.
func NewBookRepo(db *sql.DB) repository.BookRepository {
	return &BookRepo{
		db:           db,
		queryBuilder: NewBookQueryBuilder(),
	}
}

// List retrieves all books ordered by creation date (newest first).
func (repo *BookRepo) List(ctx context.Context) ([]*entity.Book, error) {
	const query = `
SELECT id, title, author, price, created_at, updated_at
FROM books
ORDER BY created_at DESC
`

	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	// パフォーマンス最適化: メモリ再割り当てを削減するため事前割り当て
	books := make([]*entity.Book, 0, 100)
	for rows.Next() {
		var book entity.Book
		err := rows.Scan(&book.ID,
			&book.Title, &book.Author, &book.Price,
			&book.CreatedAt, &book.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		books = append(books, &book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows.Err: %w", err)
	}

	return books, nil
}

// ListPaginated retrieves a page of books ordered by creation date.
func (repo *BookRepo) ListPaginated(ctx context.Context, offset, limit int) ([]*entity.Book, error) {
	const query = `
SELECT id, title, author, price, created_at, updated_at
FROM books
ORDER BY created_at DESC
LIMIT ? OFFSET ?
`

	rows, err := repo.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListPaginated: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	books := make([]*entity.Book, 0, limit)
	for rows.Next() {
		var book entity.Book
		err := rows.Scan(&book.ID,
			&book.Title, &book.Author, &book.Price,
			&book.CreatedAt, &book.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("ListPaginated: Scan: %w", err)
		}
		books = append(books, &book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListPaginated: rows.Err: %w", err)
	}

	return books, nil
}

// CountBooks returns the total number of books.
func (repo *BookRepo) CountBooks(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM books`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountBooks: %w", err)
	}
	return count, nil
}

func (repo *BookRepo) Get(ctx context.Context, id int64) (*entity.Book, error) {
	const query = `
SELECT id, title, author, price, created_at, updated_at
FROM books
WHERE id = ?
LIMIT 1
`
	var book entity.Book
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID, &book.Title, &book.Author, &book.Price,
		&book.CreatedAt, &book.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("Get: QueryRowContext: %w", err)
	}
	return &book, nil
}

func (repo *BookRepo) Search(ctx context.Context, keyword string) ([]*entity.Book, error) {
	const query = `
SELECT id, title, author, price, created_at, updated_at
FROM books
WHERE title  LIKE ?
OR author    LIKE ?
ORDER BY created_at DESC
`
	param := "%" + keyword + "%"
	rows, err := repo.db.QueryContext(ctx, query, param, param)
	if err != nil {
		return nil, fmt.Errorf("Search: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	// パフォーマンス最適化: メモリ再割り当てを削減するため事前割り当て
	books := make([]*entity.Book, 0, 100)
	for rows.Next() {
		var book entity.Book
		err := rows.Scan(&book.ID,
			&book.Title, &book.Author, &book.Price,
			&book.CreatedAt, &book.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("Search: Scan: %w", err)
		}
		books = append(books, &book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Search: rows.Err: %w", err)
	}

	return books, nil
}

// SearchWithFilters searches books with multi-keyword AND logic and optional filters.
// Note: SQLite uses LIKE instead of ILIKE (case-insensitive by default for ASCII).
func (repo *BookRepo) SearchWithFilters(ctx context.Context, keywords []string, filters repository.BookSearchFilters) ([]*entity.Book, error) {
	hasKeywords := len(keywords) > 0
	hasFilters := filters.Author != nil || filters.MinPrice != nil || filters.MaxPrice != nil

	// No keywords and no filters -> return empty result
	if !hasKeywords && !hasFilters {
		return []*entity.Book{}, nil
	}

	// Apply search timeout to prevent long-running queries
	ctx, cancel := context.WithTimeout(ctx, search.DefaultSearchTimeout)
	defer cancel()

	whereClause, args := repo.queryBuilder.BuildWhereClause(keywords, filters)

	query := `
SELECT id, title, author, price, created_at, updated_at
FROM books
` + whereClause + `
ORDER BY created_at DESC`

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("SearchWithFilters: %w", err)
	}
	defer func() { _ = rows.Close() }()

	// パフォーマンス最適化: メモリ再割り当てを削減するため事前割り当て
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
VALUES (?, ?, ?, ?, ?)
`
	res, err := repo.db.ExecContext(ctx, query,
		book.Title, book.Author, book.Price,
		book.CreatedAt, book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: ExecContext: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("Create: LastInsertId: %w", err)
	}
	book.ID = id
	return nil
}

func (repo *BookRepo) Update(ctx context.Context, book *entity.Book) error {
	const query = `
UPDATE books SET
	title      = ?,
	author     = ?,
	price      = ?,
	updated_at = ?
WHERE id = ?
`
	res, err := repo.db.ExecContext(ctx, query,
		book.Title, book.Author, book.Price,
		book.UpdatedAt, book.ID,
	)

	if err != nil {
		return fmt.Errorf("Update: ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update: RowsAffected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("Update: no rows affected")
	}
	return nil
}

func (repo *BookRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM books WHERE id = ?
`
	res, err := repo.db.ExecContext(ctx, query, id)

	if err != nil {
		return fmt.Errorf("Delete: ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: RowsAffected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("Delete: no rows affected")
	}
	return nil
}

func (repo *BookRepo) ExistsByTitleAuthor(ctx context.Context, title, author string) (bool, error) {
	const query = `SELECT 1 FROM books WHERE title = ? AND author = ? LIMIT 1`
	var existsFlag bool
	err := repo.db.QueryRowContext(ctx, query, title, author).Scan(&existsFlag)
	if err == sql.ErrNoRows {
		return false, nil // データが存在しない場合はエラーではない
	}
	if err != nil {
		return false, fmt.Errorf("ExistsByTitleAuthor: %w", err)
	}
	return true, nil
}

// Package fixtures provides reusable test data generators so test suites
// share consistent book content instead of each inventing its own.
package fixtures

import (
	"fmt"
	"time"

	"bookshelf/internal/domain/entity"
)

// BookOption customizes a generated book.
type BookOption func(*entity.Book)

// WithID sets the book ID.
func WithID(id int64) BookOption {
	return func(b *entity.Book) { b.ID = id }
}

// WithTitle sets the book title.
func WithTitle(title string) BookOption {
	return func(b *entity.Book) { b.Title = title }
}

// WithAuthor sets the book author.
func WithAuthor(author string) BookOption {
	return func(b *entity.Book) { b.Author = author }
}

// WithPrice sets the price in the minor currency unit.
func WithPrice(price int64) BookOption {
	return func(b *entity.Book) { b.Price = price }
}

// WithCreatedAt sets both CreatedAt and UpdatedAt.
func WithCreatedAt(t time.Time) BookOption {
	return func(b *entity.Book) {
		b.CreatedAt = t
		b.UpdatedAt = t
	}
}

// NewBook generates a valid book with sensible defaults, customized by the
// given options.
//
// Example:
//
//	book := fixtures.NewBook(fixtures.WithTitle("Refactoring"), fixtures.WithPrice(4800))
func NewBook(opts ...BookOption) *entity.Book {
	now := time.Now().UTC().Truncate(time.Second)
	book := &entity.Book{
		ID:        1,
		Title:     "The Go Programming Language",
		Author:    "Alan A. A. Donovan",
		Price:     3800,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(book)
	}
	return book
}

// NewBookList generates n distinct books with sequential IDs starting at 1.
// Creation times step backwards one hour per book so ordering by recency is
// deterministic. Options apply to every generated book after the defaults.
func NewBookList(n int, opts ...BookOption) []*entity.Book {
	now := time.Now().UTC().Truncate(time.Second)
	books := make([]*entity.Book, 0, n)
	for i := 0; i < n; i++ {
		book := NewBook(
			WithID(int64(i+1)),
			WithTitle(fmt.Sprintf("Book %d", i+1)),
			WithAuthor(fmt.Sprintf("Author %d", i+1)),
			WithPrice(int64(1000+i*100)),
			WithCreatedAt(now.Add(-time.Duration(i)*time.Hour)),
		)
		for _, opt := range opts {
			opt(book)
		}
		books = append(books, book)
	}
	return books
}

package entity

import "fmt"

// Field length and value bounds for book validation.
const (
	maxTitleLength  = 500
	maxAuthorLength = 255
	maxPrice        = 10_000_000
)

// ValidateTitle validates a book title.
// Titles are required and bounded to prevent oversized rows and payloads.
func ValidateTitle(title string) error {
	if title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if len(title) > maxTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title must not exceed %d characters", maxTitleLength),
		}
	}
	return nil
}

// ValidateAuthor validates a book author name.
func ValidateAuthor(author string) error {
	if author == "" {
		return &ValidationError{Field: "author", Message: "author is required"}
	}
	if len(author) > maxAuthorLength {
		return &ValidationError{
			Field:   "author",
			Message: fmt.Sprintf("author must not exceed %d characters", maxAuthorLength),
		}
	}
	return nil
}

// ValidatePrice validates a book price in the minor currency unit.
// Negative prices are rejected; the upper bound guards against unit mistakes
// (e.g. submitting a price in the wrong currency scale).
func ValidatePrice(price int64) error {
	if price < 0 {
		return &ValidationError{Field: "price", Message: "price must not be negative"}
	}
	if price > maxPrice {
		return &ValidationError{
			Field:   "price",
			Message: fmt.Sprintf("price must not exceed %d", maxPrice),
		}
	}
	return nil
}

// ValidateBook runs all field validations and returns the first violation.
func ValidateBook(book *Book) error {
	if book == nil {
		return ErrInvalidInput
	}
	if err := ValidateTitle(book.Title); err != nil {
		return err
	}
	if err := ValidateAuthor(book.Author); err != nil {
		return err
	}
	return ValidatePrice(book.Price)
}

// Package book provides use cases for managing book entities.
// It implements business logic for creating, updating, deleting, and querying books,
// including validation, duplicate detection, and interaction with the book repository.
// Successful mutations publish lifecycle events through the configured event hook.
package book

import "errors"

// Sentinel errors for book use case operations.
var (
	// ErrBookNotFound indicates that the requested book was not found.
	// This error is typically returned when attempting to retrieve or update
	// a book that does not exist in the repository.
	ErrBookNotFound = errors.New("book not found")

	// ErrInvalidBookID indicates that the provided book ID is invalid.
	// Book IDs must be positive integers.
	ErrInvalidBookID = errors.New("invalid book ID")

	// ErrDuplicateBook indicates that a book with the same title and author
	// already exists. This prevents duplicate catalog entries.
	ErrDuplicateBook = errors.New("book with this title and author already exists")
)

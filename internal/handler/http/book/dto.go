// Package book provides HTTP handlers for book-related endpoints.
// It includes handlers for creating, listing, searching, updating, and deleting books.
package book

import (
	"time"

	"bookshelf/internal/domain/entity"
)

// DTO represents the JSON structure for book data transfer.
type DTO struct {
	ID        int64     `json:"id" example:"1"`
	Title     string    `json:"title" example:"Go言語による並行処理"`
	Author    string    `json:"author" example:"Katherine Cox-Buday"`
	Price     int64     `json:"price" example:"3080"`
	CreatedAt time.Time `json:"created_at" example:"2025-10-26T12:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2025-10-26T12:00:00Z"`
}

// toDTO converts a book entity into its transfer representation.
func toDTO(b *entity.Book) DTO {
	return DTO{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Price:     b.Price,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

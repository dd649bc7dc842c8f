package entity

import (
	"time"

	"github.com/google/uuid"
)

// Event types published on book lifecycle changes.
const (
	EventBookCreated = "book.created"
	EventBookUpdated = "book.updated"
	EventBookDeleted = "book.deleted"
	EventBookDigest  = "book.digest"
	// EventBookDigestEntry re-announces one sampled book during a digest run.
	EventBookDigestEntry = "book.digest.entry"
)

// BookEvent is the payload published to the message broker when a book
// changes or when the digest worker summarizes recent activity.
// It is serialized as JSON; consumers rely on the field names below.
type BookEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	BookID     int64     `json:"book_id,omitempty"`
	Title      string    `json:"title,omitempty"`
	Author     string    `json:"author,omitempty"`
	Price      int64     `json:"price,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewBookEvent builds an event of the given type from a book snapshot.
// The event ID is a fresh UUID and OccurredAt is set to the current time.
func NewBookEvent(eventType string, book *Book) BookEvent {
	ev := BookEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
	}
	if book != nil {
		ev.BookID = book.ID
		ev.Title = book.Title
		ev.Author = book.Author
		ev.Price = book.Price
	}
	return ev
}

// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Book and BookEvent, along with
// their validation rules and domain-specific errors.
package entity

import "time"

// Book represents a catalog entry in the system.
// Price is an integer amount in the minor currency unit (e.g. cents, yen).
type Book struct {
	ID        int64
	Title     string
	Author    string
	Price     int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

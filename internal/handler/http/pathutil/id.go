// Package pathutil provides helpers for working with URL paths: extracting
// resource IDs and normalizing dynamic paths for metrics labels.
package pathutil

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ExtractID strips the prefix from the path and parses the remainder as a
// positive int64 ID.
//
// Example:
//
//	id, err := ExtractID("/books/123", "/books/")
//	// Returns: 123, nil
func ExtractID(path, prefix string) (int64, error) {
	idStr := strings.TrimPrefix(path, prefix)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// Package search provides keyword parsing and SQL pattern escaping shared
// by the search handlers and the persistence adapters.
package search

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultMaxKeywordCount caps the number of keywords per search.
	DefaultMaxKeywordCount = 5

	// DefaultMaxKeywordLength caps the length of a single keyword.
	DefaultMaxKeywordLength = 100

	// DefaultSearchTimeout bounds a single search query against the database.
	DefaultSearchTimeout = 5 * time.Second
)

// ParseKeywords splits a raw query string into keywords on whitespace and
// validates them against the given limits. Consecutive spaces are collapsed;
// an input of only whitespace yields an error.
func ParseKeywords(raw string, maxCount, maxLength int) ([]string, error) {
	keywords := strings.Fields(raw)
	if len(keywords) == 0 {
		return nil, fmt.Errorf("no keywords provided")
	}
	if len(keywords) > maxCount {
		return nil, fmt.Errorf("too many keywords: %d (max %d)", len(keywords), maxCount)
	}
	for _, kw := range keywords {
		if len(kw) > maxLength {
			return nil, fmt.Errorf("keyword too long: %d characters (max %d)", len(kw), maxLength)
		}
	}
	return keywords, nil
}

// Package sqlite provides SQLite implementations of repository interfaces.
package sqlite

import (
	"strings"

	"bookshelf/internal/repository"
)

// BookQueryBuilder builds WHERE clauses for book search.
// This builder is shared between COUNT and SELECT queries to eliminate duplication.
type BookQueryBuilder struct{}

// NewBookQueryBuilder creates a new query builder instance.
func NewBookQueryBuilder() *BookQueryBuilder {
	return &BookQueryBuilder{}
}

// BuildWhereClause builds WHERE clause and arguments for book search.
// It supports multi-keyword AND logic and optional filters (author, price range).
// Returns empty string if no conditions are provided.
func (qb *BookQueryBuilder) BuildWhereClause(keywords []string, filters repository.BookSearchFilters) (clause string, args []interface{}) {
	var conditions []string

	// Add keyword conditions (multi-keyword AND logic)
	// Each keyword searches in both title and author
	for _, keyword := range keywords {
		likePattern := "%" + keyword + "%"
		conditions = append(conditions, "(title LIKE ? OR author LIKE ?)")
		args = append(args, likePattern, likePattern)
	}

	// Add author filter (exact match)
	if filters.Author != nil {
		conditions = append(conditions, "author = ?")
		args = append(args, *filters.Author)
	}

	// Add price range filters
	if filters.MinPrice != nil {
		conditions = append(conditions, "price >= ?")
		args = append(args, *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		conditions = append(conditions, "price <= ?")
		args = append(args, *filters.MaxPrice)
	}

	// Return empty if no conditions
	if len(conditions) == 0 {
		return "", args
	}

	// Join all conditions with AND
	return "WHERE " + strings.Join(conditions, " AND "), args
}

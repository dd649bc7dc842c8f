// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"

	"bookshelf/internal/pkg/search"
	"bookshelf/internal/repository"
)

// BookQueryBuilder builds WHERE clauses for book search in PostgreSQL.
// This builder is shared between COUNT and SELECT queries to eliminate duplication.
// It uses PostgreSQL-specific features like ILIKE and numbered placeholders ($1, $2, etc.).
type BookQueryBuilder struct{}

// NewBookQueryBuilder creates a new query builder instance.
func NewBookQueryBuilder() *BookQueryBuilder {
	return &BookQueryBuilder{}
}

// BuildWhereClause builds WHERE clause and arguments for book search.
// It supports multi-keyword AND logic and optional filters (author, price range).
// Returns empty string if no conditions are provided.
// PostgreSQL-specific: Uses ILIKE for case-insensitive search and $N placeholders.
func (qb *BookQueryBuilder) BuildWhereClause(keywords []string, filters repository.BookSearchFilters) (clause string, args []interface{}) {
	var conditions []string
	paramIndex := 1

	// Add keyword conditions (multi-keyword AND logic)
	// Each keyword searches in both title and author using ILIKE (case-insensitive)
	for _, keyword := range keywords {
		// Escape special characters for ILIKE
		escapedKeyword := search.EscapeILIKE(keyword)

		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR author ILIKE $%d)", paramIndex, paramIndex))
		args = append(args, escapedKeyword)
		paramIndex++
	}

	// Add author filter (exact match)
	if filters.Author != nil {
		conditions = append(conditions, fmt.Sprintf("author = $%d", paramIndex))
		args = append(args, *filters.Author)
		paramIndex++
	}

	// Add price range filters
	if filters.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price >= $%d", paramIndex))
		args = append(args, *filters.MinPrice)
		paramIndex++
	}
	if filters.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price <= $%d", paramIndex))
		args = append(args, *filters.MaxPrice)
	}

	// Return empty if no conditions
	if len(conditions) == 0 {
		return "", args
	}

	// Join all conditions with AND
	return "WHERE " + strings.Join(conditions, " AND "), args
}

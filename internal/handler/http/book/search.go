package book

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"bookshelf/internal/handler/http/respond"
	"bookshelf/internal/pkg/search"
	"bookshelf/internal/repository"
	bookUC "bookshelf/internal/usecase/book"
)

type SearchHandler struct{ Svc *bookUC.Service }

// ServeHTTP 書籍検索
// @Summary      書籍検索
// @Description  マルチキーワードで書籍を検索します（AND論理）
// @Tags         books
// @Produce      json
// @Param        keyword query string true "検索キーワード（スペース区切り）"
// @Param        author query string false "著者名でフィルタ（完全一致）"
// @Param        min_price query int false "価格の下限（最小通貨単位）"
// @Param        max_price query int false "価格の上限（最小通貨単位）"
// @Success      200 {array} DTO "検索結果" headers(X-RateLimit-Limit=integer,X-RateLimit-Remaining=integer,X-RateLimit-Reset=integer)
// @Failure      400 {string} string "Bad request"
// @Failure      429 {string} string "Too many requests - rate limit exceeded" headers(X-RateLimit-Limit=integer,X-RateLimit-Remaining=integer,X-RateLimit-Reset=integer,Retry-After=integer)
// @Failure      500 {string} string "Server error"
// @Router       /books/search [get]
func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Parse keyword parameter (required)
	kw := r.URL.Query().Get("keyword")
	if kw == "" {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("keyword query param required"))
		return
	}

	// Parse and validate keywords
	keywords, err := search.ParseKeywords(kw, search.DefaultMaxKeywordCount, search.DefaultMaxKeywordLength)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest,
			fmt.Errorf("invalid keyword: %w", err))
		return
	}

	// Build filters
	var filters repository.BookSearchFilters

	// Parse author if provided
	if author := r.URL.Query().Get("author"); author != "" {
		filters.Author = &author
	}

	// Parse min_price if provided
	if minStr := r.URL.Query().Get("min_price"); minStr != "" {
		minPrice, err := strconv.ParseInt(minStr, 10, 64)
		if err != nil {
			respond.SafeError(w, http.StatusBadRequest,
				errors.New("invalid min_price: must be a valid integer"))
			return
		}
		if minPrice < 0 {
			respond.SafeError(w, http.StatusBadRequest,
				errors.New("invalid min_price: must not be negative"))
			return
		}
		filters.MinPrice = &minPrice
	}

	// Parse max_price if provided
	if maxStr := r.URL.Query().Get("max_price"); maxStr != "" {
		maxPrice, err := strconv.ParseInt(maxStr, 10, 64)
		if err != nil {
			respond.SafeError(w, http.StatusBadRequest,
				errors.New("invalid max_price: must be a valid integer"))
			return
		}
		if maxPrice < 0 {
			respond.SafeError(w, http.StatusBadRequest,
				errors.New("invalid max_price: must not be negative"))
			return
		}
		filters.MaxPrice = &maxPrice
	}

	// Validate price range: min <= max
	if filters.MinPrice != nil && filters.MaxPrice != nil {
		if *filters.MinPrice > *filters.MaxPrice {
			respond.SafeError(w, http.StatusBadRequest,
				errors.New("invalid price range: min_price must be less than or equal to max_price"))
			return
		}
	}

	// Execute search with filters
	list, err := h.Svc.SearchWithFilters(r.Context(), keywords, filters)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	// Convert to DTO
	out := make([]DTO, 0, len(list))
	for _, b := range list {
		out = append(out, toDTO(b))
	}
	respond.JSON(w, http.StatusOK, out)
}

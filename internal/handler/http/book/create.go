package book

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookshelf/internal/domain/entity"
	"bookshelf/internal/handler/http/respond"
	bookUC "bookshelf/internal/usecase/book"
)

type CreateHandler struct{ Svc *bookUC.Service }

// ServeHTTP 書籍作成
// @Summary      書籍作成
// @Description  新しい書籍を登録します
// @Tags         books
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        book body object true "書籍情報"
// @Success      201 {object} DTO "作成された書籍"
// @Header       201 {integer} X-RateLimit-Limit "Maximum number of requests allowed in the current window"
// @Header       201 {integer} X-RateLimit-Remaining "Number of requests remaining in the current window"
// @Header       201 {integer} X-RateLimit-Reset "Unix timestamp when the rate limit window resets"
// @Failure      400 {string} string "Bad request - invalid input"
// @Failure      401 {string} string "Authentication required - missing or invalid JWT token"
// @Failure      403 {string} string "Forbidden - admin role required"
// @Failure      409 {string} string "Conflict - book already exists"
// @Failure      429 {string} string "Too many requests - rate limit exceeded"
// @Header       429 {integer} X-RateLimit-Limit "Maximum number of requests allowed in the current window"
// @Header       429 {integer} X-RateLimit-Remaining "Number of requests remaining (should be 0)"
// @Header       429 {integer} X-RateLimit-Reset "Unix timestamp when the rate limit window resets"
// @Header       429 {integer} Retry-After "Seconds until the client should retry"
// @Router       /books [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title  string `json:"title"`
		Author string `json:"author"`
		Price  int64  `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Title == "" || req.Author == "" {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("title, author are required"))
		return
	}

	b, err := h.Svc.Create(r.Context(), bookUC.CreateInput{
		Title:  req.Title,
		Author: req.Author,
		Price:  req.Price,
	})
	if err != nil {
		code := http.StatusInternalServerError
		var vErr *entity.ValidationError
		if errors.Is(err, bookUC.ErrDuplicateBook) {
			code = http.StatusConflict
		} else if errors.As(err, &vErr) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toDTO(b))
}

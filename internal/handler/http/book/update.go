package book

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookshelf/internal/domain/entity"
	"bookshelf/internal/handler/http/pathutil"
	"bookshelf/internal/handler/http/respond"
	bookUC "bookshelf/internal/usecase/book"
)

type UpdateHandler struct{ Svc *bookUC.Service }

// ServeHTTP 書籍更新
// @Summary      書籍更新
// @Description  既存の書籍を更新します。指定されたフィールドのみ変更されます。
// @Tags         books
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "書籍ID"
// @Param        book body object true "更新する書籍情報"
// @Success      200 {object} DTO "更新後の書籍"
// @Failure      400 {string} string "Bad request - invalid input"
// @Failure      401 {string} string "Authentication required - missing or invalid JWT token"
// @Failure      403 {string} string "Forbidden - admin role required"
// @Failure      404 {string} string "Not found - book not found"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /books/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/books/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Title  *string `json:"title"`
		Author *string `json:"author"`
		Price  *int64  `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	b, err := h.Svc.Update(r.Context(), bookUC.UpdateInput{
		ID:     id,
		Title:  req.Title,
		Author: req.Author,
		Price:  req.Price,
	})
	if err != nil {
		code := http.StatusInternalServerError
		var vErr *entity.ValidationError
		if errors.Is(err, bookUC.ErrBookNotFound) {
			code = http.StatusNotFound
		} else if errors.Is(err, bookUC.ErrInvalidBookID) || errors.As(err, &vErr) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(b))
}

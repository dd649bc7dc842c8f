package book

import (
	"errors"
	"net/http"

	"bookshelf/internal/handler/http/pathutil"
	"bookshelf/internal/handler/http/respond"
	bookUC "bookshelf/internal/usecase/book"
)

type GetHandler struct{ Svc *bookUC.Service }

// ServeHTTP 書籍詳細取得
// @Summary      書籍詳細取得
// @Description  指定されたIDの書籍を取得します
// @Tags         books
// @Produce      json
// @Param        id path int true "書籍ID"
// @Success      200 {object} DTO "書籍詳細" headers(X-RateLimit-Limit=integer,X-RateLimit-Remaining=integer,X-RateLimit-Reset=integer)
// @Failure      400 {string} string "Bad request - invalid book ID"
// @Failure      404 {string} string "Not found - book not found"
// @Failure      429 {string} string "Too many requests - rate limit exceeded" headers(X-RateLimit-Limit=integer,X-RateLimit-Remaining=integer,X-RateLimit-Reset=integer,Retry-After=integer)
// @Failure      500 {string} string "サーバーエラー"
// @Router       /books/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/books/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	b, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, bookUC.ErrInvalidBookID) {
			code = http.StatusBadRequest
		} else if errors.Is(err, bookUC.ErrBookNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(b))
}

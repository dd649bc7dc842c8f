package book

import (
	"errors"
	"net/http"

	"bookshelf/internal/handler/http/pathutil"
	"bookshelf/internal/handler/http/respond"
	bookUC "bookshelf/internal/usecase/book"
)

type DeleteHandler struct{ Svc *bookUC.Service }

// ServeHTTP 書籍削除
// @Summary      書籍削除
// @Description  書籍を削除します
// @Tags         books
// @Security     BearerAuth
// @Param        id path int true "書籍ID"
// @Success      204 "No Content"
// @Failure      400 {string} string "Bad request - invalid ID"
// @Failure      401 {string} string "Authentication required - missing or invalid JWT token"
// @Failure      403 {string} string "Forbidden - admin role required"
// @Failure      404 {string} string "Not found - book not found"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /books/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/books/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, bookUC.ErrInvalidBookID) {
			code = http.StatusBadRequest
		} else if errors.Is(err, bookUC.ErrBookNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

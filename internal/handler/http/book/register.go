package book

import (
	"log/slog"
	"net/http"

	"bookshelf/internal/common/pagination"
	"bookshelf/internal/handler/http/auth"
	bookUC "bookshelf/internal/usecase/book"
)

// Register registers all book-related HTTP handlers with the given mux.
// It sets up routes for listing, searching, creating, updating, and deleting books.
// Read routes are public; mutating routes require authentication via the auth
// middleware.
func Register(mux *http.ServeMux, svc *bookUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET    /books", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET    /books/search", SearchHandler{svc})
	mux.Handle("GET    /books/", GetHandler{svc})

	mux.Handle("POST   /books", auth.Authz(CreateHandler{svc}))
	mux.Handle("PUT    /books/", auth.Authz(UpdateHandler{svc}))
	mux.Handle("DELETE /books/", auth.Authz(DeleteHandler{svc}))
}

package http

import (
	"net/http"
)

type Handlers struct {
	Books        *BookHandler
	Authors      *AuthorHandler
	Reviews      *ReviewHandler
	ReadingLists *ReadingListHandler
}

// NewRouter registers the catalogue routes on a fresh mux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /books", h.Books.List)
	mux.HandleFunc("GET /books/random", h.Books.Random)
	mux.HandleFunc("GET /books/{id}", h.Books.Get)
	mux.HandleFunc("GET /books/{id}/reviews", h.Reviews.List)
	mux.HandleFunc("POST /books/{id}/reviews", h.Reviews.Create)

	mux.HandleFunc("GET /authors", h.Authors.List)
	mux.HandleFunc("GET /authors/{id}", h.Authors.Get)
	mux.HandleFunc("GET /authors/{id}/books", h.Authors.Books)

	mux.HandleFunc("GET /publishers/{name}/books", h.Books.ByPublisher)
	mux.HandleFunc("GET /years/{year}/books", h.Books.ByReleaseYear)

	mux.HandleFunc("PUT /users/{name}/reading-list", h.ReadingLists.Put)
	mux.HandleFunc("GET /users/{name}/reading-list", h.ReadingLists.List)

	return mux
}

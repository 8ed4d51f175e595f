package http

import (
	"net/http"

	"bookcatalog/internal/httpx"
	"bookcatalog/internal/usecase"
)

type AuthorHandler struct {
	authors *usecase.Authors
	books   *usecase.Books
}

func NewAuthorHandler(authors *usecase.Authors, books *usecase.Books) *AuthorHandler {
	return &AuthorHandler{authors: authors, books: books}
}

func (h *AuthorHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	result, err := h.authors.Page(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items := make([]AuthorResponse, 0, len(result.Items))
	for _, a := range result.Items {
		items = append(items, toAuthorResponse(a))
	}
	httpx.JSONSuccessWithRequest(r, w, items,
		pageMeta(result.Page, result.PageSize, result.Total, result.TotalPages()))
}

func (h *AuthorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	author, err := h.authors.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, toAuthorResponse(author), nil)
}

// Books lists the books written by the author, ordered by book id.
func (h *AuthorHandler) Books(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	if _, err := h.authors.Get(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	books, err := h.books.ByAuthor(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, toBookResponses(books), map[string]any{"count": len(books)})
}

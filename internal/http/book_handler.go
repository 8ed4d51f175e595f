package http

import (
	"net/http"

	"bookcatalog/internal/httpx"
	"bookcatalog/internal/usecase"
)

type BookHandler struct {
	books         *usecase.Books
	defaultRandom int
}

func NewBookHandler(books *usecase.Books, defaultRandom int) *BookHandler {
	return &BookHandler{books: books, defaultRandom: defaultRandom}
}

// List godoc
// @Summary List books
// @Description Returns one page of the catalogue ordered by book id
// @Param page query int false "Page number (default 1)"
// @Router /books [get]
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	result, err := h.books.Page(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.JSONSuccessWithRequest(r, w, toBookResponses(result.Items),
		pageMeta(result.Page, result.PageSize, result.Total, result.TotalPages()))
}

// Get godoc
// @Summary Get a book
// @Param id path int true "Book ID"
// @Router /books/{id} [get]
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	book, err := h.books.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.JSONSuccessWithRequest(r, w, toBookResponse(book), nil)
}

// Random godoc
// @Summary Sample distinct books
// @Param n query int false "Number of books"
// @Router /books/random [get]
func (h *BookHandler) Random(w http.ResponseWriter, r *http.Request) {
	n, err := queryInt(r, "n", h.defaultRandom)
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	books, err := h.books.Random(r.Context(), n)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.JSONSuccessWithRequest(r, w, toBookResponses(books), map[string]any{"count": len(books)})
}

// ByPublisher godoc
// @Summary List books of a publisher
// @Param name path string true "Publisher name"
// @Router /publishers/{name}/books [get]
func (h *BookHandler) ByPublisher(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.ByPublisher(r.Context(), r.PathValue("name"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, toBookResponses(books), map[string]any{"count": len(books)})
}

// ByReleaseYear godoc
// @Summary List books released in a year
// @Param year path int true "Release year"
// @Router /years/{year}/books [get]
func (h *BookHandler) ByReleaseYear(w http.ResponseWriter, r *http.Request) {
	year, err := pathInt(r, "year")
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	books, err := h.books.ByReleaseYear(r.Context(), year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, toBookResponses(books), map[string]any{"count": len(books)})
}

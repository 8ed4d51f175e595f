package http

import (
	"encoding/json"
	"net/http"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/usecase"
)

type ReadingListHandler struct {
	lists *usecase.ReadingLists
}

func NewReadingListHandler(lists *usecase.ReadingLists) *ReadingListHandler {
	return &ReadingListHandler{lists: lists}
}

// Put godoc
// @Summary Put a book on one of the user's shelves
// @Description Creates the entry, or moves the book when it already sits on another shelf
// @Param name path string true "User name"
// @Param request body ReadingListRequest true "Shelf entry"
// @Router /users/{name}/reading-list [put]
func (h *ReadingListHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req ReadingListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "Invalid JSON body")
		return
	}
	if details := ValidateStruct(req); details != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "validation_error", "Invalid reading list entry", details)
		return
	}

	shelf, err := entity.ParseShelf(req.Shelf)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entry, outcome, err := h.lists.AddBookToUser(r.Context(), r.PathValue("name"), *req.BookID, shelf)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := ReadingListResponse{
		UserName: entry.User().Name(),
		BookID:   entry.Book().ID(),
		Shelf:    string(entry.Shelf()),
		Outcome:  outcome.String(),
	}
	if outcome == usecase.Created {
		httpx.JSONSuccessCreatedWithRequest(r, w, resp)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, resp, nil)
}

// List godoc
// @Summary List the books on one of the user's shelves
// @Param name path string true "User name"
// @Param shelf query string true "Shelf label"
// @Router /users/{name}/reading-list [get]
func (h *ReadingListHandler) List(w http.ResponseWriter, r *http.Request) {
	shelf, err := entity.ParseShelf(r.URL.Query().Get("shelf"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	books, err := h.lists.BooksOnShelf(r.Context(), r.PathValue("name"), shelf)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, toBookResponses(books),
		map[string]any{"count": len(books), "shelf": string(shelf)})
}

package http

import (
	"encoding/json"
	"net/http"

	"bookcatalog/internal/httpx"
	"bookcatalog/internal/usecase"
)

type ReviewHandler struct {
	reviews *usecase.Reviews
}

func NewReviewHandler(reviews *usecase.Reviews) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// List godoc
// @Summary List reviews of a book
// @Param id path int true "Book ID"
// @Router /books/{id}/reviews [get]
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	bookID, err := pathInt(r, "id")
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	reviews, err := h.reviews.ForBook(r.Context(), bookID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items := make([]ReviewResponse, 0, len(reviews))
	for _, rv := range reviews {
		items = append(items, toReviewResponse(rv))
	}
	httpx.JSONSuccessWithRequest(r, w, items, map[string]any{"count": len(items)})
}

// Create godoc
// @Summary Review a book
// @Param id path int true "Book ID"
// @Param request body AddReviewRequest true "Review"
// @Router /books/{id}/reviews [post]
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	bookID, err := pathInt(r, "id")
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	var req AddReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "Invalid JSON body")
		return
	}
	if details := ValidateStruct(req); details != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "validation_error", "Invalid review", details)
		return
	}

	review, err := h.reviews.Add(r.Context(), bookID, req.UserName, req.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONSuccessCreatedWithRequest(r, w, toReviewResponse(review))
}

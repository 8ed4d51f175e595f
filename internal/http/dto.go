package http

import (
	"time"

	"bookcatalog/internal/entity"
)

type AuthorSummary struct {
	ID       int    `json:"author_id"`
	FullName string `json:"full_name"`
}

type AuthorResponse struct {
	ID               int     `json:"author_id"`
	FullName         string  `json:"full_name"`
	AverageRating    float64 `json:"average_rating"`
	TextReviewsCount int     `json:"text_reviews_count"`
	RatingsCount     int     `json:"ratings_count"`
}

type BookResponse struct {
	ID               int             `json:"book_id"`
	Title            string          `json:"title"`
	Description      string          `json:"description,omitempty"`
	Publisher        string          `json:"publisher,omitempty"`
	Authors          []AuthorSummary `json:"authors"`
	ReleaseYear      *int            `json:"release_year,omitempty"`
	Ebook            *bool           `json:"ebook,omitempty"`
	NumPages         *int            `json:"num_pages,omitempty"`
	ImageURL         string          `json:"image_url,omitempty"`
	ISBN             string          `json:"isbn,omitempty"`
	Link             string          `json:"link,omitempty"`
	RatingsCount     *int            `json:"ratings_count,omitempty"`
	AverageRating    *float64        `json:"average_rating,omitempty"`
	TextReviewsCount *int            `json:"text_reviews_count,omitempty"`
}

type ReviewResponse struct {
	BookID    int       `json:"book_id"`
	UserName  string    `json:"user_name"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type ReadingListResponse struct {
	UserName string `json:"user_name"`
	BookID   int    `json:"book_id"`
	Shelf    string `json:"shelf"`
	Outcome  string `json:"outcome,omitempty"`
}

type AddReviewRequest struct {
	UserName string `json:"user_name" validate:"required,notblank,max=255"`
	Text     string `json:"text" validate:"required,notblank,max=2000"`
}

type ReadingListRequest struct {
	BookID *int   `json:"book_id" validate:"required,gte=0"`
	Shelf  string `json:"shelf" validate:"required,shelf"`
}

func toBookResponse(b *entity.Book) BookResponse {
	resp := BookResponse{
		ID:               b.ID(),
		Title:            b.Title(),
		Description:      b.Description(),
		Authors:          make([]AuthorSummary, 0, len(b.Authors())),
		ReleaseYear:      b.ReleaseYear(),
		Ebook:            b.Ebook(),
		NumPages:         b.NumPages(),
		ImageURL:         b.ImageURL(),
		ISBN:             b.ISBN(),
		Link:             b.Link(),
		RatingsCount:     b.RatingsCount(),
		AverageRating:    b.AverageRating(),
		TextReviewsCount: b.TextReviewsCount(),
	}
	if p := b.Publisher(); p != nil {
		resp.Publisher = p.Name()
	}
	for _, a := range b.Authors() {
		resp.Authors = append(resp.Authors, AuthorSummary{ID: a.ID(), FullName: a.FullName()})
	}
	return resp
}

func toBookResponses(books []*entity.Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, toBookResponse(b))
	}
	return out
}

func toAuthorResponse(a *entity.Author) AuthorResponse {
	return AuthorResponse{
		ID:               a.ID(),
		FullName:         a.FullName(),
		AverageRating:    a.AverageRating(),
		TextReviewsCount: a.TextReviewsCount(),
		RatingsCount:     a.RatingsCount(),
	}
}

func toReviewResponse(r *entity.Review) ReviewResponse {
	return ReviewResponse{
		BookID:    r.Book().ID(),
		UserName:  r.User().Name(),
		Text:      r.Text(),
		Timestamp: r.Timestamp(),
	}
}

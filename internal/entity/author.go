package entity

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Author struct {
	id               int
	fullName         string
	averageRating    float64
	textReviewsCount int
	ratingsCount     int
	bookIDs          []int
}

// NewAuthor validates the id and the trimmed full name.
func NewAuthor(id int, fullName string) (*Author, error) {
	if err := validation.Validate(id, validation.Min(0)); err != nil {
		return nil, invalid("author id", err)
	}
	a := &Author{id: id}
	if err := a.SetFullName(fullName); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Author) ID() int { return a.id }
func (a *Author) FullName() string { return a.fullName }
func (a *Author) AverageRating() float64 { return a.averageRating }
func (a *Author) TextReviewsCount() int { return a.textReviewsCount }
func (a *Author) RatingsCount() int { return a.ratingsCount }
func (a *Author) BookIDs() []int { return slices.Clone(a.bookIDs) }
func (a *Author) SetAverageRating(v float64) { a.averageRating = v }
func (a *Author) SetTextReviewsCount(n int) { a.textReviewsCount = n }
func (a *Author) SetRatingsCount(n int) { a.ratingsCount = n }

func (a *Author) SetFullName(name string) error {
	name = strings.TrimSpace(name)
	if err := validation.Validate(name, validation.Required); err != nil {
		return invalid("author full name", err)
	}
	a.fullName = name
	return nil
}

// AddBook records a book written by this author. The list is informational
// and is not consulted by repository lookups.
func (a *Author) AddBook(bookID int) {
	a.bookIDs = appendUnique(a.bookIDs, bookID)
}

func (a *Author) String() string {
	return fmt.Sprintf("<Author %s, author id = %d>", a.fullName, a.id)
}

func CompareAuthors(a, b *Author) int {
	return cmp.Compare(a.id, b.id)
}

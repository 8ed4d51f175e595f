package entity

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Book is identified by its id. Optional attributes are nil (or the empty
// string) until set.
type Book struct {
	id          int
	title       string
	description string
	publisher   *Publisher
	authors     []*Author

	releaseYear *int
	ebook       *bool
	numPages    *int

	imageURL string
	isbn     string
	link     string

	ratingsCount     *int
	averageRating    *float64
	textReviewsCount *int
}

func NewBook(id int, title string) (*Book, error) {
	if err := validation.Validate(id, validation.Min(0)); err != nil {
		return nil, invalid("book id", err)
	}
	b := &Book{id: id}
	if err := b.SetTitle(title); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Book) ID() int { return b.id }
func (b *Book) Title() string { return b.title }
func (b *Book) Description() string { return b.description }
func (b *Book) Publisher() *Publisher { return b.publisher }
func (b *Book) ReleaseYear() *int { return clone(b.releaseYear) }
func (b *Book) Ebook() *bool { return clone(b.ebook) }
func (b *Book) NumPages() *int { return clone(b.numPages) }
func (b *Book) ImageURL() string { return b.imageURL }
func (b *Book) ISBN() string { return b.isbn }
func (b *Book) Link() string { return b.link }
func (b *Book) RatingsCount() *int { return clone(b.ratingsCount) }
func (b *Book) AverageRating() *float64 { return clone(b.averageRating) }
func (b *Book) TextReviewsCount() *int { return clone(b.textReviewsCount) }

// Authors returns the authors in the order they were added.
func (b *Book) Authors() []*Author { return slices.Clone(b.authors) }

func (b *Book) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if err := validation.Validate(title, validation.Required); err != nil {
		return invalid("book title", err)
	}
	b.title = title
	return nil
}

func (b *Book) SetReleaseYear(year int) error {
	if err := validation.Validate(year, validation.Min(0)); err != nil {
		return invalid("release year", err)
	}
	b.releaseYear = &year
	return nil
}

func (b *Book) SetNumPages(pages int) error {
	if err := validation.Validate(pages, validation.Min(0)); err != nil {
		return invalid("page count", err)
	}
	b.numPages = &pages
	return nil
}

func (b *Book) SetDescription(description string) {
	b.description = strings.TrimSpace(description)
}

func (b *Book) SetPublisher(p *Publisher) { b.publisher = p }
func (b *Book) SetEbook(ebook bool) { b.ebook = &ebook }
func (b *Book) SetImageURL(url string) { b.imageURL = strings.TrimSpace(url) }
func (b *Book) SetISBN(isbn string) { b.isbn = strings.TrimSpace(isbn) }
func (b *Book) SetLink(link string) { b.link = strings.TrimSpace(link) }
func (b *Book) SetRatingsCount(n int) { b.ratingsCount = &n }
func (b *Book) SetAverageRating(v float64) { b.averageRating = &v }
func (b *Book) SetTextReviewsCount(n int) { b.textReviewsCount = &n }

// Clone returns a copy of b that later changes to b do not reach. Authors
// and the publisher are shared, not copied.
func (b *Book) Clone() *Book {
	if b == nil {
		return nil
	}
	c := *b
	c.authors = slices.Clone(b.authors)
	return &c
}

// IncrementTextReviews adds one to the text review counter, treating an
// unset counter as zero.
func (b *Book) IncrementTextReviews() {
	n := 1
	if b.textReviewsCount != nil {
		n = *b.textReviewsCount + 1
	}
	b.textReviewsCount = &n
}

// AddAuthor appends a to the author list unless an author with the same id
// is already present.
func (b *Book) AddAuthor(a *Author) {
	if a == nil || b.HasAuthor(a.ID()) {
		return
	}
	b.authors = append(b.authors, a)
}

func (b *Book) RemoveAuthor(authorID int) {
	b.authors = slices.DeleteFunc(b.authors, func(a *Author) bool {
		return a.ID() == authorID
	})
}

func (b *Book) HasAuthor(authorID int) bool {
	return slices.ContainsFunc(b.authors, func(a *Author) bool {
		return a.ID() == authorID
	})
}

func (b *Book) String() string {
	return fmt.Sprintf("<Book %s, book id = %d>", b.title, b.id)
}

func CompareBooks(a, b *Book) int {
	return cmp.Compare(a.id, b.id)
}

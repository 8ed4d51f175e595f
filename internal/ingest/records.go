// Package ingest reads the catalogue dataset and loads it into a repository.
package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bookcatalog/internal/entity"
)

// AuthorRecord is one line of the authors file. Every field is a string;
// the empty string means unset.
type AuthorRecord struct {
	AuthorID         string `json:"author_id"`
	Name             string `json:"name"`
	AverageRating    string `json:"average_rating"`
	TextReviewsCount string `json:"text_reviews_count"`
	RatingsCount     string `json:"ratings_count"`
}

type AuthorRef struct {
	AuthorID string `json:"author_id"`
}

// BookRecord is one line of the books file.
type BookRecord struct {
	BookID           string      `json:"book_id"`
	Title            string      `json:"title"`
	Publisher        string      `json:"publisher"`
	PublicationYear  string      `json:"publication_year"`
	IsEbook          string      `json:"is_ebook"`
	Description      string      `json:"description"`
	NumPages         string      `json:"num_pages"`
	ImageURL         string      `json:"image_url"`
	ISBN             string      `json:"isbn"`
	Link             string      `json:"link"`
	RatingsCount     string      `json:"ratings_count"`
	AverageRating    string      `json:"average_rating"`
	TextReviewsCount string      `json:"text_reviews_count"`
	Authors          []AuthorRef `json:"authors"`
}

// decodeLines decodes a stream of JSON values, one per record, calling fn
// with the 1-based record number.
func decodeLines[T any](r io.Reader, fn func(n int, rec T) error) error {
	dec := json.NewDecoder(r)
	for n := 1; ; n++ {
		var rec T
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("record %d: %w", n, err)
		}
		if err := fn(n, rec); err != nil {
			return fmt.Errorf("record %d: %w", n, err)
		}
	}
}

// ReadAuthors parses the authors file.
func ReadAuthors(r io.Reader) ([]*entity.Author, error) {
	var authors []*entity.Author
	err := decodeLines(r, func(_ int, rec AuthorRecord) error {
		a, err := rec.toEntity()
		if err != nil {
			return err
		}
		authors = append(authors, a)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read authors: %w", err)
	}
	return authors, nil
}

func (rec AuthorRecord) toEntity() (*entity.Author, error) {
	id, err := parseInt("author_id", rec.AuthorID)
	if err != nil {
		return nil, err
	}
	a, err := entity.NewAuthor(id, rec.Name)
	if err != nil {
		return nil, err
	}
	if rating, err := parseOptionalFloat("average_rating", rec.AverageRating); err != nil {
		return nil, err
	} else if rating != nil {
		a.SetAverageRating(*rating)
	}
	if n, err := parseOptionalInt("text_reviews_count", rec.TextReviewsCount); err != nil {
		return nil, err
	} else if n != nil {
		a.SetTextReviewsCount(*n)
	}
	if n, err := parseOptionalInt("ratings_count", rec.RatingsCount); err != nil {
		return nil, err
	} else if n != nil {
		a.SetRatingsCount(*n)
	}
	return a, nil
}

// ReadBooks parses the books file. Authors are attached only when their id
// is present in authors; other references are counted in skipped.
func ReadBooks(r io.Reader, authors map[int]*entity.Author) (books []*entity.Book, skipped int, err error) {
	err = decodeLines(r, func(_ int, rec BookRecord) error {
		b, missing, err := rec.toEntity(authors)
		if err != nil {
			return err
		}
		skipped += missing
		books = append(books, b)
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("read books: %w", err)
	}
	return books, skipped, nil
}

func (rec BookRecord) toEntity(authors map[int]*entity.Author) (*entity.Book, int, error) {
	id, err := parseInt("book_id", rec.BookID)
	if err != nil {
		return nil, 0, err
	}
	b, err := entity.NewBook(id, rec.Title)
	if err != nil {
		return nil, 0, err
	}

	b.SetPublisher(entity.NewPublisher(rec.Publisher))
	b.SetDescription(rec.Description)
	b.SetImageURL(rec.ImageURL)
	b.SetISBN(rec.ISBN)
	b.SetLink(rec.Link)

	switch strings.ToLower(strings.TrimSpace(rec.IsEbook)) {
	case "true":
		b.SetEbook(true)
	case "false":
		b.SetEbook(false)
	}

	if year, err := parseOptionalInt("publication_year", rec.PublicationYear); err != nil {
		return nil, 0, err
	} else if year != nil {
		if err := b.SetReleaseYear(*year); err != nil {
			return nil, 0, err
		}
	}
	if pages, err := parseOptionalInt("num_pages", rec.NumPages); err != nil {
		return nil, 0, err
	} else if pages != nil {
		if err := b.SetNumPages(*pages); err != nil {
			return nil, 0, err
		}
	}
	if n, err := parseOptionalInt("ratings_count", rec.RatingsCount); err != nil {
		return nil, 0, err
	} else if n != nil {
		b.SetRatingsCount(*n)
	}
	if v, err := parseOptionalFloat("average_rating", rec.AverageRating); err != nil {
		return nil, 0, err
	} else if v != nil {
		b.SetAverageRating(*v)
	}
	if n, err := parseOptionalInt("text_reviews_count", rec.TextReviewsCount); err != nil {
		return nil, 0, err
	} else if n != nil {
		b.SetTextReviewsCount(*n)
	}

	missing := 0
	for _, ref := range rec.Authors {
		authorID, err := parseInt("authors.author_id", ref.AuthorID)
		if err != nil {
			return nil, 0, err
		}
		a, ok := authors[authorID]
		if !ok {
			missing++
			continue
		}
		b.AddAuthor(a)
		a.AddBook(b.ID())
	}
	return b, missing, nil
}

func parseInt(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return n, nil
}

func parseOptionalInt(field, s string) (*int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	n, err := parseInt(field, s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseOptionalFloat(field, s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return &v, nil
}

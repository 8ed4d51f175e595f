package entity

import (
	"fmt"
	"strings"
	"time"
)

// Review links a user and a book. Either reference may be nil; repositories
// refuse to store such a review.
type Review struct {
	user      *User
	book      *Book
	text      string
	timestamp time.Time
}

func NewReview(user *User, book *Book, text string, timestamp time.Time) *Review {
	return &Review{
		user:      user,
		book:      book,
		text:      strings.TrimSpace(text),
		timestamp: timestamp,
	}
}

func (r *Review) User() *User { return r.user }
func (r *Review) Book() *Book { return r.book }
func (r *Review) Text() string { return r.text }
func (r *Review) Timestamp() time.Time { return r.timestamp }

// Clone copies the review and its book. The user is shared.
func (r *Review) Clone() *Review {
	if r == nil {
		return nil
	}
	return &Review{user: r.user, book: r.book.Clone(), text: r.text, timestamp: r.timestamp}
}

// Equal compares user, book, text and timestamp.
func (r *Review) Equal(other *Review) bool {
	if r == nil || other == nil {
		return r == other
	}
	return sameUser(r.user, other.user) &&
		sameBook(r.book, other.book) &&
		r.text == other.text &&
		r.timestamp.Equal(other.timestamp)
}

func (r *Review) String() string {
	return fmt.Sprintf("<Review of book %v, text = %s, timestamp = %s>", r.book, r.text, r.timestamp)
}

func sameUser(a, b *User) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.name == b.name
}

func sameBook(a, b *Book) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.id == b.id
}

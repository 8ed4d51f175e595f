package entity

import (
	"fmt"
	"strings"
)

type Shelf string

const (
	ShelfCurrentlyReading Shelf = "Currently Reading"
	ShelfWantToRead       Shelf = "Want to Read"
	ShelfRead             Shelf = "Read"
)

// Shelves lists every valid shelf label.
var Shelves = []Shelf{ShelfCurrentlyReading, ShelfWantToRead, ShelfRead}

func (s Shelf) Valid() bool {
	switch s {
	case ShelfCurrentlyReading, ShelfWantToRead, ShelfRead:
		return true
	default:
		return false
	}
}

// ParseShelf accepts a shelf label, ignoring surrounding space and case.
func ParseShelf(label string) (Shelf, error) {
	label = strings.TrimSpace(label)
	for _, s := range Shelves {
		if strings.EqualFold(string(s), label) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: unknown shelf %q", ErrInvalidArgument, label)
}

// ReadingList places a book on one of a user's shelves.
type ReadingList struct {
	user  *User
	book  *Book
	shelf Shelf
}

func NewReadingList(user *User, book *Book, shelf Shelf) (*ReadingList, error) {
	rl := &ReadingList{user: user, book: book}
	if err := rl.SetShelf(shelf); err != nil {
		return nil, err
	}
	return rl, nil
}

func (rl *ReadingList) User() *User { return rl.user }
func (rl *ReadingList) Book() *Book { return rl.book }
func (rl *ReadingList) Shelf() Shelf { return rl.shelf }

// Clone copies the entry and its book. The user is shared.
func (rl *ReadingList) Clone() *ReadingList {
	if rl == nil {
		return nil
	}
	return &ReadingList{user: rl.user, book: rl.book.Clone(), shelf: rl.shelf}
}

func (rl *ReadingList) SetShelf(shelf Shelf) error {
	if !shelf.Valid() {
		return fmt.Errorf("%w: unknown shelf %q", ErrInvalidArgument, shelf)
	}
	rl.shelf = shelf
	return nil
}

package repository

import (
	"errors"
	"fmt"
	"math"

	"bookcatalog/internal/entity"
)

var (
	// ErrInvariantViolation is returned when a write would break a
	// cross-entity rule, such as a review without a stored book. Nothing is
	// written when it is returned.
	ErrInvariantViolation = errors.New("repository invariant violation")

	// ErrDuplicateKey is returned by backends that enforce uniqueness with
	// constraints. Author and publisher writes merge instead.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Violation wraps ErrInvariantViolation with a message.
func Violation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}

func CheckBook(book *entity.Book) error {
	if book == nil {
		return Violation("book is nil")
	}
	return nil
}

func CheckUser(user *entity.User) error {
	if user == nil {
		return Violation("user is nil")
	}
	if user.Name() == "" {
		return Violation("user has no name")
	}
	return nil
}

func CheckReview(review *entity.Review) error {
	if review == nil {
		return Violation("review is nil")
	}
	if review.Book() == nil {
		return Violation("review has no book")
	}
	if review.User() == nil {
		return Violation("review has no user")
	}
	return nil
}

func CheckReadingList(entry *entity.ReadingList) error {
	if entry == nil {
		return Violation("reading list is nil")
	}
	if entry.Book() == nil {
		return Violation("reading list has no book")
	}
	if entry.User() == nil {
		return Violation("reading list has no user")
	}
	return nil
}

// Page returns the bounds of page offset of size pageSize within a
// collection of n items. ok is false when the window is empty.
func Page(n, offset, pageSize int) (start, end int, ok bool) {
	if n <= 0 || offset < 0 || pageSize <= 0 || offset > (n-1)/pageSize {
		return 0, 0, false
	}
	start = offset * pageSize
	return start, start + min(pageSize, n-start), true
}

// RowOffset returns offset*pageSize for a backend that pages by row
// offset. ok is false for a negative offset, a non-positive size, or a
// product that does not fit in an int.
func RowOffset(offset, pageSize int) (int, bool) {
	if offset < 0 || pageSize <= 0 || offset > math.MaxInt/pageSize {
		return 0, false
	}
	return offset * pageSize, true
}

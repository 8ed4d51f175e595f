package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuthor(t *testing.T) {
	a, err := NewAuthor(3675, "  J.R.R. Tolkien ")
	require.NoError(t, err)
	assert.Equal(t, 3675, a.ID())
	assert.Equal(t, "J.R.R. Tolkien", a.FullName())
	assert.Zero(t, a.AverageRating())
	assert.Zero(t, a.RatingsCount())
	assert.Zero(t, a.TextReviewsCount())

	_, err = NewAuthor(-1, "Nobody")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewAuthor(1, "  ")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAuthorBooks(t *testing.T) {
	a, err := NewAuthor(1, "Ada")
	require.NoError(t, err)

	a.AddBook(5)
	a.AddBook(5)
	a.AddBook(2)
	assert.Equal(t, []int{5, 2}, a.BookIDs())
}

func TestNewPublisher(t *testing.T) {
	assert.Equal(t, "DC Comics", NewPublisher("  DC Comics ").Name())
	assert.Equal(t, UnknownPublisher, NewPublisher("").Name())
	assert.Equal(t, UnknownPublisher, NewPublisher(" \t").Name())

	a, b := NewPublisher("Avatar Press"), NewPublisher("Dark Horse")
	assert.Negative(t, ComparePublishers(a, b))
}

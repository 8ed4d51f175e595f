package usecase

import (
	"context"
	"testing"
	"time"

	"bookcatalog/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviews_Add(t *testing.T) {
	ctx := context.Background()
	repo := seededRepository(t, 42)
	reviews := NewReviews(repo)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	reviews.now = func() time.Time { return at }

	t.Run("stores and counts", func(t *testing.T) {
		review, err := reviews.Add(ctx, 42, "alice", "  A classic. ")
		require.NoError(t, err)
		assert.Equal(t, "A classic.", review.Text())
		assert.Equal(t, at, review.Timestamp())

		stored, err := reviews.ForBook(ctx, 42)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.True(t, stored[0].Equal(review))

		book, err := repo.GetBook(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, 1, *book.TextReviewsCount())
	})

	t.Run("unknown book", func(t *testing.T) {
		_, err := reviews.Add(ctx, 7, "alice", "?")
		assert.ErrorIs(t, err, ErrUnknownBook)

		_, err = reviews.ForBook(ctx, 7)
		assert.ErrorIs(t, err, ErrUnknownBook)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := reviews.Add(ctx, 42, "mallory", "?")
		assert.ErrorIs(t, err, ErrUnknownUser)
	})

	t.Run("empty text", func(t *testing.T) {
		_, err := reviews.Add(ctx, 42, "alice", "   ")
		assert.ErrorIs(t, err, entity.ErrInvalidArgument)
	})
}

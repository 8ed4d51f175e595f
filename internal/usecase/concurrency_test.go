package usecase

import (
	"context"
	"sync"
	"testing"

	"bookcatalog/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with -race: readers use returned books while writers change the
// stored ones.
func TestServices_ConcurrentReadsAndWrites(t *testing.T) {
	const rounds = 200
	ctx := context.Background()
	repo := seededRepository(t, 1, 2)
	books := NewBooks(repo, 2)
	reviews := NewReviews(repo)
	lists := NewReadingLists(repo)

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		for range rounds {
			_, err := reviews.Add(ctx, 1, "alice", "again")
			assert.NoError(t, err)
		}
	}()

	go func() {
		defer wg.Done()
		shelves := []entity.Shelf{entity.ShelfRead, entity.ShelfWantToRead}
		for i := range rounds {
			_, _, err := lists.AddBookToUser(ctx, "alice", 2, shelves[i%2])
			assert.NoError(t, err)
		}
	}()

	go func() {
		defer wg.Done()
		for range rounds {
			b, err := books.Get(ctx, 1)
			if assert.NoError(t, err) {
				_ = b.TextReviewsCount()
			}
			page, err := books.Page(ctx, 1)
			if assert.NoError(t, err) {
				for _, b := range page.Items {
					_ = b.TextReviewsCount()
				}
			}
		}
	}()

	go func() {
		defer wg.Done()
		for range rounds {
			entry, _, err := lists.AddBookToUser(ctx, "alice", 1, entity.ShelfCurrentlyReading)
			if assert.NoError(t, err) {
				_ = entry.Shelf()
				_ = entry.Book().TextReviewsCount()
			}
			rs, err := reviews.ForBook(ctx, 1)
			if assert.NoError(t, err) {
				for _, r := range rs {
					_ = r.Book().TextReviewsCount()
				}
			}
		}
	}()

	wg.Wait()

	b, err := books.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, b.TextReviewsCount())
	assert.Equal(t, rounds, *b.TextReviewsCount())
}

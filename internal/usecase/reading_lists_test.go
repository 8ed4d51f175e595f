package usecase

import (
	"context"
	"testing"

	"bookcatalog/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadingLists_AddBookToUser(t *testing.T) {
	ctx := context.Background()
	repo := seededRepository(t, 42, 43)
	lists := NewReadingLists(repo)

	entry, outcome, err := lists.AddBookToUser(ctx, "alice", 42, entity.ShelfWantToRead)
	require.NoError(t, err)
	assert.Equal(t, Created, outcome)
	assert.Equal(t, entity.ShelfWantToRead, entry.Shelf())

	moved, outcome, err := lists.AddBookToUser(ctx, "alice", 42, entity.ShelfRead)
	require.NoError(t, err)
	assert.Equal(t, Updated, outcome)
	assert.Equal(t, entity.ShelfRead, moved.Shelf())
	assert.Equal(t, entity.ShelfWantToRead, entry.Shelf(), "returned entries are copies")

	_, _, err = lists.AddBookToUser(ctx, "alice", 43, entity.ShelfRead)
	require.NoError(t, err)

	read, err := lists.BooksOnShelf(ctx, "alice", entity.ShelfRead)
	require.NoError(t, err)
	require.Len(t, read, 2)
	assert.Equal(t, 42, read[0].ID())
	assert.Equal(t, 43, read[1].ID())

	wanted, err := lists.BooksOnShelf(ctx, "alice", entity.ShelfWantToRead)
	require.NoError(t, err)
	assert.Empty(t, wanted)
}

func TestReadingLists_Errors(t *testing.T) {
	ctx := context.Background()
	lists := NewReadingLists(seededRepository(t, 42))

	_, _, err := lists.AddBookToUser(ctx, "mallory", 42, entity.ShelfRead)
	assert.ErrorIs(t, err, ErrUnknownUser)

	_, _, err = lists.AddBookToUser(ctx, "alice", 1, entity.ShelfRead)
	assert.ErrorIs(t, err, ErrUnknownBook)

	_, _, err = lists.AddBookToUser(ctx, "alice", 42, "Abandoned")
	assert.ErrorIs(t, err, entity.ErrInvalidArgument)

	_, err = lists.BooksOnShelf(ctx, "mallory", entity.ShelfRead)
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "created", Created.String())
	assert.Equal(t, "updated", Updated.String())
	assert.Equal(t, "unknown", Outcome(0).String())
}

package usecase

import (
	"context"
	"testing"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

// seededRepository holds books with the given ids and a single user, alice.
func seededRepository(t *testing.T, ids ...int) *memory.Repository {
	t.Helper()
	ctx := context.Background()
	repo := memory.NewRepository()
	for _, id := range ids {
		b, err := entity.NewBook(id, "Book")
		require.NoError(t, err)
		require.NoError(t, repo.AddBook(ctx, b))
	}
	require.NoError(t, repo.AddUser(ctx, entity.NewUser("alice", "password1")))
	return repo
}

func newTestAuthor(id int, name string) (*entity.Author, error) {
	return entity.NewAuthor(id, name)
}

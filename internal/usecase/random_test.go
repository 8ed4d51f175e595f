package usecase

import (
	"context"
	"math/rand/v2"
	"testing"

	"bookcatalog/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func distinctIDs(t *testing.T, books []*entity.Book) map[int]bool {
	t.Helper()
	seen := make(map[int]bool, len(books))
	for _, b := range books {
		require.False(t, seen[b.ID()], "book %d drawn twice", b.ID())
		seen[b.ID()] = true
	}
	return seen
}

func TestRandomBooks(t *testing.T) {
	ctx := context.Background()
	repo := seededRepository(t, 10, 20, 30, 40, 50)
	rng := rand.New(rand.NewPCG(1, 2))

	tests := []struct {
		name     string
		quantity int
		want     int
	}{
		{name: "fewer than stored", quantity: 3, want: 3},
		{name: "all stored is clamped", quantity: 5, want: 4},
		{name: "more than stored is clamped", quantity: 50, want: 4},
		{name: "zero", quantity: 0, want: 0},
		{name: "negative", quantity: -2, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, err := RandomBooks(ctx, repo, tt.quantity, rng)
			require.NoError(t, err)
			require.Len(t, books, tt.want)

			for id := range distinctIDs(t, books) {
				stored, err := repo.GetBook(ctx, id)
				require.NoError(t, err)
				assert.NotNil(t, stored)
			}
		})
	}
}

func TestRandomBooks_SmallRepositories(t *testing.T) {
	ctx := context.Background()

	empty, err := RandomBooks(ctx, seededRepository(t), 3, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	single, err := RandomBooks(ctx, seededRepository(t, 1), 3, nil)
	require.NoError(t, err)
	assert.Empty(t, single)
}

func TestRandomBooks_CoversCollection(t *testing.T) {
	ctx := context.Background()
	repo := seededRepository(t, 1, 2, 3)
	rng := rand.New(rand.NewPCG(7, 7))

	seen := make(map[int]bool)
	for range 50 {
		books, err := RandomBooks(ctx, repo, 1, rng)
		require.NoError(t, err)
		require.Len(t, books, 1)
		seen[books[0].ID()] = true
	}
	assert.Len(t, seen, 3)
}

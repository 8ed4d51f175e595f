package usecase

import (
	"context"
	"math/rand/v2"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/repository"
)

// RandomBooks returns up to quantity distinct books drawn uniformly from
// repo. A request for as many books as are stored, or more, is reduced to
// one less than the stored count, so the whole collection is never
// returned. A nil rng uses the package-level source.
func RandomBooks(ctx context.Context, repo repository.Repository, quantity int, rng *rand.Rand) ([]*entity.Book, error) {
	count, err := repo.CountBooks(ctx)
	if err != nil {
		return nil, err
	}
	if quantity >= count {
		quantity = count - 1
	}
	if quantity <= 0 {
		return []*entity.Book{}, nil
	}

	var perm []int
	if rng != nil {
		perm = rng.Perm(count)
	} else {
		perm = rand.Perm(count)
	}
	return repo.GetBooksByIndices(ctx, perm[:quantity])
}

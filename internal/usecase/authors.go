package usecase

import (
	"context"
	"fmt"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/repository"
)

type Authors struct {
	store    repository.Store
	pageSize int
}

func NewAuthors(store repository.Store, pageSize int) *Authors {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Authors{store: store, pageSize: pageSize}
}

func (s *Authors) Get(ctx context.Context, id int) (*entity.Author, error) {
	var author *entity.Author
	err := s.store.Do(ctx, func(repo repository.Repository) (err error) {
		author, err = repo.GetAuthor(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAuthor, id)
	}
	return author, nil
}

func (s *Authors) Page(ctx context.Context, page int) (Page[*entity.Author], error) {
	page = normalizePage(page)
	result := Page[*entity.Author]{Page: page, PageSize: s.pageSize}
	err := s.store.Do(ctx, func(repo repository.Repository) (err error) {
		if result.Total, err = repo.CountAuthors(ctx); err != nil {
			return err
		}
		result.Items, err = repo.GetAuthors(ctx, page-1, s.pageSize)
		return err
	})
	return result, err
}

func (s *Authors) Count(ctx context.Context) (int, error) {
	var n int
	err := s.store.Do(ctx, func(repo repository.Repository) (err error) {
		n, err = repo.CountAuthors(ctx)
		return err
	})
	return n, err
}

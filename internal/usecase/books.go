package usecase

import (
	"context"
	"fmt"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/repository"
)

// DefaultPageSize applies when no page size is configured.
const DefaultPageSize = 10

// Books answers catalogue queries. Each call runs as one unit of work and
// returns copies taken inside it, so callers may read them after the unit
// of work has ended.
type Books struct {
	store    repository.Store
	pageSize int
}

func NewBooks(store repository.Store, pageSize int) *Books {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Books{store: store, pageSize: pageSize}
}

func (s *Books) PageSize() int { return s.pageSize }

func (s *Books) Get(ctx context.Context, id int) (*entity.Book, error) {
	var book *entity.Book
	err := s.store.Do(ctx, func(repo repository.Repository) (err error) {
		book, err = repo.GetBook(ctx, id)
		book = book.Clone()
		return err
	})
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBook, id)
	}
	return book, nil
}

func (s *Books) Page(ctx context.Context, page int) (Page[*entity.Book], error) {
	page = normalizePage(page)
	result := Page[*entity.Book]{Page: page, PageSize: s.pageSize}
	err := s.store.Do(ctx, func(repo repository.Repository) (err error) {
		if result.Total, err = repo.CountBooks(ctx); err != nil {
			return err
		}
		result.Items, err = repo.GetBooks(ctx, page-1, s.pageSize)
		result.Items = cloneBooks(result.Items)
		return err
	})
	return result, err
}

func (s *Books) Count(ctx context.Context) (int, error) {
	var n int
	err := s.store.Do(ctx, func(repo repository.Repository) (err error) {
		n, err = repo.CountBooks(ctx)
		return err
	})
	return n, err
}

func (s *Books) ByPublisher(ctx context.Context, name string) ([]*entity.Book, error) {
	return s.list(ctx, func(repo repository.Repository) ([]*entity.Book, error) {
		return repo.GetBooksByPublisher(ctx, name)
	})
}

func (s *Books) ByReleaseYear(ctx context.Context, year int) ([]*entity.Book, error) {
	return s.list(ctx, func(repo repository.Repository) ([]*entity.Book, error) {
		return repo.GetBooksByReleaseYear(ctx, year)
	})
}

func (s *Books) ByAuthor(ctx context.Context, authorID int) ([]*entity.Book, error) {
	return s.list(ctx, func(repo repository.Repository) ([]*entity.Book, error) {
		return repo.GetBooksByAuthorID(ctx, authorID)
	})
}

// Random returns quantity distinct random books; see RandomBooks.
func (s *Books) Random(ctx context.Context, quantity int) ([]*entity.Book, error) {
	return s.list(ctx, func(repo repository.Repository) ([]*entity.Book, error) {
		return RandomBooks(ctx, repo, quantity, nil)
	})
}

func (s *Books) list(ctx context.Context, fn func(repository.Repository) ([]*entity.Book, error)) ([]*entity.Book, error) {
	var books []*entity.Book
	err := s.store.Do(ctx, func(repo repository.Repository) (err error) {
		books, err = fn(repo)
		books = cloneBooks(books)
		return err
	})
	return books, err
}

func cloneBooks(books []*entity.Book) []*entity.Book {
	if books == nil {
		return nil
	}
	out := make([]*entity.Book, len(books))
	for i, b := range books {
		out[i] = b.Clone()
	}
	return out
}

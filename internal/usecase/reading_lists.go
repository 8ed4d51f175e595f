package usecase

import (
	"context"
	"fmt"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/repository"
)

// Outcome tells whether AddBookToUser created an entry or moved an
// existing one.
type Outcome int

const (
	Created Outcome = iota + 1
	Updated
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	default:
		return "unknown"
	}
}

type ReadingLists struct {
	store repository.Store
}

func NewReadingLists(store repository.Store) *ReadingLists {
	return &ReadingLists{store: store}
}

// AddBookToUser puts the book on the user's shelf. A book already on one
// of the user's shelves is moved rather than added twice.
func (s *ReadingLists) AddBookToUser(ctx context.Context, userName string, bookID int, shelf entity.Shelf) (*entity.ReadingList, Outcome, error) {
	if !shelf.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown shelf %q", entity.ErrInvalidArgument, shelf)
	}

	var (
		entry   *entity.ReadingList
		outcome Outcome
	)
	err := s.store.Do(ctx, func(repo repository.Repository) error {
		user, err := s.user(ctx, repo, userName)
		if err != nil {
			return err
		}
		book, err := repo.GetBook(ctx, bookID)
		if err != nil {
			return err
		}
		if book == nil {
			return fmt.Errorf("%w: %d", ErrUnknownBook, bookID)
		}

		existing, err := repo.GetReadingListByUserAndBookID(ctx, user, bookID)
		if err != nil {
			return err
		}
		if existing != nil {
			if err := existing.SetShelf(shelf); err != nil {
				return err
			}
			if err := repo.AddReadingList(ctx, existing, true); err != nil {
				return err
			}
			entry, outcome = existing.Clone(), Updated
			return nil
		}

		created, err := entity.NewReadingList(user, book, shelf)
		if err != nil {
			return err
		}
		if err := repo.AddReadingList(ctx, created, false); err != nil {
			return err
		}
		entry, outcome = created.Clone(), Created
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return entry, outcome, nil
}

// BooksOnShelf lists the books a user keeps on shelf.
func (s *ReadingLists) BooksOnShelf(ctx context.Context, userName string, shelf entity.Shelf) ([]*entity.Book, error) {
	books := []*entity.Book{}
	err := s.store.Do(ctx, func(repo repository.Repository) error {
		user, err := s.user(ctx, repo, userName)
		if err != nil {
			return err
		}
		entries, err := repo.GetReadingListByUser(ctx, shelf, user)
		if err != nil {
			return err
		}
		for _, rl := range entries {
			books = append(books, rl.Book().Clone())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (s *ReadingLists) user(ctx context.Context, repo repository.Repository, name string) (*entity.User, error) {
	user, err := repo.GetUser(ctx, name)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUser, name)
	}
	return user, nil
}

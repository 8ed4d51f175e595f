package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/repository"
)

type Reviews struct {
	store repository.Store
	now   func() time.Time
}

func NewReviews(store repository.Store) *Reviews {
	return &Reviews{store: store, now: time.Now}
}

// Add stores a review of book bookID by userName, timestamped now.
func (s *Reviews) Add(ctx context.Context, bookID int, userName, text string) (*entity.Review, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: review text is empty", entity.ErrInvalidArgument)
	}

	var review *entity.Review
	err := s.store.Do(ctx, func(repo repository.Repository) error {
		book, err := repo.GetBook(ctx, bookID)
		if err != nil {
			return err
		}
		if book == nil {
			return fmt.Errorf("%w: %d", ErrUnknownBook, bookID)
		}
		user, err := repo.GetUser(ctx, userName)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("%w: %q", ErrUnknownUser, userName)
		}

		review = entity.NewReview(user, book, text, s.now())
		if err := repo.AddReview(ctx, review); err != nil {
			return err
		}
		review = review.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (s *Reviews) ForBook(ctx context.Context, bookID int) ([]*entity.Review, error) {
	var reviews []*entity.Review
	err := s.store.Do(ctx, func(repo repository.Repository) error {
		book, err := repo.GetBook(ctx, bookID)
		if err != nil {
			return err
		}
		if book == nil {
			return fmt.Errorf("%w: %d", ErrUnknownBook, bookID)
		}
		stored, err := repo.GetReviewsByBookID(ctx, bookID)
		if err != nil {
			return err
		}
		reviews = make([]*entity.Review, len(stored))
		for i, rv := range stored {
			reviews[i] = rv.Clone()
		}
		return nil
	})
	return reviews, err
}

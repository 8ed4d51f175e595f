package postgres

import (
	"context"
	"fmt"
	"time"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/repository"

	"github.com/jackc/pgx/v5"
)

// AddUser fails with repository.ErrDuplicateKey when the name is taken.
func (r *Repository) AddUser(ctx context.Context, user *entity.User) error {
	if err := repository.CheckUser(user); err != nil {
		return err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	return withTx(timeoutCtx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(timeoutCtx, `INSERT INTO users (user_name, password) VALUES ($1, $2)`,
			user.Name(), user.Password())
		if err != nil {
			return fmt.Errorf("insert user %q: %w", user.Name(), mapError(err))
		}
		return nil
	})
}

func (r *Repository) GetUser(ctx context.Context, name string) (*entity.User, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var userName, password string
	err := r.db.QueryRow(timeoutCtx, `SELECT user_name, password FROM users WHERE user_name = $1`, name).
		Scan(&userName, &password)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %q: %w", name, err)
	}
	return entity.NewUser(userName, password), nil
}

func lookupUserID(ctx context.Context, q querier, name string) (int, error) {
	var id int
	err := q.QueryRow(ctx, `SELECT id FROM users WHERE user_name = $1`, name).Scan(&id)
	if err != nil {
		if isNoRows(err) {
			return 0, repository.Violation("user %q is not stored", name)
		}
		return 0, fmt.Errorf("look up user %q: %w", name, err)
	}
	return id, nil
}

// AddReview stores the review and increments the book's text review
// counter in one transaction. On success the counter of review.Book() is
// incremented as well.
func (r *Repository) AddReview(ctx context.Context, review *entity.Review) error {
	if err := repository.CheckReview(review); err != nil {
		return err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	bookID := review.Book().ID()
	err := withTx(timeoutCtx, r.db, func(tx pgx.Tx) error {
		userID, err := lookupUserID(timeoutCtx, tx, review.User().Name())
		if err != nil {
			return err
		}

		tag, err := tx.Exec(timeoutCtx, `
			UPDATE books SET text_reviews_count = COALESCE(text_reviews_count, 0) + 1
			WHERE book_id = $1
		`, bookID)
		if err != nil {
			return fmt.Errorf("increment review count: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return repository.Violation("book %d is not stored", bookID)
		}

		_, err = tx.Exec(timeoutCtx, `
			INSERT INTO reviews (review, timestamp, user_id, book_id)
			VALUES ($1, $2, $3, $4)
		`, review.Text(), review.Timestamp(), userID, bookID)
		if err != nil {
			return fmt.Errorf("insert review: %w", mapError(err))
		}
		return nil
	})
	if err != nil {
		return err
	}

	review.Book().IncrementTextReviews()
	return nil
}

func (r *Repository) GetReviewsByBookID(ctx context.Context, bookID int) ([]*entity.Review, error) {
	book, err := r.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return []*entity.Review{}, nil
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, `
		SELECT r.review, r.timestamp, u.user_name, u.password
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.book_id = $1
		ORDER BY r.id
	`, bookID)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	users := make(map[string]*entity.User)
	reviews := []*entity.Review{}
	for rows.Next() {
		var (
			text, userName, password string
			at                       time.Time
		)
		if err := rows.Scan(&text, &at, &userName, &password); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		user, ok := users[userName]
		if !ok {
			user = entity.NewUser(userName, password)
			users[userName] = user
		}
		reviews = append(reviews, entity.NewReview(user, book, text, at))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return reviews, nil
}

// AddReadingList upserts on (user, book), so a second entry for the same
// pair moves the stored one to the new shelf. With isUpdate set it only
// updates, and an absent pair is left absent.
func (r *Repository) AddReadingList(ctx context.Context, entry *entity.ReadingList, isUpdate bool) error {
	if err := repository.CheckReadingList(entry); err != nil {
		return err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	return withTx(timeoutCtx, r.db, func(tx pgx.Tx) error {
		userID, err := lookupUserID(timeoutCtx, tx, entry.User().Name())
		if err != nil {
			return err
		}
		query := `
			INSERT INTO user_reading_lists (shelf, book_id, user_id)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id, book_id) DO UPDATE SET shelf = EXCLUDED.shelf
		`
		if isUpdate {
			query = `UPDATE user_reading_lists SET shelf = $1 WHERE book_id = $2 AND user_id = $3`
		}
		_, err = tx.Exec(timeoutCtx, query, string(entry.Shelf()), entry.Book().ID(), userID)
		if err != nil {
			return fmt.Errorf("upsert reading list: %w", mapError(err))
		}
		return nil
	})
}

func (r *Repository) GetReadingListByUser(ctx context.Context, shelf entity.Shelf, user *entity.User) ([]*entity.ReadingList, error) {
	entries := []*entity.ReadingList{}
	if user == nil {
		return entries, nil
	}

	ids, err := r.readingListBookIDs(ctx, user.Name(), shelf)
	if err != nil {
		return nil, err
	}
	books, err := r.booksByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		book, ok := books[id]
		if !ok {
			continue
		}
		rl, err := entity.NewReadingList(user, book, shelf)
		if err != nil {
			return nil, err
		}
		entries = append(entries, rl)
	}
	return entries, nil
}

func (r *Repository) readingListBookIDs(ctx context.Context, userName string, shelf entity.Shelf) ([]int, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, `
		SELECT rl.book_id
		FROM user_reading_lists rl
		JOIN users u ON u.id = rl.user_id
		WHERE u.user_name = $1 AND rl.shelf = $2
		ORDER BY rl.id
	`, userName, string(shelf))
	if err != nil {
		return nil, fmt.Errorf("query reading list: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("scan reading list: %w", err)
	}
	return ids, nil
}

func (r *Repository) GetReadingListByUserAndBookID(ctx context.Context, user *entity.User, bookID int) (*entity.ReadingList, error) {
	if user == nil {
		return nil, nil
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var shelf string
	err := r.db.QueryRow(timeoutCtx, `
		SELECT rl.shelf
		FROM user_reading_lists rl
		JOIN users u ON u.id = rl.user_id
		WHERE u.user_name = $1 AND rl.book_id = $2
	`, user.Name(), bookID).Scan(&shelf)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reading list entry: %w", err)
	}

	book, err := r.GetBook(ctx, bookID)
	if err != nil || book == nil {
		return nil, err
	}
	return entity.NewReadingList(user, book, entity.Shelf(shelf))
}

package postgres

import (
	"context"
	"fmt"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/repository"

	"github.com/jackc/pgx/v5"
)

type authorRow struct {
	ID               int
	FullName         string
	AverageRating    float64
	TextReviewsCount int
	RatingsCount     int
}

func scanAuthorRow(row pgx.CollectableRow) (authorRow, error) {
	var a authorRow
	err := row.Scan(&a.ID, &a.FullName, &a.AverageRating, &a.TextReviewsCount, &a.RatingsCount)
	return a, err
}

func (row authorRow) toEntity() (*entity.Author, error) {
	a, err := entity.NewAuthor(row.ID, row.FullName)
	if err != nil {
		return nil, err
	}
	a.SetAverageRating(row.AverageRating)
	a.SetTextReviewsCount(row.TextReviewsCount)
	a.SetRatingsCount(row.RatingsCount)
	return a, nil
}

func insertAuthor(ctx context.Context, q querier, a *entity.Author) error {
	_, err := q.Exec(ctx, `
		INSERT INTO authors (unique_id, full_name, average_rating, text_reviews_count, ratings_count)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (unique_id) DO NOTHING
	`, a.ID(), a.FullName(), a.AverageRating(), a.TextReviewsCount(), a.RatingsCount())
	if err != nil {
		return fmt.Errorf("insert author %d: %w", a.ID(), mapError(err))
	}
	return nil
}

func insertPublisher(ctx context.Context, q querier, p *entity.Publisher) error {
	_, err := q.Exec(ctx, `INSERT INTO publishers (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, p.Name())
	if err != nil {
		return fmt.Errorf("insert publisher %q: %w", p.Name(), mapError(err))
	}
	return nil
}

// AddAuthor inserts the author unless its id is taken and returns the
// stored row.
func (r *Repository) AddAuthor(ctx context.Context, author *entity.Author) (*entity.Author, error) {
	if author == nil {
		return nil, repository.Violation("author is nil")
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := insertAuthor(timeoutCtx, r.db, author); err != nil {
		return nil, err
	}
	return r.GetAuthor(ctx, author.ID())
}

func (r *Repository) GetAuthor(ctx context.Context, id int) (*entity.Author, error) {
	authors, err := r.queryAuthors(ctx, `
		SELECT unique_id, full_name, average_rating, text_reviews_count, ratings_count
		FROM authors WHERE unique_id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	if len(authors) == 0 {
		return nil, nil
	}
	return authors[0], nil
}

func (r *Repository) GetAuthors(ctx context.Context, offset, pageSize int) ([]*entity.Author, error) {
	rowOffset, ok := repository.RowOffset(offset, pageSize)
	if !ok {
		return []*entity.Author{}, nil
	}
	return r.queryAuthors(ctx, `
		SELECT unique_id, full_name, average_rating, text_reviews_count, ratings_count
		FROM authors ORDER BY unique_id LIMIT $1 OFFSET $2
	`, pageSize, rowOffset)
}

func (r *Repository) CountAuthors(ctx context.Context) (int, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int
	if err := r.db.QueryRow(timeoutCtx, `SELECT COUNT(*) FROM authors`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count authors: %w", err)
	}
	return n, nil
}

func (r *Repository) queryAuthors(ctx context.Context, sql string, args ...any) ([]*entity.Author, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query authors: %w", err)
	}
	authorRows, err := pgx.CollectRows(rows, scanAuthorRow)
	if err != nil {
		return nil, fmt.Errorf("scan authors: %w", err)
	}

	authors := make([]*entity.Author, 0, len(authorRows))
	for _, row := range authorRows {
		a, err := row.toEntity()
		if err != nil {
			return nil, fmt.Errorf("author %d: %w", row.ID, err)
		}
		authors = append(authors, a)
	}
	return authors, nil
}

func (r *Repository) AddPublisher(ctx context.Context, publisher *entity.Publisher) (*entity.Publisher, error) {
	if publisher == nil {
		return nil, repository.Violation("publisher is nil")
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := insertPublisher(timeoutCtx, r.db, publisher); err != nil {
		return nil, err
	}
	return r.GetPublisher(ctx, publisher.Name())
}

func (r *Repository) GetPublisher(ctx context.Context, name string) (*entity.Publisher, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var stored string
	err := r.db.QueryRow(timeoutCtx, `SELECT name FROM publishers WHERE name = $1`, name).Scan(&stored)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get publisher %q: %w", name, err)
	}
	return entity.NewPublisher(stored), nil
}

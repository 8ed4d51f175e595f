package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// Report summarises one Populate call.
type Report struct {
	Status            string    `json:"status"`
	AuthorsAdded      int       `json:"authors_added"`
	Publishers        int       `json:"publishers"`
	BooksAdded        int       `json:"books_added"`
	UsersAdded        int       `json:"users_added"`
	Duplicates        int       `json:"duplicates"`
	SkippedAuthorRefs int       `json:"skipped_author_refs"`
	StartedAt         time.Time `json:"started_at"`
	FinishedAt        time.Time `json:"finished_at"`
	Error             string    `json:"error,omitempty"`
}

// Populate adds the dataset to repo: authors, then books with their
// publishers merged, then users. Books the backend rejects as duplicates
// and users whose name is already stored are counted in Duplicates and
// skipped, so a load can be repeated.
func Populate(ctx context.Context, repo repository.Repository, ds *Dataset) (report *Report, err error) {
	report = &Report{
		Status:            StatusRunning,
		SkippedAuthorRefs: ds.SkippedAuthorRefs,
		StartedAt:         time.Now(),
	}

	defer func() {
		report.FinishedAt = time.Now()
		if err != nil {
			report.Status = StatusFailed
			report.Error = err.Error()
			log.Error().Err(err).Msg("populate failed")
			return
		}
		report.Status = StatusCompleted
		log.Info().
			Int("authors", report.AuthorsAdded).
			Int("publishers", report.Publishers).
			Int("books", report.BooksAdded).
			Int("users", report.UsersAdded).
			Int("duplicates", report.Duplicates).
			Int("skipped_author_refs", report.SkippedAuthorRefs).
			Dur("took", report.FinishedAt.Sub(report.StartedAt)).
			Msg("populate completed")
	}()

	for _, a := range ds.Authors {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if _, err := repo.AddAuthor(ctx, a); err != nil {
			return report, fmt.Errorf("add author %d: %w", a.ID(), err)
		}
		report.AuthorsAdded++
	}

	publishers := make(map[string]bool)
	for _, b := range ds.Books {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := addBook(ctx, repo, b, report); err != nil {
			return report, err
		}
		publishers[b.Publisher().Name()] = true
	}
	report.Publishers = len(publishers)

	for _, u := range ds.Users {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if !u.Valid() {
			log.Warn().Str("user", u.Name()).Msg("skipping user without usable credentials")
			continue
		}
		stored, err := repo.GetUser(ctx, u.Name())
		if err != nil {
			return report, fmt.Errorf("look up user %q: %w", u.Name(), err)
		}
		if stored != nil {
			report.Duplicates++
			continue
		}
		err = repo.AddUser(ctx, u)
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			report.Duplicates++
		case err != nil:
			return report, fmt.Errorf("add user %q: %w", u.Name(), err)
		default:
			report.UsersAdded++
		}
	}
	return report, nil
}

func addBook(ctx context.Context, repo repository.Repository, b *entity.Book, report *Report) error {
	p := b.Publisher()
	if p == nil {
		p = entity.NewPublisher("")
	}
	stored, err := repo.AddPublisher(ctx, p)
	if err != nil {
		return fmt.Errorf("add publisher %q: %w", p.Name(), err)
	}
	stored.AddBook(b.ID())
	b.SetPublisher(stored)

	err = repo.AddBook(ctx, b)
	switch {
	case errors.Is(err, repository.ErrDuplicateKey):
		report.Duplicates++
		log.Debug().Int("book_id", b.ID()).Msg("book already stored")
	case err != nil:
		return fmt.Errorf("add book %d: %w", b.ID(), err)
	default:
		report.BooksAdded++
	}
	return nil
}

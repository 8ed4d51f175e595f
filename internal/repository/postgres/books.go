package postgres

import (
	"context"
	"errors"
	"fmt"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/repository"

	"github.com/jackc/pgx/v5"
)

const selectBooks = `
	SELECT b.book_id, b.title, b.release_year, b.description, b.ebook, b.num_pages,
	       b.image_url, b.isbn, b.link, b.ratings_count, b.average_rating,
	       b.text_reviews_count, b.publisher_name
	FROM books b`

type bookRow struct {
	ID               int
	Title            string
	ReleaseYear      *int
	Description      *string
	Ebook            *bool
	NumPages         *int
	ImageURL         *string
	ISBN             *string
	Link             *string
	RatingsCount     *int
	AverageRating    *float64
	TextReviewsCount *int
	PublisherName    *string
}

func scanBookRow(row pgx.CollectableRow) (bookRow, error) {
	var b bookRow
	err := row.Scan(
		&b.ID, &b.Title, &b.ReleaseYear, &b.Description, &b.Ebook, &b.NumPages,
		&b.ImageURL, &b.ISBN, &b.Link, &b.RatingsCount, &b.AverageRating,
		&b.TextReviewsCount, &b.PublisherName,
	)
	return b, err
}

func (row bookRow) toEntity(publishers map[string]*entity.Publisher) (*entity.Book, error) {
	book, err := entity.NewBook(row.ID, row.Title)
	if err != nil {
		return nil, err
	}
	if row.ReleaseYear != nil {
		if err := book.SetReleaseYear(*row.ReleaseYear); err != nil {
			return nil, err
		}
	}
	if row.NumPages != nil {
		if err := book.SetNumPages(*row.NumPages); err != nil {
			return nil, err
		}
	}
	if row.Ebook != nil {
		book.SetEbook(*row.Ebook)
	}
	if row.RatingsCount != nil {
		book.SetRatingsCount(*row.RatingsCount)
	}
	if row.AverageRating != nil {
		book.SetAverageRating(*row.AverageRating)
	}
	if row.TextReviewsCount != nil {
		book.SetTextReviewsCount(*row.TextReviewsCount)
	}
	book.SetDescription(deref(row.Description))
	book.SetImageURL(deref(row.ImageURL))
	book.SetISBN(deref(row.ISBN))
	book.SetLink(deref(row.Link))

	if row.PublisherName != nil {
		p, ok := publishers[*row.PublisherName]
		if !ok {
			p = entity.NewPublisher(*row.PublisherName)
			publishers[*row.PublisherName] = p
		}
		p.AddBook(book.ID())
		book.SetPublisher(p)
	}
	return book, nil
}

// AddBook stores the book with its publisher and authors. Publisher and
// author rows that already exist are left as they are.
func (r *Repository) AddBook(ctx context.Context, book *entity.Book) error {
	if err := repository.CheckBook(book); err != nil {
		return err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	return withTx(timeoutCtx, r.db, func(tx pgx.Tx) error {
		var publisherName *string
		if p := book.Publisher(); p != nil {
			if err := insertPublisher(timeoutCtx, tx, p); err != nil {
				return err
			}
			name := p.Name()
			publisherName = &name
		}

		authors := book.Authors()
		for _, a := range authors {
			if err := insertAuthor(timeoutCtx, tx, a); err != nil {
				return err
			}
		}

		_, err := tx.Exec(timeoutCtx, `
			INSERT INTO books (book_id, title, release_year, description, ebook, num_pages,
			                   image_url, isbn, link, ratings_count, average_rating,
			                   text_reviews_count, publisher_name)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		`,
			book.ID(), book.Title(), book.ReleaseYear(), nullable(book.Description()),
			book.Ebook(), book.NumPages(), nullable(book.ImageURL()), nullable(book.ISBN()),
			nullable(book.Link()), book.RatingsCount(), book.AverageRating(),
			book.TextReviewsCount(), publisherName,
		)
		if err != nil {
			return fmt.Errorf("insert book %d: %w", book.ID(), mapError(err))
		}

		for i, a := range authors {
			_, err := tx.Exec(timeoutCtx, `
				INSERT INTO book_authors (book_id, author_id, position)
				VALUES ($1, $2, $3)
			`, book.ID(), a.ID(), i)
			if err != nil {
				return fmt.Errorf("link author %d to book %d: %w", a.ID(), book.ID(), mapError(err))
			}
		}
		return nil
	})
}

func (r *Repository) GetBook(ctx context.Context, id int) (*entity.Book, error) {
	books, err := r.queryBooks(ctx, selectBooks+` WHERE b.book_id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, nil
	}
	return books[0], nil
}

func (r *Repository) GetBooksByIndices(ctx context.Context, indices []int) ([]*entity.Book, error) {
	if len(indices) == 0 {
		return []*entity.Book{}, nil
	}

	ids, err := r.orderedBookIDs(ctx)
	if err != nil {
		return nil, err
	}
	wanted := make([]int, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(ids) {
			wanted = append(wanted, ids[i])
		}
	}

	byID, err := r.booksByIDs(ctx, wanted)
	if err != nil {
		return nil, err
	}
	books := make([]*entity.Book, 0, len(wanted))
	for _, id := range wanted {
		if b, ok := byID[id]; ok {
			books = append(books, b)
		}
	}
	return books, nil
}

func (r *Repository) GetBooks(ctx context.Context, offset, pageSize int) ([]*entity.Book, error) {
	rowOffset, ok := repository.RowOffset(offset, pageSize)
	if !ok {
		return []*entity.Book{}, nil
	}
	return r.queryBooks(ctx, selectBooks+` ORDER BY b.book_id LIMIT $1 OFFSET $2`, pageSize, rowOffset)
}

func (r *Repository) GetBooksByPublisher(ctx context.Context, name string) ([]*entity.Book, error) {
	return r.queryBooks(ctx, selectBooks+` WHERE b.publisher_name = $1 ORDER BY b.book_id`, name)
}

func (r *Repository) GetBooksByReleaseYear(ctx context.Context, year int) ([]*entity.Book, error) {
	return r.queryBooks(ctx, selectBooks+` WHERE b.release_year = $1 ORDER BY b.book_id`, year)
}

func (r *Repository) GetBooksByAuthorID(ctx context.Context, authorID int) ([]*entity.Book, error) {
	return r.queryBooks(ctx, selectBooks+`
		WHERE b.book_id IN (SELECT book_id FROM book_authors WHERE author_id = $1)
		ORDER BY b.book_id`, authorID)
}

func (r *Repository) CountBooks(ctx context.Context) (int, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int
	if err := r.db.QueryRow(timeoutCtx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return n, nil
}

func (r *Repository) orderedBookIDs(ctx context.Context) ([]int, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, `SELECT book_id FROM books ORDER BY book_id`)
	if err != nil {
		return nil, fmt.Errorf("list book ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("list book ids: %w", err)
	}
	return ids, nil
}

func (r *Repository) booksByIDs(ctx context.Context, ids []int) (map[int]*entity.Book, error) {
	byID := make(map[int]*entity.Book, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	books, err := r.queryBooks(ctx, selectBooks+` WHERE b.book_id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	for _, b := range books {
		byID[b.ID()] = b
	}
	return byID, nil
}

// queryBooks runs a books query and attaches each book's authors in the
// order they were linked.
func (r *Repository) queryBooks(ctx context.Context, sql string, args ...any) ([]*entity.Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	bookRows, err := pgx.CollectRows(rows, scanBookRow)
	if err != nil {
		return nil, fmt.Errorf("scan books: %w", err)
	}

	publishers := make(map[string]*entity.Publisher)
	books := make([]*entity.Book, 0, len(bookRows))
	for _, row := range bookRows {
		book, err := row.toEntity(publishers)
		if err != nil {
			return nil, fmt.Errorf("book %d: %w", row.ID, err)
		}
		books = append(books, book)
	}

	if err := r.attachAuthors(timeoutCtx, books); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *Repository) attachAuthors(ctx context.Context, books []*entity.Book) error {
	if len(books) == 0 {
		return nil
	}
	ids := make([]int, 0, len(books))
	byID := make(map[int]*entity.Book, len(books))
	for _, b := range books {
		ids = append(ids, b.ID())
		byID[b.ID()] = b
	}

	rows, err := r.db.Query(ctx, `
		SELECT ba.book_id, a.unique_id, a.full_name, a.average_rating,
		       a.text_reviews_count, a.ratings_count
		FROM book_authors ba
		JOIN authors a ON a.unique_id = ba.author_id
		WHERE ba.book_id = ANY($1)
		ORDER BY ba.book_id, ba.position
	`, ids)
	if err != nil {
		return fmt.Errorf("query book authors: %w", err)
	}
	defer rows.Close()

	authors := make(map[int]*entity.Author)
	for rows.Next() {
		var (
			bookID int
			row    authorRow
		)
		if err := rows.Scan(&bookID, &row.ID, &row.FullName, &row.AverageRating,
			&row.TextReviewsCount, &row.RatingsCount); err != nil {
			return fmt.Errorf("scan book author: %w", err)
		}
		a, ok := authors[row.ID]
		if !ok {
			if a, err = row.toEntity(); err != nil {
				return fmt.Errorf("author %d: %w", row.ID, err)
			}
			authors[row.ID] = a
		}
		a.AddBook(bookID)
		byID[bookID].AddAuthor(a)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate book authors: %w", err)
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

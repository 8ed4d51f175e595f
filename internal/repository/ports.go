package repository

import (
	"context"

	"bookcatalog/internal/entity"
)

// Repository is the operation set every storage backend provides.
//
// Lookups that find nothing return a nil entity or an empty slice with a nil
// error. Paged lookups treat offset as a page number: the window is
// [offset*pageSize, (offset+1)*pageSize) of the id-ordered collection.
type Repository interface {
	AddUser(ctx context.Context, user *entity.User) error
	GetUser(ctx context.Context, name string) (*entity.User, error)

	AddBook(ctx context.Context, book *entity.Book) error
	GetBook(ctx context.Context, id int) (*entity.Book, error)
	// GetBooksByIndices resolves positions in the id-ordered collection,
	// dropping positions that are out of range.
	GetBooksByIndices(ctx context.Context, indices []int) ([]*entity.Book, error)
	GetBooks(ctx context.Context, offset, pageSize int) ([]*entity.Book, error)
	GetBooksByPublisher(ctx context.Context, name string) ([]*entity.Book, error)
	GetBooksByReleaseYear(ctx context.Context, year int) ([]*entity.Book, error)
	GetBooksByAuthorID(ctx context.Context, authorID int) ([]*entity.Book, error)
	CountBooks(ctx context.Context) (int, error)

	// AddAuthor returns the stored author with the same id if there is one,
	// otherwise it stores and returns author.
	AddAuthor(ctx context.Context, author *entity.Author) (*entity.Author, error)
	GetAuthor(ctx context.Context, id int) (*entity.Author, error)
	GetAuthors(ctx context.Context, offset, pageSize int) ([]*entity.Author, error)
	CountAuthors(ctx context.Context) (int, error)

	// AddPublisher merges by name the same way AddAuthor merges by id.
	AddPublisher(ctx context.Context, publisher *entity.Publisher) (*entity.Publisher, error)
	GetPublisher(ctx context.Context, name string) (*entity.Publisher, error)

	AddReview(ctx context.Context, review *entity.Review) error
	GetReviewsByBookID(ctx context.Context, bookID int) ([]*entity.Review, error)

	// AddReadingList stores entry, or moves the existing entry for the same
	// user and book to entry's shelf. With isUpdate set only an existing
	// entry is touched: when there is none the call is a no-op.
	AddReadingList(ctx context.Context, entry *entity.ReadingList, isUpdate bool) error
	GetReadingListByUser(ctx context.Context, shelf entity.Shelf, user *entity.User) ([]*entity.ReadingList, error)
	GetReadingListByUserAndBookID(ctx context.Context, user *entity.User, bookID int) (*entity.ReadingList, error)
}

// Store hands out a Repository scoped to one unit of work. Writes made
// through it are published when fn returns nil and discarded otherwise,
// as far as the backend is able to.
type Store interface {
	Do(ctx context.Context, fn func(Repository) error) error
}

// Backend is a Repository that can also open units of work.
type Backend interface {
	Repository
	Store
}

// Package memory keeps the catalogue in process memory.
//
// Books, authors and publishers are held in id-ordered slices with map
// indexes beside them. The author, publisher and release-year indexes are
// filled when a book is added, from the attributes the book has at that
// moment; later changes to the book are not reflected in them.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/repository"
)

// Repository methods do no locking of their own. Concurrent callers go
// through Do, which runs one unit of work at a time. Entities handed out
// are the stored values: anything read after Do returns must be copied
// inside it (see Book.Clone).
type Repository struct {
	mu sync.Mutex

	books       []*entity.Book
	booksByID   map[int]*entity.Book
	byAuthor    map[int][]*entity.Book
	byPublisher map[string][]*entity.Book
	byYear      map[int][]*entity.Book

	authors     []*entity.Author
	authorsByID map[int]*entity.Author

	publishers map[string]*entity.Publisher

	users map[string]*entity.User

	reviews      map[int][]*entity.Review
	readingLists map[string][]*entity.ReadingList
}

var _ repository.Backend = (*Repository)(nil)

func NewRepository() *Repository {
	return &Repository{
		booksByID:    make(map[int]*entity.Book),
		byAuthor:     make(map[int][]*entity.Book),
		byPublisher:  make(map[string][]*entity.Book),
		byYear:       make(map[int][]*entity.Book),
		authorsByID:  make(map[int]*entity.Author),
		publishers:   make(map[string]*entity.Publisher),
		users:        make(map[string]*entity.User),
		reviews:      make(map[int][]*entity.Review),
		readingLists: make(map[string][]*entity.ReadingList),
	}
}

// Do runs fn with exclusive access to the repository. Writes made before fn
// fails are kept. Do is not reentrant.
func (r *Repository) Do(ctx context.Context, fn func(repository.Repository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r)
}

// AddUser keeps the first user stored under a name.
func (r *Repository) AddUser(_ context.Context, user *entity.User) error {
	if err := repository.CheckUser(user); err != nil {
		return err
	}
	if _, ok := r.users[user.Name()]; !ok {
		r.users[user.Name()] = user
	}
	return nil
}

func (r *Repository) GetUser(_ context.Context, name string) (*entity.User, error) {
	return r.users[strings.TrimSpace(name)], nil
}

// AddBook inserts book before any stored book with the same id. The id
// index points at the most recently added one.
func (r *Repository) AddBook(_ context.Context, book *entity.Book) error {
	if err := repository.CheckBook(book); err != nil {
		return err
	}
	r.books = insertSorted(r.books, book, entity.CompareBooks)
	r.booksByID[book.ID()] = book

	for _, author := range book.Authors() {
		r.byAuthor[author.ID()] = append(r.byAuthor[author.ID()], book)
	}
	if p := book.Publisher(); p != nil {
		r.byPublisher[p.Name()] = append(r.byPublisher[p.Name()], book)
	}
	if year := book.ReleaseYear(); year != nil {
		r.byYear[*year] = append(r.byYear[*year], book)
	}
	return nil
}

func (r *Repository) GetBook(_ context.Context, id int) (*entity.Book, error) {
	return r.booksByID[id], nil
}

func (r *Repository) GetBooksByIndices(_ context.Context, indices []int) ([]*entity.Book, error) {
	books := make([]*entity.Book, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(r.books) {
			books = append(books, r.books[i])
		}
	}
	return books, nil
}

func (r *Repository) GetBooks(_ context.Context, offset, pageSize int) ([]*entity.Book, error) {
	start, end, ok := repository.Page(len(r.books), offset, pageSize)
	if !ok {
		return []*entity.Book{}, nil
	}
	return slices.Clone(r.books[start:end]), nil
}

func (r *Repository) GetBooksByPublisher(_ context.Context, name string) ([]*entity.Book, error) {
	return cloneOrEmpty(r.byPublisher[name]), nil
}

func (r *Repository) GetBooksByReleaseYear(_ context.Context, year int) ([]*entity.Book, error) {
	return cloneOrEmpty(r.byYear[year]), nil
}

func (r *Repository) GetBooksByAuthorID(_ context.Context, authorID int) ([]*entity.Book, error) {
	return cloneOrEmpty(r.byAuthor[authorID]), nil
}

func (r *Repository) CountBooks(_ context.Context) (int, error) {
	return len(r.books), nil
}

func (r *Repository) AddAuthor(_ context.Context, author *entity.Author) (*entity.Author, error) {
	if author == nil {
		return nil, repository.Violation("author is nil")
	}
	if stored, ok := r.authorsByID[author.ID()]; ok {
		return stored, nil
	}
	r.authors = insertSorted(r.authors, author, entity.CompareAuthors)
	r.authorsByID[author.ID()] = author
	return author, nil
}

func (r *Repository) GetAuthor(_ context.Context, id int) (*entity.Author, error) {
	return r.authorsByID[id], nil
}

func (r *Repository) GetAuthors(_ context.Context, offset, pageSize int) ([]*entity.Author, error) {
	start, end, ok := repository.Page(len(r.authors), offset, pageSize)
	if !ok {
		return []*entity.Author{}, nil
	}
	return slices.Clone(r.authors[start:end]), nil
}

func (r *Repository) CountAuthors(_ context.Context) (int, error) {
	return len(r.authors), nil
}

func (r *Repository) AddPublisher(_ context.Context, publisher *entity.Publisher) (*entity.Publisher, error) {
	if publisher == nil {
		return nil, repository.Violation("publisher is nil")
	}
	if stored, ok := r.publishers[publisher.Name()]; ok {
		return stored, nil
	}
	r.publishers[publisher.Name()] = publisher
	return publisher, nil
}

func (r *Repository) GetPublisher(_ context.Context, name string) (*entity.Publisher, error) {
	return r.publishers[name], nil
}

// AddReview stores review and increments the text review counter of the
// stored book it refers to.
func (r *Repository) AddReview(_ context.Context, review *entity.Review) error {
	if err := repository.CheckReview(review); err != nil {
		return err
	}
	book, err := r.storedBook(review.Book())
	if err != nil {
		return err
	}
	if err := r.checkStoredUser(review.User()); err != nil {
		return err
	}

	r.reviews[book.ID()] = append(r.reviews[book.ID()], review)
	book.IncrementTextReviews()
	return nil
}

func (r *Repository) GetReviewsByBookID(_ context.Context, bookID int) ([]*entity.Review, error) {
	return cloneOrEmpty(r.reviews[bookID]), nil
}

// AddReadingList never stores two entries for one user and book. When an
// entry for the pair exists its shelf is set to entry's shelf. Otherwise
// the entry is appended, unless isUpdate is set: an update with nothing
// to update is a no-op.
func (r *Repository) AddReadingList(_ context.Context, entry *entity.ReadingList, isUpdate bool) error {
	if err := repository.CheckReadingList(entry); err != nil {
		return err
	}
	book, err := r.storedBook(entry.Book())
	if err != nil {
		return err
	}
	if err := r.checkStoredUser(entry.User()); err != nil {
		return err
	}

	name := entry.User().Name()
	existing := r.findReadingList(name, book.ID())
	switch {
	case existing == entry:
		return nil
	case existing != nil:
		return existing.SetShelf(entry.Shelf())
	case isUpdate:
		return nil
	}
	r.readingLists[name] = append(r.readingLists[name], entry)
	return nil
}

func (r *Repository) GetReadingListByUser(_ context.Context, shelf entity.Shelf, user *entity.User) ([]*entity.ReadingList, error) {
	entries := []*entity.ReadingList{}
	if user == nil {
		return entries, nil
	}
	for _, rl := range r.readingLists[user.Name()] {
		if rl.Shelf() == shelf {
			entries = append(entries, rl)
		}
	}
	return entries, nil
}

func (r *Repository) GetReadingListByUserAndBookID(_ context.Context, user *entity.User, bookID int) (*entity.ReadingList, error) {
	if user == nil {
		return nil, nil
	}
	return r.findReadingList(user.Name(), bookID), nil
}

func (r *Repository) findReadingList(userName string, bookID int) *entity.ReadingList {
	for _, rl := range r.readingLists[userName] {
		if rl.Book().ID() == bookID {
			return rl
		}
	}
	return nil
}

func (r *Repository) storedBook(book *entity.Book) (*entity.Book, error) {
	stored, ok := r.booksByID[book.ID()]
	if !ok {
		return nil, repository.Violation("book %d is not stored", book.ID())
	}
	return stored, nil
}

func (r *Repository) checkStoredUser(user *entity.User) error {
	if _, ok := r.users[user.Name()]; !ok {
		return repository.Violation("user %q is not stored", user.Name())
	}
	return nil
}

func insertSorted[T any](s []T, v T, compare func(a, b T) int) []T {
	i, _ := slices.BinarySearchFunc(s, v, compare)
	return slices.Insert(s, i, v)
}

func cloneOrEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return []T{}
	}
	return slices.Clone(s)
}

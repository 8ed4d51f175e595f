package ingest

import (
	"fmt"
	"os"
	"path/filepath"

	"bookcatalog/internal/entity"
)

const (
	AuthorsFile = "book_authors_excerpt.json"
	BooksFile   = "comic_books_excerpt.json"
	UsersFile   = "users.csv"
)

// Dataset is everything read from a data directory, ready for Populate.
type Dataset struct {
	Authors []*entity.Author
	Books   []*entity.Book
	Users   []*entity.User

	// SkippedAuthorRefs counts book author references whose id is missing
	// from the authors file.
	SkippedAuthorRefs int
}

// LoadDataset reads the authors, books and users files from dir. Authors
// are read first so that books can be attached to them.
func LoadDataset(dir string, hash PasswordHasher) (*Dataset, error) {
	ds := &Dataset{}

	err := readFile(filepath.Join(dir, AuthorsFile), func(f *os.File) (err error) {
		ds.Authors, err = ReadAuthors(f)
		return err
	})
	if err != nil {
		return nil, err
	}

	byID := make(map[int]*entity.Author, len(ds.Authors))
	for _, a := range ds.Authors {
		if _, ok := byID[a.ID()]; !ok {
			byID[a.ID()] = a
		}
	}

	err = readFile(filepath.Join(dir, BooksFile), func(f *os.File) (err error) {
		ds.Books, ds.SkippedAuthorRefs, err = ReadBooks(f, byID)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = readFile(filepath.Join(dir, UsersFile), func(f *os.File) (err error) {
		ds.Users, err = ReadUsers(f, hash)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ds, nil
}

func readFile(path string, fn func(*os.File) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := fn(f); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nil
}

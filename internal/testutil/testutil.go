package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/ingest"
	"bookcatalog/internal/repository"
	"bookcatalog/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

// Catalog ids used by NewCatalog.
const (
	LeGuinID     = 1
	PratchettID  = 2
	EarthseaID   = 10
	GuardsID     = 20
	DispossessID = 30
	TestUserName = "alice"
	TestPassword = "password1"
)

// NewCatalog returns a memory repository holding two authors, three
// books and the users alice and bob.
//
//	10 A Wizard of Earthsea  1968  Parnassus  Le Guin
//	20 Guards! Guards!       1989  Gollancz   Pratchett
//	30 The Dispossessed      1974  Harper     Le Guin
func NewCatalog(t *testing.T) *memory.Repository {
	t.Helper()

	leGuin := mustAuthor(t, LeGuinID, "Ursula K. Le Guin")
	pratchett := mustAuthor(t, PratchettID, "Terry Pratchett")

	ds := &ingest.Dataset{
		Authors: []*entity.Author{leGuin, pratchett},
		Books: []*entity.Book{
			NewBook(t, EarthseaID, "A Wizard of Earthsea", "Parnassus", 1968, leGuin),
			NewBook(t, GuardsID, "Guards! Guards!", "Gollancz", 1989, pratchett),
			NewBook(t, DispossessID, "The Dispossessed", "Harper", 1974, leGuin),
		},
		Users: []*entity.User{
			entity.NewUser(TestUserName, TestPassword),
			entity.NewUser("bob", "password2"),
		},
	}

	repo := memory.NewRepository()
	err := repo.Do(context.Background(), func(tx repository.Repository) error {
		_, err := ingest.Populate(context.Background(), tx, ds)
		return err
	})
	require.NoError(t, err)
	return repo
}

// NewBook builds a book wired to its publisher and authors the way the
// ingest reader does.
func NewBook(t *testing.T, id int, title, publisher string, year int, authors ...*entity.Author) *entity.Book {
	t.Helper()
	b, err := entity.NewBook(id, title)
	require.NoError(t, err)
	require.NoError(t, b.SetReleaseYear(year))
	b.SetPublisher(entity.NewPublisher(publisher))
	for _, a := range authors {
		b.AddAuthor(a)
		a.AddBook(id)
	}
	return b
}

func mustAuthor(t *testing.T, id int, name string) *entity.Author {
	t.Helper()
	a, err := entity.NewAuthor(id, name)
	require.NoError(t, err)
	return a
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body any) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]any
}

// Data returns the "data" member of a success envelope.
func (rr RecordResponse) Data() any {
	return rr.Body["data"]
}

// ErrorCode returns error.code from an error envelope, or "".
func (rr RecordResponse) ErrorCode() string {
	errBody, ok := rr.Body["error"].(map[string]any)
	if !ok {
		return ""
	}
	code, _ := errBody["code"].(string)
	return code
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]any
	if len(bodyBytes) > 0 {
		_ = json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"bookcatalog/internal/entity"
)

// PasswordHasher turns a plaintext password into the value stored on the
// user.
type PasswordHasher func(password string) (string, error)

const (
	userNameColumn = 1
	passwordColumn = 2
)

// ReadUsers parses the users CSV. The header row is skipped and every cell
// is trimmed. Passwords too short for a User are never hashed, so the user
// comes out without one. A nil hash stores passwords verbatim.
func ReadUsers(r io.Reader, hash PasswordHasher) ([]*entity.User, error) {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(3); err == nil && string(bom) == "\ufeff" {
		_, _ = br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read users header: %w", err)
	}

	var users []*entity.User
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read users: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(row) <= passwordColumn {
			return nil, fmt.Errorf("read users: line %d: expected at least %d columns, got %d", line, passwordColumn+1, len(row))
		}

		password := strings.TrimSpace(row[passwordColumn])
		if hash != nil && len(password) >= entity.MinPasswordLength {
			if password, err = hash(password); err != nil {
				return nil, fmt.Errorf("read users: line %d: hash password: %w", line, err)
			}
		}
		users = append(users, entity.NewUser(strings.TrimSpace(row[userNameColumn]), password))
	}
	return users, nil
}

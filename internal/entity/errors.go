package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a required entity field is malformed.
var ErrInvalidArgument = errors.New("invalid argument")

func invalid(field string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrInvalidArgument, field, err)
}

func clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func appendUnique(ids []int, id int) []int {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

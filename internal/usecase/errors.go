package usecase

import "errors"

var (
	ErrUnknownBook   = errors.New("unknown book")
	ErrUnknownUser   = errors.New("unknown user")
	ErrUnknownAuthor = errors.New("unknown author")
)

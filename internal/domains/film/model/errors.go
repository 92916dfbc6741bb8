package model

import (
	"fmt"

	"filmorate-backend/internal/shared"
)

// FilmError is a film domain error with a stable code.
// Kind is one of the shared error kinds and drives the HTTP status.
type FilmError struct {
	Code    string
	Message string
	Kind    error
}

func (e *FilmError) Error() string {
	return e.Message
}

func (e *FilmError) Unwrap() error {
	return e.Kind
}

func (e *FilmError) ErrorCode() string {
	return e.Code
}

var (
	ErrFilmNotFound = &FilmError{
		Code:    "FILM_NOT_FOUND",
		Message: "film not found",
		Kind:    shared.ErrNotFound,
	}

	// ErrLikerNotFound - the user placing or removing a like does not exist
	ErrLikerNotFound = &FilmError{
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
		Kind:    shared.ErrNotFound,
	}
)

func NewFilmNotFound(id int64) error {
	return fmt.Errorf("%w: id=%d", ErrFilmNotFound, id)
}

func NewLikerNotFound(id int64) error {
	return fmt.Errorf("%w: id=%d", ErrLikerNotFound, id)
}

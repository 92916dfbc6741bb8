package model

import (
	"fmt"

	"filmorate-backend/internal/shared"
)

// ReferenceError carries a stable code next to the shared error kind
type ReferenceError struct {
	Code    string
	Message string
	Kind    error
}

func (e *ReferenceError) Error() string {
	return e.Message
}

func (e *ReferenceError) Unwrap() error {
	return e.Kind
}

func (e *ReferenceError) ErrorCode() string {
	return e.Code
}

var (
	ErrGenreNotFound = &ReferenceError{
		Code:    "GENRE_NOT_FOUND",
		Message: "genre not found",
		Kind:    shared.ErrReferential,
	}

	ErrMpaNotFound = &ReferenceError{
		Code:    "MPA_NOT_FOUND",
		Message: "mpa rating not found",
		Kind:    shared.ErrReferential,
	}
)

func NewGenreNotFound(id int64) error {
	return fmt.Errorf("%w: id=%d", ErrGenreNotFound, id)
}

func NewMpaNotFound(id int64) error {
	return fmt.Errorf("%w: id=%d", ErrMpaNotFound, id)
}

package model

import (
	"fmt"

	"filmorate-backend/internal/shared"
)

// UserError is a user domain error with a stable code
type UserError struct {
	Code    string
	Message string
	Kind    error
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Kind
}

func (e *UserError) ErrorCode() string {
	return e.Code
}

var (
	ErrUserNotFound = &UserError{
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
		Kind:    shared.ErrNotFound,
	}

	ErrDuplicateLogin = &UserError{
		Code:    "DUPLICATE_LOGIN",
		Message: "login already taken",
		Kind:    shared.ErrConflict,
	}

	ErrSelfFriendship = &UserError{
		Code:    "SELF_FRIENDSHIP",
		Message: "user cannot befriend themselves",
		Kind:    shared.ErrValidation,
	}
)

func NewUserNotFound(id int64) error {
	return fmt.Errorf("%w: id=%d", ErrUserNotFound, id)
}

func NewDuplicateLogin(login string) error {
	return fmt.Errorf("%w: %q", ErrDuplicateLogin, login)
}

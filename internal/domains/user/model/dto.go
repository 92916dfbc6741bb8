package model

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"filmorate-backend/internal/shared/utils"
)

var loginPattern = regexp.MustCompile(`^\S+$`)

// CreateUserRequest - POST /users
type CreateUserRequest struct {
	Login    string  `json:"login"`
	Name     string  `json:"name,omitempty"`
	Email    string  `json:"email"`
	Birthday *string `json:"birthday,omitempty"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Login, loginRules()...),
		validation.Field(&r.Name, validation.Length(0, 255)),
		validation.Field(&r.Email, emailRules()...),
		validation.Field(&r.Birthday, birthdayRules()...),
	)
}

func (r CreateUserRequest) ToEntity() (*User, error) {
	birthday, err := utils.ParseOptionalDate(r.Birthday)
	if err != nil {
		return nil, err
	}
	return &User{
		Login:    r.Login,
		Name:     r.Name,
		Email:    r.Email,
		Birthday: birthday,
	}, nil
}

// UpdateUserRequest - PUT /users
type UpdateUserRequest struct {
	ID       int64   `json:"id"`
	Login    string  `json:"login"`
	Name     string  `json:"name,omitempty"`
	Email    string  `json:"email"`
	Birthday *string `json:"birthday,omitempty"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required.Error("id is required"), validation.Min(int64(1))),
		validation.Field(&r.Login, loginRules()...),
		validation.Field(&r.Name, validation.Length(0, 255)),
		validation.Field(&r.Email, emailRules()...),
		validation.Field(&r.Birthday, birthdayRules()...),
	)
}

func (r UpdateUserRequest) ToEntity() (*User, error) {
	birthday, err := utils.ParseOptionalDate(r.Birthday)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:       r.ID,
		Login:    r.Login,
		Name:     r.Name,
		Email:    r.Email,
		Birthday: birthday,
	}, nil
}

func loginRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("login is required"),
		validation.Match(loginPattern).Error("login must not contain whitespace"),
		validation.Length(1, 100),
	}
}

func emailRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("email is required"),
		is.EmailFormat.Error("invalid email format"),
	}
}

func birthdayRules() []validation.Rule {
	return []validation.Rule{
		validation.Date(utils.DateLayout).
			Max(time.Now().UTC()).
			Error("birthday must be in YYYY-MM-DD format").
			RangeError("birthday must not be in the future"),
	}
}

// UserResponse is the wire form of a user
type UserResponse struct {
	ID       int64   `json:"id"`
	Login    string  `json:"login"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Birthday *string `json:"birthday,omitempty"`
	Friends  []int64 `json:"friends"`
}

func (u *User) ToResponse() *UserResponse {
	friends := u.Friends
	if friends == nil {
		friends = []int64{}
	}
	return &UserResponse{
		ID:       u.ID,
		Login:    u.Login,
		Name:     u.Name,
		Email:    u.Email,
		Birthday: utils.FormatOptionalDate(u.Birthday),
		Friends:  friends,
	}
}

func ToResponses(users []*User) []*UserResponse {
	out := make([]*UserResponse, len(users))
	for i, u := range users {
		out[i] = u.ToResponse()
	}
	return out
}

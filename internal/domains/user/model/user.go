package model

import (
	"sort"
	"strings"
	"time"
)

// User is the canonical user record.
// Friends is derived from the friendship index on every read and is
// ignored on writes.
type User struct {
	ID       int64      `json:"id"`
	Login    string     `json:"login"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Birthday *time.Time `json:"birthday,omitempty"`
	Friends  []int64    `json:"friends,omitempty"`
}

// ApplyNameDefault sets Name to Login when it is blank
func (u *User) ApplyNameDefault() {
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
}

func (u *User) Clone() *User {
	c := *u
	if u.Birthday != nil {
		b := *u.Birthday
		c.Birthday = &b
	}
	if u.Friends != nil {
		c.Friends = make([]int64, len(u.Friends))
		copy(c.Friends, u.Friends)
	}
	return &c
}

// Merge applies an update: login and email are replaced, a blank name
// or a nil birthday keeps the stored value
func (u *User) Merge(upd *User) {
	u.Login = upd.Login
	u.Email = upd.Email
	if strings.TrimSpace(upd.Name) != "" {
		u.Name = upd.Name
	}
	if upd.Birthday != nil {
		b := *upd.Birthday
		u.Birthday = &b
	}
}

// SortByName orders users by name ascending with empty names last,
// ties broken by id
func SortByName(users []*User) {
	sort.SliceStable(users, func(i, j int) bool {
		a, b := users[i], users[j]
		if (a.Name == "") != (b.Name == "") {
			return b.Name == ""
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}

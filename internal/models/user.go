package models

import (
	"strings"
	"time"
)

// User is an account that owns calendars and authors events.
// PasswordHash is a bcrypt hash and must never leave the store in a record.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
}

// FullName joins first and last name, skipping whichever is empty.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Registration holds the plaintext input of a new account.
type Registration struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UserPatch is a partial update of a User. Password is plaintext and gets
// rehashed by the service. A patch carrying Email or Password must also carry
// CurrentPassword.
type UserPatch struct {
	Email           *string
	Password        *string
	FirstName       *string
	LastName        *string
	CurrentPassword *string
}

// Apply merges p into a copy of u. Password and CurrentPassword are not
// applied here.
func (p UserPatch) Apply(u User) User {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	return u
}

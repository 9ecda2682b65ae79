package models

import (
	"github.com/psommers/rolegate/internal/auth"
	"github.com/psommers/rolegate/internal/session"
)

// User is the signed-in user as exposed to handlers and templates.
type User struct {
	Username string
	Role     auth.Role
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role.IsAdmin()
}

// FromIdentity converts a session identity into a User.
func FromIdentity(id session.Identity) *User {
	return &User{
		Username: id.Username,
		Role:     id.Role,
	}
}

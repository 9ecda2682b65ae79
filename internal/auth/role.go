package auth

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Role is the access level attached to a user and their session.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleUser}

// ParseRole converts a role name into a Role.
func ParseRole(s string) (Role, error) {
	if !lo.Contains(Roles, Role(s)) {
		names := lo.Map(Roles, func(r Role, _ int) string { return r.String() })
		return "", fmt.Errorf("unknown role %q (valid roles: %s)", s, strings.Join(names, ", "))
	}
	return Role(s), nil
}

func (r Role) String() string {
	return string(r)
}

// IsAdmin reports whether r grants administrative access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// ErrInvalidCredentials is returned when the username is unknown or the password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// User is a single account known to a CredentialStore.
type User struct {
	Username string
	Password string
	Role     Role
}

// CredentialStore looks up accounts by username.
// Implementations must be safe for concurrent use and must not change after construction.
type CredentialStore interface {
	// Lookup returns the user with the given username.
	Lookup(username string) (User, bool)
	// Users returns all known users sorted by username.
	Users() []User
}

// StaticStore is an in-memory CredentialStore built once at startup.
type StaticStore struct {
	users map[string]User
}

var _ CredentialStore = (*StaticStore)(nil)

// NewStaticStore creates a store from a list of users.
// Every user needs a unique username, a non-empty password and a valid role.
func NewStaticStore(users []User) (*StaticStore, error) {
	if err := ValidateUsers(users); err != nil {
		return nil, err
	}

	return &StaticStore{
		users: lo.KeyBy(users, func(u User) string {
			return u.Username
		}),
	}, nil
}

// ValidateUsers checks a user list before it is turned into a store.
func ValidateUsers(users []User) error {
	if len(users) == 0 {
		return fmt.Errorf("at least one user is required")
	}

	for i, u := range users {
		if u.Username == "" {
			return fmt.Errorf("user %d: username is required", i)
		}
		if u.Password == "" {
			return fmt.Errorf("user %q: password is required", u.Username)
		}
		if _, err := ParseRole(string(u.Role)); err != nil {
			return fmt.Errorf("user %q: %w", u.Username, err)
		}
	}

	duplicates := lo.FindDuplicatesBy(users, func(u User) string {
		return u.Username
	})
	if len(duplicates) > 0 {
		return fmt.Errorf("duplicate username %q", duplicates[0].Username)
	}

	return nil
}

// Lookup returns the user with the given username.
func (s *StaticStore) Lookup(username string) (User, bool) {
	u, ok := s.users[username]
	return u, ok
}

// Users returns all known users sorted by username.
func (s *StaticStore) Users() []User {
	users := lo.Values(s.users)
	slices.SortFunc(users, func(a, b User) int {
		return strings.Compare(a.Username, b.Username)
	})
	return users
}

// Authenticate checks a username/password pair against the store.
// It returns ErrInvalidCredentials for unknown users, wrong passwords and empty input.
func Authenticate(store CredentialStore, username, password string) (User, error) {
	if username == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}

	u, ok := store.Lookup(username)
	if !ok {
		return User{}, ErrInvalidCredentials
	}

	if subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) != 1 {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

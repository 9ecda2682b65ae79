package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var demoUsers = []User{
	{Username: "admin", Password: "admin123", Role: RoleAdmin},
	{Username: "user", Password: "user123", Role: RoleUser},
}

func newDemoStore(t *testing.T) *StaticStore {
	t.Helper()
	store, err := NewStaticStore(demoUsers)
	require.NoError(t, err)
	return store
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)
	assert.True(t, r.IsAdmin())

	r, err = ParseRole("user")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, r)
	assert.False(t, r.IsAdmin())

	_, err = ParseRole("Admin")
	assert.Error(t, err)
	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestStaticStore_Lookup(t *testing.T) {
	store := newDemoStore(t)

	u, ok := store.Lookup("admin")
	require.True(t, ok)
	assert.Equal(t, User{Username: "admin", Password: "admin123", Role: RoleAdmin}, u)

	u, ok = store.Lookup("user")
	require.True(t, ok)
	assert.Equal(t, RoleUser, u.Role)

	_, ok = store.Lookup("nobody")
	assert.False(t, ok)
}

func TestStaticStore_Users(t *testing.T) {
	store, err := NewStaticStore([]User{
		{Username: "zoe", Password: "z", Role: RoleUser},
		{Username: "adam", Password: "a", Role: RoleAdmin},
		{Username: "mia", Password: "m", Role: RoleUser},
	})
	require.NoError(t, err)

	users := store.Users()
	require.Len(t, users, 3)
	assert.Equal(t, "adam", users[0].Username)
	assert.Equal(t, "mia", users[1].Username)
	assert.Equal(t, "zoe", users[2].Username)
}

func TestStaticStore_IsImmutable(t *testing.T) {
	input := []User{{Username: "adam", Password: "a", Role: RoleAdmin}}
	store, err := NewStaticStore(input)
	require.NoError(t, err)

	input[0].Role = RoleUser
	input[0].Password = "changed"

	u, ok := store.Lookup("adam")
	require.True(t, ok)
	assert.Equal(t, RoleAdmin, u.Role)
	assert.Equal(t, "a", u.Password)

	users := store.Users()
	users[0].Role = RoleUser
	u, _ = store.Lookup("adam")
	assert.Equal(t, RoleAdmin, u.Role)
}

func TestNewStaticStore_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		users  []User
		errMsg string
	}{
		{
			name:   "no users",
			users:  nil,
			errMsg: "at least one user is required",
		},
		{
			name:   "empty username",
			users:  []User{{Username: "", Password: "x", Role: RoleUser}},
			errMsg: "username is required",
		},
		{
			name:   "empty password",
			users:  []User{{Username: "a", Password: "", Role: RoleUser}},
			errMsg: `user "a": password is required`,
		},
		{
			name:   "unknown role",
			users:  []User{{Username: "a", Password: "x", Role: "root"}},
			errMsg: `unknown role "root"`,
		},
		{
			name:   "empty role",
			users:  []User{{Username: "a", Password: "x"}},
			errMsg: `unknown role ""`,
		},
		{
			name: "duplicate username",
			users: []User{
				{Username: "a", Password: "x", Role: RoleUser},
				{Username: "a", Password: "y", Role: RoleAdmin},
			},
			errMsg: `duplicate username "a"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewStaticStore(tt.users)
			require.Error(t, err)
			assert.Nil(t, store)
			assert.Contains(t, err.Error(), tt.errMsg)

			assert.EqualError(t, ValidateUsers(tt.users), err.Error())
		})
	}
}

func TestNewStaticStore_EveryAccountCanSignIn(t *testing.T) {
	store := newDemoStore(t)

	for _, u := range store.Users() {
		_, err := Authenticate(store, u.Username, u.Password)
		assert.NoError(t, err, u.Username)
	}
}

func TestAuthenticate_KnownUsers(t *testing.T) {
	store := newDemoStore(t)

	for _, want := range demoUsers {
		t.Run(want.Username, func(t *testing.T) {
			u, err := Authenticate(store, want.Username, want.Password)
			require.NoError(t, err)
			assert.Equal(t, want.Username, u.Username)
			assert.Equal(t, want.Role, u.Role)
		})
	}
}

func TestAuthenticate_Rejects(t *testing.T) {
	store := newDemoStore(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "admin", password: "wrong"},
		{name: "unknown user", username: "ghost", password: "admin123"},
		{name: "password of another user", username: "admin", password: "user123"},
		{name: "case mismatch username", username: "Admin", password: "admin123"},
		{name: "case mismatch password", username: "admin", password: "ADMIN123"},
		{name: "password prefix", username: "admin", password: "admin12"},
		{name: "password with trailing space", username: "admin", password: "admin123 "},
		{name: "empty password", username: "admin", password: ""},
		{name: "empty username", username: "", password: "admin123"},
		{name: "empty both", username: "", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := Authenticate(store, tt.username, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Equal(t, User{}, u)
		})
	}
}

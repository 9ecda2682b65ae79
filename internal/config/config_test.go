package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/psommers/rolegate/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", cfg.Listen)
	assert.Equal(t, "rolegate_session", cfg.SessionName)
	assert.Equal(t, 3600, cfg.SessionMaxAge)
	assert.False(t, cfg.SecureCookies)
	assert.Equal(t, DefaultUsers(), cfg.Users)
	assert.Len(t, cfg.SessionKey, 64, "a random hex key should be generated")
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
listen: "127.0.0.1:8080"
session_key: "super-secret"
session_name: "demo"
session_max_age: 60
secure_cookies: true
users:
  - username: Alice
    password: wonderland
    role: admin
  - username: bob
    password: builder
    role: user
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, "super-secret", cfg.SessionKey)
	assert.Equal(t, "demo", cfg.SessionName)
	assert.Equal(t, 60, cfg.SessionMaxAge)
	assert.True(t, cfg.SecureCookies)
	assert.Equal(t, []UserConfig{
		{Username: "Alice", Password: "wonderland", Role: "admin"},
		{Username: "bob", Password: "builder", Role: "user"},
	}, cfg.Users)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("ROLEGATE_LISTEN", "127.0.0.1:9999")
	t.Setenv("ROLEGATE_SESSION_KEY", "from-env")

	cfg, err := Load(writeConfig(t, `listen: "0.0.0.0:1234"`))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.Listen)
	assert.Equal(t, "from-env", cfg.SessionKey)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestLoad_InvalidUsers(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name: "unknown role",
			content: `
users:
  - username: eve
    password: secret
    role: superuser
`,
			errMsg: `unknown role "superuser"`,
		},
		{
			name: "empty password",
			content: `
users:
  - username: eve
    role: user
`,
			errMsg: "password is required",
		},
		{
			name: "empty username",
			content: `
users:
  - password: secret
    role: user
`,
			errMsg: "username is required",
		},
		{
			name: "duplicate username",
			content: `
users:
  - username: eve
    password: one
    role: user
  - username: eve
    password: two
    role: admin
`,
			errMsg: `duplicate username "eve"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Listen:        ":5000",
			SessionKey:    "key",
			SessionName:   "session",
			SessionMaxAge: 10,
			Users:         DefaultUsers(),
		}
	}

	assert.NoError(t, validateConfig(valid()))
	assert.Error(t, validateConfig(nil))

	c := valid()
	c.Listen = ""
	assert.Error(t, validateConfig(c))

	c = valid()
	c.SessionName = ""
	assert.Error(t, validateConfig(c))

	c = valid()
	c.SessionMaxAge = -1
	assert.Error(t, validateConfig(c))

	c = valid()
	c.Users = nil
	assert.Error(t, validateConfig(c))
}

func TestGenerateSessionKey(t *testing.T) {
	a, err := GenerateSessionKey()
	require.NoError(t, err)
	b, err := GenerateSessionKey()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestAuthUsers(t *testing.T) {
	c := &Config{Users: DefaultUsers()}

	assert.Equal(t, []auth.User{
		{Username: "admin", Password: "admin123", Role: auth.RoleAdmin},
		{Username: "user", Password: "user123", Role: auth.RoleUser},
	}, c.AuthUsers())

	store, err := auth.NewStaticStore(c.AuthUsers())
	require.NoError(t, err)
	_, ok := store.Lookup("admin")
	assert.True(t, ok)
}

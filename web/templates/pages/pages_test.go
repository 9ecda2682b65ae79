package pages

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/psommers/rolegate/internal/api/models"
	"github.com/psommers/rolegate/internal/auth"
	"github.com/psommers/rolegate/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestIndex(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		html := render(t, Index(nil, nil))
		assert.Contains(t, html, "<h1>RBAC Demo</h1>")
		assert.Contains(t, html, `href="/login"`)
		assert.NotContains(t, html, `href="/logout"`)
	})

	t.Run("signed in", func(t *testing.T) {
		html := render(t, Index(&models.User{Username: "user", Role: auth.RoleUser}, nil))
		assert.Contains(t, html, "Signed in as <strong>user</strong> (user)")
		assert.Contains(t, html, `href="/logout"`)
	})
}

func TestLogin(t *testing.T) {
	html := render(t, Login(nil, `a"b`, []session.Flash{
		{Category: session.CategoryError, Message: "Invalid credentials"},
	}))

	assert.Contains(t, html, `<form class="login-form" method="post" action="/login">`)
	assert.Contains(t, html, `name="username"`)
	assert.Contains(t, html, `name="password"`)
	assert.Contains(t, html, `value="a&#34;b"`)
	assert.Contains(t, html, `<div class="flash flash-error" role="alert">Invalid credentials</div>`)
}

func TestDashboard(t *testing.T) {
	t.Run("admin", func(t *testing.T) {
		html := render(t, Dashboard(&models.User{Username: "admin", Role: auth.RoleAdmin}, nil))
		assert.Contains(t, html, `<span class="username">admin</span>`)
		assert.Contains(t, html, `<span class="role">admin</span>`)
		assert.Contains(t, html, "Admin Panel")
		assert.NotContains(t, html, "User Area")
	})

	t.Run("user", func(t *testing.T) {
		html := render(t, Dashboard(&models.User{Username: "user", Role: auth.RoleUser}, nil))
		assert.Contains(t, html, `<span class="role">user</span>`)
		assert.Contains(t, html, "User Area")
		assert.NotContains(t, html, "Admin Panel")
	})

	t.Run("escapes username", func(t *testing.T) {
		html := render(t, Dashboard(&models.User{Username: "<script>", Role: auth.RoleUser}, nil))
		assert.NotContains(t, html, "<script>")
		assert.Contains(t, html, "&lt;script&gt;")
	})
}

func TestFlashesRenderedInOrder(t *testing.T) {
	html := render(t, Index(nil, []session.Flash{
		{Category: session.CategorySuccess, Message: "first"},
		{Category: session.CategoryInfo, Message: "second"},
	}))

	first := bytes.Index([]byte(html), []byte("flash-success"))
	second := bytes.Index([]byte(html), []byte("flash-info"))
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
}

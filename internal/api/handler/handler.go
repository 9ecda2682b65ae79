package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	apiauth "github.com/psommers/rolegate/internal/api/auth"
	"github.com/psommers/rolegate/internal/api/models"
	"github.com/psommers/rolegate/internal/auth"
	"github.com/psommers/rolegate/internal/session"
	"github.com/psommers/rolegate/web/templates/pages"
)

// Route paths used for redirects.
const (
	PathIndex     = "/"
	PathLogin     = "/login"
	PathDashboard = "/dashboard"
	PathLogout    = "/logout"
)

type Handler struct {
	store auth.CredentialStore
}

func New(store auth.CredentialStore) *Handler {
	return &Handler{
		store: store,
	}
}

// Index renders the landing page for anyone.
func (h *Handler) Index(c *gin.Context) {
	sess := session.Default(c)
	h.render(c, sess, http.StatusOK, func(flashes []session.Flash) templ.Component {
		return pages.Index(sessionUser(sess), flashes)
	})
}

// LoginForm renders the login form regardless of whether the visitor is signed in.
func (h *Handler) LoginForm(c *gin.Context) {
	sess := session.Default(c)
	h.render(c, sess, http.StatusOK, func(flashes []session.Flash) templ.Component {
		return pages.Login(sessionUser(sess), "", flashes)
	})
}

// Login checks the submitted credentials and signs the visitor in.
func (h *Handler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	sess := session.Default(c)

	user, err := auth.Authenticate(h.store, username, password)
	if err != nil {
		log.Info("Login failed", "username", username, "client", c.ClientIP())
		sess.AddFlash(session.CategoryError, "Invalid credentials")
		h.render(c, sess, http.StatusOK, func(flashes []session.Flash) templ.Component {
			return pages.Login(sessionUser(sess), username, flashes)
		})
		return
	}

	sess.Set(session.Identity{Username: user.Username, Role: user.Role})
	sess.AddFlash(session.CategorySuccess, "Login successful!")
	if err := sess.Save(); err != nil {
		log.Error("Failed to save session", "error", err)
		c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
		return
	}

	log.Info("User logged in", "username", user.Username, "role", user.Role)
	c.Redirect(http.StatusFound, PathDashboard)
}

// Dashboard renders the protected page. RequireAuth must run first.
func (h *Handler) Dashboard(c *gin.Context) {
	user := apiauth.CurrentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, PathLogin)
		return
	}

	sess := session.Default(c)
	h.render(c, sess, http.StatusOK, func(flashes []session.Flash) templ.Component {
		return pages.Dashboard(user, flashes)
	})
}

// Logout clears the session. Anonymous visitors get the same response.
func (h *Handler) Logout(c *gin.Context) {
	sess := session.Default(c)
	if id, ok := sess.Get(); ok {
		log.Info("User logged out", "username", id.Username)
	}

	sess.Clear()
	sess.AddFlash(session.CategoryInfo, "Logged out successfully")
	if err := sess.Save(); err != nil {
		log.Error("Failed to save session", "error", err)
		c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
		return
	}
	c.Redirect(http.StatusFound, PathIndex)
}

// render drains pending flashes into the page and saves the session before writing the body.
func (h *Handler) render(c *gin.Context, sess session.Session, status int, page func([]session.Flash) templ.Component) {
	flashes := sess.Flashes()
	if err := sess.Save(); err != nil {
		log.Error("Failed to save session", "error", err)
		c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := page(flashes).Render(c.Request.Context(), c.Writer); err != nil {
		log.Error("Failed to render page", "path", c.FullPath(), "error", err)
	}
}

func sessionUser(sess session.Session) *models.User {
	id, ok := sess.Get()
	if !ok {
		return nil
	}
	return models.FromIdentity(id)
}

package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/psommers/rolegate/internal/api/models"
	"github.com/psommers/rolegate/internal/session"
)

// ContextUserKey is the gin context key holding the *models.User set by RequireAuth.
const ContextUserKey = "user"

// RequireAuth returns a middleware that redirects anonymous visitors to loginPath.
func RequireAuth(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.Default(c)
		id, ok := sess.Get()
		if !ok {
			sess.AddFlash(session.CategoryError, "Please login first")
			if err := sess.Save(); err != nil {
				c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
				return
			}
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, models.FromIdentity(id))
		c.Next()
	}
}

// CurrentUser returns the user stored by RequireAuth, or nil.
func CurrentUser(c *gin.Context) *models.User {
	user, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	u, _ := user.(*models.User)
	return u
}

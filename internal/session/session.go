// Package session wraps the signed cookie session behind an explicit interface.
package session

import (
	"encoding/gob"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/psommers/rolegate/internal/auth"
	"github.com/psommers/rolegate/internal/config"
)

const (
	keyUsername = "username"
	keyRole     = "role"
)

// Category classifies a flash message.
type Category string

const (
	CategorySuccess Category = "success"
	CategoryError   Category = "error"
	CategoryInfo    Category = "info"
)

// Flash is a one-time message shown on the next rendered page.
type Flash struct {
	Category Category
	Message  string
}

// Identity is the authenticated user stored in the session.
type Identity struct {
	Username string
	Role     auth.Role
}

func init() {
	gob.Register(Flash{})
}

// Session is the per-client state of a request.
// Mutations are buffered until Save is called.
type Session interface {
	// Get returns the signed-in identity, if any.
	Get() (Identity, bool)
	// Set marks the client as signed in.
	Set(id Identity)
	// Clear removes the identity and any other stored values.
	Clear()
	// AddFlash queues a message for the next rendered page.
	AddFlash(category Category, message string)
	// Flashes returns and removes all queued messages.
	Flashes() []Flash
	// Save writes pending changes to the response cookie.
	Save() error
}

// NewStore creates the signed cookie store described by cfg.
func NewStore(cfg *config.Config) sessions.Store {
	store := cookie.NewStore([]byte(cfg.SessionKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

// Middleware attaches a cookie backed session to every request.
func Middleware(cfg *config.Config) gin.HandlerFunc {
	return sessions.Sessions(cfg.SessionName, NewStore(cfg))
}

// Default returns the session of the current request.
// Middleware must be installed on the router.
func Default(c *gin.Context) Session {
	return &cookieSession{s: sessions.Default(c)}
}

type cookieSession struct {
	s sessions.Session
}

func (cs *cookieSession) Get() (Identity, bool) {
	username, ok := cs.s.Get(keyUsername).(string)
	if !ok || username == "" {
		return Identity{}, false
	}
	roleName, ok := cs.s.Get(keyRole).(string)
	if !ok {
		return Identity{}, false
	}
	role, err := auth.ParseRole(roleName)
	if err != nil {
		return Identity{}, false
	}
	return Identity{Username: username, Role: role}, true
}

func (cs *cookieSession) Set(id Identity) {
	cs.s.Set(keyUsername, id.Username)
	cs.s.Set(keyRole, id.Role.String())
}

func (cs *cookieSession) Clear() {
	cs.s.Clear()
}

func (cs *cookieSession) AddFlash(category Category, message string) {
	cs.s.AddFlash(Flash{Category: category, Message: message})
}

func (cs *cookieSession) Flashes() []Flash {
	raw := cs.s.Flashes()
	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}

func (cs *cookieSession) Save() error {
	return cs.s.Save()
}

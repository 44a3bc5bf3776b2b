package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"token_creator/internal/app/port"
	"token_creator/internal/infrastructure/configloader"
)

const (
	sessionIDKey = "session_id"
	sessionView  = "session_view"
)

// SessionMiddleware resolves the visitor's view from the session cookie, creating one
// for new or expired sessions, and refreshes the cookie.
func SessionMiddleware(registry port.SessionRegistry, cfg configloader.SessionConfig) gin.HandlerFunc {
	maxAge := cfg.TTLMinutes * 60
	return func(c *gin.Context) {
		current, _ := c.Cookie(cfg.CookieName)
		id, view := registry.Acquire(current)

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.CookieName, id, maxAge, "/", "", cfg.CookieSecure, true)

		c.Set(sessionIDKey, id)
		c.Set(sessionView, view)
		c.Next()
	}
}

func viewFrom(c *gin.Context) port.TokenCreatorView {
	return c.MustGet(sessionView).(port.TokenCreatorView)
}

func sessionIDFrom(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

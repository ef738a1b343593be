package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/brand-studio-api/internal/middleware"
)

// Dashboard sends the caller to the area that matches their role. It runs
// behind OptionalSession.
func Dashboard(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	switch {
	case !ok:
		c.Redirect(http.StatusFound, "/login")
	case sess.IsAdmin():
		c.Redirect(http.StatusFound, "/admin")
	case sess.IsClient():
		c.Redirect(http.StatusFound, "/client")
	default:
		c.Redirect(http.StatusFound, "/team")
	}
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/venuslabs/venus-backend/internal/session"
)

const (
	errNotLoggedIn  = "not logged in."
	errTokenInvalid = "invalid or expired token."
)

// tokenVerifier is the slice of session.Manager the gateway needs.
type tokenVerifier interface {
	Verify(raw string) (string, error)
}

// Auth is the single enforcement point for owner scoping: it validates the
// session cookie and sets "userID" in the gin context. Handlers behind it
// trust that identity without second-guessing.
func Auth(sessions tokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(session.CookieName)
		if err != nil || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": errNotLoggedIn})
			return
		}

		userID, err := sessions.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": errTokenInvalid})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

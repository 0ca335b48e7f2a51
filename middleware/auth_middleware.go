package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vladpolisuk/sport-shop-client/models"
)

const UserContextKey = "userID"

// Session is the slice of the session service the guards need.
type Session interface {
	Token() string
	CurrentUser() *models.User
	IsAdmin() bool
}

// SessionRequired rejects requests without an authenticated session and
// stores the username in the context for downstream handlers.
func SessionRequired(session Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.Token() == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		user := session.CurrentUser()
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		c.Set(UserContextKey, user.Username)
		c.Next()
	}
}

// AdminRequired rejects sessions without the ADMIN role. Runs after
// SessionRequired.
func AdminRequired(session Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// GetUserID returns the username stored by SessionRequired.
func GetUserID(c *gin.Context) (string, error) {
	val, exists := c.Get(UserContextKey)
	if !exists {
		return "", errors.New("user ID not found in context")
	}
	userID, ok := val.(string)
	if !ok || userID == "" {
		return "", errors.New("user ID has invalid type in context")
	}
	return userID, nil
}

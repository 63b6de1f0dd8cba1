package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/career-compass/internal/identity"
	"github.com/justsurfingit/career-compass/internal/tracker"
)

const userContextKey = "current_user"

// RequireAuth verifies the bearer token and stashes the resolved user in the
// request context. Tracker routes sit behind this.
func RequireAuth(gate *identity.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization header"})
			return
		}
		user, err := gate.VerifyToken(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the identity RequireAuth resolved, or nil.
func CurrentUser(c *gin.Context) *identity.UserIdentity {
	if v, ok := c.Get(userContextKey); ok {
		if user, ok := v.(*identity.UserIdentity); ok {
			return user
		}
	}
	return nil
}

// RequireSession rejects tokens that do not belong to the user whose session
// the controller holds. A valid token for some other account must not reach
// the signed-in user's collection.
func RequireSession(controller *tracker.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || controller.UserID() != user.UID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Session does not belong to this user"})
			return
		}
		c.Next()
	}
}

// HealthCheck is GET /health.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

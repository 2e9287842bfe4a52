package middleware

import (
	"net/http"
	"strings"

	"tutorlink/messaging/internal/auth"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// RequireAuth resolves the bearer credential on every request and stores
// the identity in the gin context. Missing or invalid credentials abort
// with 401; nothing is retried.
func RequireAuth(a *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
			return
		}

		identity, err := a.Authenticate(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// Identity returns the authenticated caller set by RequireAuth.
func Identity(c *gin.Context) *auth.Identity {
	v, _ := c.Get(identityKey)
	return v.(*auth.Identity)
}

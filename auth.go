package main

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
)

// ========== Authentication ==========

// identityKey is the gin context key holding the authenticated user id.
const identityKey = "identity"

// authRequired rejects requests that do not resolve to an authenticated
// identity before any pipeline work runs. Tokens are opaque per-user bearer
// tokens resolved against the profile store; without a store the only
// accepted credential is the configured static API token.
func authRequired(apiToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(401, gin.H{"error": "missing bearer token"})
			return
		}

		var userID string
		if profilesCollection != nil {
			userID = userIDForToken(c.Request.Context(), token)
		} else if apiToken != "" && subtle.ConstantTimeCompare([]byte(token), []byte(apiToken)) == 1 {
			userID = token
		}
		if userID == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid token"})
			return
		}

		c.Set(identityKey, userID)
		c.Next()
	}
}

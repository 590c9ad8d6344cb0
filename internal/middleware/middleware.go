package middleware

import (
	"net/http"
	"strings"

	"conduit/internal/auth"

	"github.com/gin-gonic/gin"
)

// RequireAuth rejects requests without a valid token. The header scheme
// is "Authorization: Token <jwt>"; "Bearer" is accepted as an alias.
func RequireAuth(tm auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"errors": gin.H{"message": []string{"missing or malformed authorization header"}},
			})
			c.Abort()
			return
		}

		userID, err := tm.ResolveIdentity(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"errors": gin.H{"message": []string{"invalid or expired token"}},
			})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("token", tokenString)
		c.Next()
	}
}

// OptionalAuth resolves the caller's identity when a valid token is
// present and leaves the request anonymous otherwise. A token that is
// present but invalid is still a 401: silently downgrading it would
// make "following"/"favorited" flags quietly wrong.
func OptionalAuth(tm auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c)
		if !ok {
			c.Next()
			return
		}

		userID, err := tm.ResolveIdentity(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"errors": gin.H{"message": []string{"invalid or expired token"}},
			})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("token", tokenString)
		c.Next()
	}
}

func extractToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	scheme := strings.ToLower(parts[0])
	if scheme != "token" && scheme != "bearer" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// CallerID returns the authenticated user's id from the gin context.
func CallerID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

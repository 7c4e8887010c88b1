package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"backend/models"
	"backend/utils"
)

// AuthMiddleware requires a valid bearer token whose role claim is one of
// roles. The user id and role land in the context for handlers.
func AuthMiddleware(issuer *utils.TokenIssuer, roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[string(r)] = true
	}
	return func(c *gin.Context) {
		token, err := c.Cookie("token")
		if err != nil {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token not provided"})
				c.Abort()
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format"})
				c.Abort()
				return
			}
			token = parts[1]
		}

		claims, err := issuer.ValidateToken(token)
		if err != nil || !allowed[claims.Role] {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization token"})
			c.Abort()
			return
		}

		c.Set("userID", claims.ID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// APIKeyMiddleware guards the scan surface with a static key. An empty
// configured key disables the surface entirely.
func APIKeyMiddleware(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scan API not configured"})
			c.Abort()
			return
		}
		if c.GetHeader("X-API-Key") != key {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing API key"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"clinicvoice/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware requires an HS256 bearer token signed with secret.
// With an empty secret the API is left open.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, err := utils.ExtractSubject(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("apiClient", subject)
		c.Next()
	}
}

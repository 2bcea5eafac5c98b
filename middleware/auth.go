package middleware

import (
	"net/http"
	"strings"

	userRepo "courtflow/database/repository/user"
	"courtflow/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware validates the bearer token and loads the caller's
// account, exposing userID and role to downstream handlers. Token issuance
// lives in the identity service, not here.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
			return
		}

		u, err := users.GetByID(c.Request.Context(), userID)
		if err != nil || u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown account"})
			return
		}

		c.Set("userID", u.ID)
		c.Set("role", u.Role)
		c.Next()
	}
}

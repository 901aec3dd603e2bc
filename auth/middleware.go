package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// RefreshCookie is the name of the httpOnly cookie carrying the refresh token.
const RefreshCookie = "refreshToken"

// RequireToken verifies the bearer access token in the Authorization header
// and stores the user id in the context. On any failure the chain is aborted
// with a 401.
func RequireToken(ts *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be in format: Bearer {token}"})
			return
		}

		userID, err := ts.VerifyAccessToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// RequireRefreshToken verifies the refresh cookie against the refresh secret
// and stores the user id in the context.
func RequireRefreshToken(ts *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(RefreshCookie)
		if err != nil || cookie == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "refresh token is required"})
			return
		}

		userID, err := ts.VerifyRefreshToken(cookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// GetUserID extracts the authenticated user id set by one of the middlewares.
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

package middleware

import (
	"net/http"
	"strings"

	"food-scanner/internal/core/auth"

	"github.com/gin-gonic/gin"
)

// gin context 鍵
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
)

// RequireAuth 驗證 Bearer token 並將使用者身份寫入 context
func RequireAuth(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing or malformed authorization header",
				"code":  "UNAUTHORIZED",
			})
			return
		}

		claims, err := authService.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
				"code":  "UNAUTHORIZED",
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

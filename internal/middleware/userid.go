package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/pkf/internal/pkg/errcode"
	"github.com/xxxsen/pkf/internal/pkg/response"
)

const userIDKey = "user_id"

// UserID reads the caller identity from the X-User-Id header set by
// the fronting auth layer. Requests without it are rejected.
func UserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if userID == "" {
			response.Error(c, errcode.ErrUnauthorized, "missing user identity")
			c.Abort()
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

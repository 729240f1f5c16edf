package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Authorizer validates a bearer token for one session.
type Authorizer interface {
	Authorize(token, sessionID string) error
}

// AuthMiddleware requires a bearer token issued for the :sessionID path param.
func AuthMiddleware(auth Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status_code": http.StatusUnauthorized,
				"error":       "missing bearer token",
			})
			return
		}
		if err := auth.Authorize(token, c.Param("sessionID")); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status_code": http.StatusUnauthorized,
				"error":       "unauthorized",
			})
			return
		}
		c.Next()
	}
}

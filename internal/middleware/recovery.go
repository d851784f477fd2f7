package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront-api/pkg/response"
)

// Recovery converts panics into a generic 500 response. The details go to
// the log, never to the client.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		LogError("panic recovered: %v", recovered)
		response.InternalError(c, "internal server error")
		c.Abort()
	})
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techsolutions/billing-service/internal/types"
)

// CORSMiddleware answers preflight requests for the invoice routes.
// The API only serves GET, POST and PUT.
func CORSMiddleware(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+types.HeaderRequestID)
	c.Writer.Header().Set("Access-Control-Max-Age", "86400")

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusOK)
		return
	}
	c.Next()
}

package middleware

import (
	"github.com/gin-gonic/gin"
)

// SSEHeaders prepares a response for server-sent-event streaming. The event
// payloads themselves are written by the progress broadcaster.
func SSEHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no")
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Next()
	}
}

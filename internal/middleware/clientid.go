package middleware

import "github.com/gin-gonic/gin"

// ClientIDHeader carries the caller's anonymous identity, the service-side
// counterpart of a per-browser storage partition.
const ClientIDHeader = "X-Client-ID"

const contextClientIDKey = "clientID"

// ClientID extracts the per-client identity header for downstream handlers.
func ClientID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader(ClientIDHeader); id != "" {
			c.Set(contextClientIDKey, id)
		}
		c.Next()
	}
}

// ClientIDValue returns the extracted client id, or an empty string for
// anonymous callers.
func ClientIDValue(c *gin.Context) string {
	return c.GetString(contextClientIDKey)
}

// File: internal/common/context_helpers.go
package common

import (
	"github.com/gin-gonic/gin"
)

// GetSessionIDFromContext retrieves the session id resolved by the session middleware.
// Returns an empty string if the middleware did not run.
func GetSessionIDFromContext(c *gin.Context) string {
	val, exists := c.Get(SessionIDKey)
	if !exists {
		return ""
	}
	sid, ok := val.(string)
	if !ok {
		return ""
	}
	return sid
}

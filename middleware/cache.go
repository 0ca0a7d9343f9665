package middleware

import (
	"github.com/gin-gonic/gin"
)

// NoCache forbids intermediaries from caching payment responses.
func NoCache() func(c *gin.Context) {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate, private")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Next()
	}
}

package middleware

import "github.com/gin-gonic/gin"

// NoStore keeps browsers and proxies from caching per-student data.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Header("Pragma", "no-cache")
		c.Next()
	}
}

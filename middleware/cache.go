package middleware

import "github.com/gin-gonic/gin"

// CacheControlMiddleware sets a Cache-Control header on everything the
// group serves. Only for unauthenticated routes; user-scoped responses
// must never be publicly cacheable.
func CacheControlMiddleware(maxAge string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age="+maxAge)
		c.Next()
	}
}

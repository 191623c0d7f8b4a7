package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Browser traffic in production reaches this service through the platform
// edge, which enforces its own CORS policy. Only local front-ends talk to
// control-api directly, so the allow list is the loopback hosts on any port.
var corsAllowedHosts = []string{
	"http://localhost",
	"http://127.0.0.1",
}

const (
	corsAllowedMethods = "GET, POST, PATCH, DELETE, OPTIONS"
	corsAllowedHeaders = "Authorization, Content-Type, X-Request-Id"
)

// CORSMiddleware answers preflight requests and marks responses for the
// allowed origins.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin := c.Request.Header.Get("Origin"); corsOriginAllowed(origin) {
			header := c.Writer.Header()
			header.Set("Access-Control-Allow-Origin", origin)
			header.Set("Access-Control-Allow-Credentials", "true")
			header.Set("Access-Control-Allow-Methods", corsAllowedMethods)
			header.Set("Access-Control-Allow-Headers", corsAllowedHeaders)
			header.Set("Access-Control-Expose-Headers", requestIDHeader)
			header.Set("Access-Control-Max-Age", "3600")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func corsOriginAllowed(origin string) bool {
	for _, host := range corsAllowedHosts {
		if origin == host || strings.HasPrefix(origin, host+":") {
			return true
		}
	}
	return false
}

package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kgeyst.com/pictale/pkg/common"
)

const (
	contextKeyRequestID = "request_id"
	contextKeySession   = "session"
	sessionCookieName   = "pictale_session"
	sessionCookieMaxAge = 24 * 60 * 60
)

// requestID generates or passes through X-Request-Id, stores it in the gin context and echoes it in the response.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get("X-Request-Id")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(contextKeyRequestID, rid)
		c.Writer.Header().Set("X-Request-Id", rid)
		c.Next()
	}
}

// requestLogger writes a structured access log entry (method, path, status, latency, IP) per request.
func requestLogger(logger common.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()
		entry := logger.WithFields(common.Fields{
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.ClientIP(),
			"request_id": c.GetString(contextKeyRequestID),
		})
		if len(c.Errors) > 0 {
			entry.WithFields(common.Fields{"errors": c.Errors.String()}).Log("request completed with errors")
		} else {
			entry.Log("request completed")
		}
	}
}

// session identifies the browser session with a cookie, so that a user can't start a second story while the first
// one is still being written.
func session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookieName)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookieName, id, sessionCookieMaxAge, "/", "", false, true)
		}
		c.Set(contextKeySession, id)
		c.Next()
	}
}

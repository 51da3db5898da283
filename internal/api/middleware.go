package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ContextRequestIDKey is the gin context key holding the request id.
const ContextRequestIDKey = "requestID"

// RequestIDHeader is echoed back on every response so clients can correlate
// logs with failed calls.
const RequestIDHeader = "X-Request-Id"

// RequestID assigns each request a uuid, unless the caller already sent one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, reqID)
		c.Header(RequestIDHeader, reqID)
		c.Next()
	}
}

// AccessLog logs method, path, status and latency for every request.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		entry := log.WithFields(log.Fields{
			"method":    c.Request.Method,
			"path":      path,
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"requestId": c.GetString(ContextRequestIDKey),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}
		if c.Writer.Status() >= 500 {
			entry.Error("request failed")
		} else {
			entry.Info("request")
		}
	}
}

// respondError writes the uniform {message} error body of the API.
func respondError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"message": message})
}

// respondInternal logs the real error server-side and returns a generic
// message, never the underlying failure.
func respondInternal(c *gin.Context, err error) {
	log.WithFields(log.Fields{
		"requestId": c.GetString(ContextRequestIDKey),
		"path":      c.Request.URL.Path,
	}).WithError(err).Error("internal error")
	c.Error(err)
	respondError(c, http.StatusInternalServerError, "Something went wrong!")
}

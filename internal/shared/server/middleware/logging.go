package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/shared/telemetry"
)

// Logging emits one structured line per request. Handlers may attach
// documentId, analysisId, and statusTransition to enrich the line.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		userID, _ := c.Get(userIDKey)
		isGuest, _ := c.Get("isGuest")
		documentID, _ := c.Get("documentId")
		analysisID, _ := c.Get("analysisId")

		telemetry.Info("request.complete", map[string]any{
			"request_id":        RequestIDFromContext(c),
			"method":            c.Request.Method,
			"path":              c.Request.URL.Path,
			"status":            c.Writer.Status(),
			"status_transition": c.GetString("statusTransition"),
			"duration_ms":       float64(time.Since(start).Microseconds()) / 1000.0,
			"user_id":           userID,
			"document_id":       documentID,
			"analysis_id":       analysisID,
			"is_guest":          isGuest,
			"client_ip":         c.ClientIP(),
			"user_agent":        c.Request.UserAgent(),
		})
	}
}

package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/account"
	"resume-screener/internal/analyses"
	googleauth "resume-screener/internal/auth"
	"resume-screener/internal/documents"
	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/metrics"
	"resume-screener/internal/shared/server/middleware"
	"resume-screener/internal/users"
)

// Status polling is the chatty endpoint; everything else rides the default.
const pollingGroup = "POLLING"

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config          config.Config
	DocumentHandler *documents.Handler
	AnalysisHandler *analyses.Handler
	AccountHandler  *account.Handler
	UserHandler     *users.Handler
	GoogleAuth      *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				pollingGroup: {Rate: 5, Burst: 30},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodGet && strings.HasPrefix(c.FullPath(), "/api/v1/analyses/") {
					return pollingGroup
				}
				return ""
			},
		}),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(api)
	}
	if deps.AccountHandler != nil {
		deps.AccountHandler.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}

	return r
}

// Addr formats the listen address for the configured port.
func Addr(port string) string {
	if strings.TrimSpace(port) == "" {
		port = "8080"
	}
	return ":" + port
}

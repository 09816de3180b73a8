package router

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/poultrydash/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares. A non-empty
// apiToken guards /api with a bearer check.
func New(handler *handlers.DashboardHandler, apiToken string, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", handlers.Health)

	api := r.Group("/api")
	if apiToken != "" {
		api.Use(bearerAuth(apiToken))
	}
	api.GET("/dashboard", handler.Active)
	api.GET("/batches/:id/dashboard", handler.Batch)
	api.GET("/batches/:id/forecast", handler.Forecast)
	api.GET("/history", handler.History)
	api.GET("/stats", handler.Stats)
	api.POST("/reconcile", handler.Reconcile)

	if logger != nil {
		logger.Info("router initialized", zap.Bool("api_auth", apiToken != ""))
	}

	return r
}

func bearerAuth(token string) gin.HandlerFunc {
	want := []byte(token)
	return func(c *gin.Context) {
		got, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

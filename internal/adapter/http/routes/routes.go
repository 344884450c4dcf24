package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"taskapp/internal/adapter/http/handler"
	"taskapp/internal/adapter/http/middleware"
	"taskapp/pkg/config"
	"taskapp/pkg/tracing"
)

type HandlersConfig struct {
	AuthHandler   *handler.AuthHandler
	TaskHandler   *handler.TaskHandler
	HealthHandler *handler.HealthHandler

	CacheMiddleware gin.HandlerFunc
}

func SetupRouter(handlers HandlersConfig, metrics *tracing.AppMetrics, logger *config.AppLogger) *gin.Engine {
	return SetupRouterWithConfig(handlers, metrics, logger, config.GetDefaultConfig())
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *tracing.AppMetrics, logger *config.AppLogger, appConfig *config.AppConfig) *gin.Engine {
	if appConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(otelgin.Middleware("taskapp"))
	router.Use(middleware.RequestIDMiddleware())

	if logger != nil {
		router.Use(loggingMiddleware(logger))
	}

	if metrics != nil {
		router.Use(metricsMiddleware(metrics))
	}

	if appConfig.EnforceHTTPS {
		enforcer := config.NewHTTPSEnforcer(true, logger)
		router.Use(enforcer.HTTPSMiddleware())
	}

	router.Use(gin.Recovery())
	router.Use(corsMiddleware(appConfig.AllowedOrigins))

	setupRoutes(router, handlers)

	return router
}

func setupRoutes(router *gin.Engine, handlers HandlersConfig) {
	if handlers.HealthHandler != nil {
		router.GET("/", handlers.HealthHandler.Root)
	}

	if handlers.AuthHandler != nil {
		auth := router.Group("/auth")
		{
			auth.POST("/signup", handlers.AuthHandler.Signup)
			auth.POST("/signin", handlers.AuthHandler.Signin)
		}
	}

	if handlers.TaskHandler != nil {
		protected := router.Group("/api")
		protected.Use(middleware.JwtMiddleware())

		if handlers.CacheMiddleware != nil {
			protected.Use(handlers.CacheMiddleware)
		}

		{
			protected.GET("/:user_id/tasks", handlers.TaskHandler.List)
			protected.POST("/:user_id/tasks", handlers.TaskHandler.Create)
			protected.GET("/:user_id/tasks/:task_id", handlers.TaskHandler.Get)
			protected.PUT("/:user_id/tasks/:task_id", handlers.TaskHandler.Update)
			protected.DELETE("/:user_id/tasks/:task_id", handlers.TaskHandler.Delete)
			protected.PATCH("/:user_id/tasks/:task_id/complete", handlers.TaskHandler.ToggleCompletion)
		}
	}
}

// corsMiddleware only answers for origins on the allow-list; allowed
// origins get credentials plus every method and header.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))

	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if origin != "" && allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func loggingMiddleware(logger *config.AppLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		if raw != "" {
			path = path + "?" + raw
		}

		logger.InfoWithTrace(c.Request.Context(), "HTTP Request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		)
	}
}

func metricsMiddleware(metrics *tracing.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		metrics.RecordRequest(
			c.Request.Method,
			c.FullPath(),
			c.Writer.Status(),
			time.Since(start),
		)
	}
}

func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()

	router.Use(gin.Recovery())

	setupRoutes(router, handlers)

	return router
}

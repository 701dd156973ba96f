package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/pulseboard/pulseboard-backend/config"
	apperrors "github.com/pulseboard/pulseboard-backend/errors"
	"github.com/pulseboard/pulseboard-backend/handlers"
	"github.com/pulseboard/pulseboard-backend/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Dependencies holds everything required for setting up routes.
type Dependencies struct {
	Config          *config.Config
	FeedbackHandler *handlers.FeedbackHandler
	HealthHandler   *handlers.HealthHandler
	AdminHandler    *handlers.AdminHandler
	// RedisClient enables the submit rate limiter when non-nil.
	RedisClient *redis.Client
	Logger      *zap.SugaredLogger
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if len(deps.Config.Server.TrustedProxies) > 0 {
		if err := r.SetTrustedProxies(deps.Config.Server.TrustedProxies); err != nil && deps.Logger != nil {
			deps.Logger.Warnw("Failed to set trusted proxies", "error", err)
		}
	} else {
		_ = r.SetTrustedProxies(nil)
	}

	// Global middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// Unknown routes get the envelope shape too, not gin's default 404
	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperrors.NotFound("Route", c.Request.URL.Path))
	})

	// Probes and metrics
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", deps.HealthHandler.Health)
		api.GET("/feedback", deps.FeedbackHandler.ListFeedback)

		submit := api.Group("")
		if deps.RedisClient != nil {
			window := time.Duration(deps.Config.RateLimit.WindowSeconds) * time.Second
			submit.Use(middleware.SubmitRateLimiter(
				deps.RedisClient,
				deps.Config.RateLimit.SubmitRequestsPerMinute,
				window,
			))
		}
		submit.POST("/feedback", deps.FeedbackHandler.SubmitFeedback)

		api.POST("/test/reset", deps.AdminHandler.ResetFeedback)
		api.DELETE("/admin/feedback", deps.AdminHandler.PurgeFeedback)
	}

	return r
}

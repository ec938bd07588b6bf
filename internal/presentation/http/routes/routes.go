package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mcg25035/smilepay-adapter-api/internal/config"
	"github.com/mcg25035/smilepay-adapter-api/internal/presentation/http/handler"
	"github.com/mcg25035/smilepay-adapter-api/internal/presentation/http/middleware"
	"github.com/mcg25035/smilepay-adapter-api/pkg/smilepay"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Payment *handler.PaymentHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Public storefront endpoints, rate limited per client IP
	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   middleware.DefaultRateLimiterConfig().CleanupInterval,
		EntryTTL:          middleware.DefaultRateLimiterConfig().EntryTTL,
	})

	pay := router.Group("/pay")
	pay.Use(rateLimiter.Middleware())
	{
		pay.POST("", h.Payment.Create)
		pay.PUT("", h.Payment.SetPaymentMethod)
		pay.GET("/:invoice_id", h.Payment.Get)
	}

	// Gateway callback. Authenticated by checksum, never rate limited: a
	// dropped confirmation would stall the payment until the gateway
	// retries.
	router.POST(smilepay.CallbackPath, h.Payment.HandleGatewayCallback)

	return router
}

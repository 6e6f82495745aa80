package handler

import (
	"crosschain-donation/internal/adapter/http/middleware"
	"crosschain-donation/internal/core/ports"
	"crosschain-donation/internal/registry"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Session        ports.SessionService
	Donations      ports.DonationService
	Reads          ports.ChainQueryService
	Baseline       ports.BaselineRepository
	Registry       *registry.Registry
	TokenSvc       ports.TokenService // nil = auth disabled
	RateLimitStore middleware.Limiter // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Decimals       uint8 // display decimals for amounts
	Mode           string
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	if deps.Mode != "" {
		gin.SetMode(deps.Mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(64 << 10))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	auth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	sessionHandler := NewSessionHandler(deps.Session, deps.Registry, deps.Logger)
	donationHandler := NewDonationHandler(deps.Donations, deps.Registry, deps.Logger)
	eventHandler := NewEventHandler(deps.Baseline, deps.Reads, deps.Registry, deps.Decimals)

	v1 := r.Group("/api/v1")
	v1.GET("/networks", sessionHandler.Networks)

	// --- Wallet session ---
	session := v1.Group("/session")
	{
		session.GET("", sessionHandler.Get)
		session.GET("/stream", rl("stream"), sessionHandler.Stream)
		session.POST("/connect", auth, rl("session"), sessionHandler.Connect)
		session.POST("/disconnect", auth, rl("session"), sessionHandler.Disconnect)
		session.POST("/switch", auth, rl("session"), sessionHandler.Switch)
	}

	// --- Donation lifecycle ---
	donations := v1.Group("/donations")
	{
		donations.POST("", auth, rl("donations"), donationHandler.Start)
		donations.GET("/current", donationHandler.Current)
		donations.GET("/stream", rl("stream"), donationHandler.Stream)
	}

	// --- Chain reads merged with the baseline catalog ---
	reads := v1.Group("", rl("reads"))
	{
		reads.GET("/events", eventHandler.List)
		reads.GET("/events/:id", eventHandler.Get)
		reads.GET("/events/:id/donations", eventHandler.Donations)
		reads.GET("/balances/:address", eventHandler.Balance)
		reads.GET("/rewards/preview", eventHandler.RewardPreview)
	}

	return r
}

package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"driveu/internal/domain"
	"driveu/internal/handler"
	"driveu/internal/middleware"
	"driveu/internal/redis"
	"driveu/internal/session"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	UserHandler    *handler.UserHandler
	DriverHandler  *handler.DriverHandler
	BookingHandler *handler.BookingHandler
	PlacesHandler  *handler.PlacesHandler
	Issuer         *session.Issuer
	Responses      redis.ResponseStoreInterface
	AllowedOrigins []string
	NewRelicApp    *newrelic.Application
	Logger         *slog.Logger
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     deps.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")

	// Public routes.
	{
		v1.POST("/auth/register", deps.UserHandler.Register)
		v1.POST("/auth/login", deps.UserHandler.Login)
		v1.GET("/plans", deps.BookingHandler.Plans)

		locations := v1.Group("/locations")
		locations.GET("/search", deps.PlacesHandler.Search)
		locations.POST("/search", deps.PlacesHandler.Search)
		locations.GET("/autocomplete", deps.PlacesHandler.Autocomplete)
		locations.GET("/nearby", deps.PlacesHandler.Nearby)
		locations.POST("/nearby", deps.PlacesHandler.Nearby)
		locations.GET("/directions", deps.PlacesHandler.Directions)
		locations.POST("/directions", deps.PlacesHandler.Directions)
	}

	// Authenticated routes.
	authed := v1.Group("")
	authed.Use(
		middleware.RequireAuth(deps.Issuer),
		middleware.NewRelicSession(),
		middleware.Idempotency(deps.Responses, deps.Logger),
	)
	{
		authed.GET("/auth/me", deps.UserHandler.Me)
		authed.POST("/auth/logout", deps.UserHandler.Logout)

		users := authed.Group("/users")
		users.PUT("/location", deps.DriverHandler.UpdateLocation)
		users.DELETE("/location", middleware.RequireRole(domain.RoleDriver), deps.DriverHandler.GoOffline)
		users.GET("/drivers/available", middleware.RequireRole(domain.RoleOwner), deps.DriverHandler.Available)

		bookings := authed.Group("/bookings")
		bookings.POST("", middleware.RequireRole(domain.RoleOwner), deps.BookingHandler.Create)
		bookings.GET("/history", deps.BookingHandler.History)
		bookings.GET("/incoming", middleware.RequireRole(domain.RoleDriver), deps.BookingHandler.Incoming)
		bookings.GET("/:id", deps.BookingHandler.Get)
		bookings.PUT("/:id/accept", middleware.RequireRole(domain.RoleDriver), deps.BookingHandler.Accept)
		bookings.PUT("/:id/deny", middleware.RequireRole(domain.RoleDriver), deps.BookingHandler.Deny)
		bookings.POST("/:id/verify-otp", middleware.RequireRole(domain.RoleDriver), deps.BookingHandler.VerifyOTP)
		bookings.PUT("/:id/complete", deps.BookingHandler.Complete)
	}

	return router
}

package routes

import (
	"github.com/cafestamp/cafestamp-backend/internal/config"
	"github.com/cafestamp/cafestamp-backend/internal/handlers"
	"github.com/cafestamp/cafestamp-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// HandlerDependencies groups the handlers wired in main
type HandlerDependencies struct {
	AuthHandler          *handlers.AuthHandler
	AccountHandler       *handlers.AccountHandler
	EstablishmentHandler *handlers.EstablishmentHandler
	OfferHandler         *handlers.OfferHandler
	LedgerHandler        *handlers.LedgerHandler
}

// SetupRouter sets up the router. redisClient may be nil, which disables the
// scan rate limiter.
func SetupRouter(cfg *config.Config, deps HandlerDependencies, redisClient *redis.Client) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		accounts := protected.Group("/accounts")
		{
			accounts.GET("/me", deps.AccountHandler.GetMe)
			accounts.GET("/me/progress", deps.LedgerHandler.GetMyProgress)
			accounts.GET("", deps.AccountHandler.GetAllAccounts)
			accounts.PUT("/:id/role", deps.AccountHandler.UpdateRole)
			accounts.POST("/:id/managed-cafes", deps.AccountHandler.AddManagedCafe)
			accounts.DELETE("/:id/managed-cafes", deps.AccountHandler.RemoveManagedCafe)
		}

		establishments := protected.Group("/establishments")
		{
			establishments.GET("", deps.EstablishmentHandler.GetActiveEstablishments)
			establishments.GET("/:id", deps.EstablishmentHandler.GetEstablishmentByID)
			establishments.GET("/:id/offers", deps.OfferHandler.GetActiveOffers)
			establishments.POST("", deps.EstablishmentHandler.CreateEstablishment)
			establishments.PUT("/:id", deps.EstablishmentHandler.UpdateEstablishment)
			establishments.DELETE("/:id", deps.EstablishmentHandler.DeactivateEstablishment)
		}

		offers := protected.Group("/offers")
		{
			offers.GET("/:id", deps.OfferHandler.GetOfferByID)
			offers.POST("", deps.OfferHandler.CreateOffer)
			offers.PUT("/:id", deps.OfferHandler.UpdateOffer)
			offers.DELETE("/:id", deps.OfferHandler.DeactivateOffer)
		}

		scans := protected.Group("/scans")
		scans.Use(middleware.ScanRateLimitMiddleware(cfg, redisClient))
		{
			scans.POST("", deps.LedgerHandler.RecordScan)
		}

		protected.GET("/history", deps.LedgerHandler.GetHistory)
	}

	return router
}

package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"musafir/internal/handler"
	"musafir/internal/middleware"
	"musafir/internal/service"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthService         *service.AuthService
	AuthHandler         *handler.AuthHandler
	FlagshipHandler     *handler.FlagshipHandler
	RegistrationHandler *handler.RegistrationHandler
	PaymentHandler      *handler.PaymentHandler
	RefundHandler       *handler.RefundHandler
	BankHandler         *handler.BankHandler
	RedisClient         *redis.Client
	NewRelicApp         *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authed := middleware.AuthMiddleware(deps.AuthService)
	admin := middleware.AdminOnly()

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Auth routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
			auth.POST("/verify", deps.AuthHandler.Verify)
		}
		v1.GET("/user/me", authed, deps.AuthHandler.Me)

		// Flagship routes. The wizard endpoints are admin-only; the
		// catalogue reads are open to any signed-in traveller.
		flagship := v1.Group("/flagship", authed)
		{
			flagship.GET("", deps.FlagshipHandler.List)
			flagship.GET("/getByID/:id", deps.FlagshipHandler.GetByID)

			flagship.POST("", admin, deps.FlagshipHandler.Create)
			flagship.GET("/draft", admin, deps.FlagshipHandler.ActiveDraft)
			flagship.DELETE("/draft", admin, deps.FlagshipHandler.AbandonDraft)
			flagship.PUT("/:id", admin, deps.FlagshipHandler.UpdateStep)
			flagship.GET("/:id/stats", admin, deps.FlagshipHandler.Stats)
		}

		// Bank routes.
		v1.GET("/bank", authed, deps.BankHandler.List)

		// Registration routes.
		registration := v1.Group("/registration", authed)
		{
			registration.POST("", deps.RegistrationHandler.Submit)
			registration.PUT("/draft", deps.RegistrationHandler.SaveDraft)
			registration.GET("/draft", deps.RegistrationHandler.GetDraft)
			registration.GET("/pastPassport", deps.RegistrationHandler.PastPassport)
			registration.GET("/upcomingPassport", deps.RegistrationHandler.UpcomingPassport)
			registration.GET("/:id", deps.RegistrationHandler.GetByID)
			registration.POST("/reEvaluateRequestToJury", deps.RegistrationHandler.RequestReEvaluation)

			registration.GET("/flagship/:flagshipId", admin, deps.RegistrationHandler.ListByFlagship)
			registration.PATCH("/approve/:id", admin, deps.RegistrationHandler.Approve)
			registration.PATCH("/reject/:id", admin, deps.RegistrationHandler.Reject)
		}

		// Payment and refund routes.
		payment := v1.Group("/payment", authed)
		{
			payment.POST("/create-payment", deps.PaymentHandler.Create)
			payment.GET("/:id", deps.PaymentHandler.GetByID)
			payment.PATCH("/approve-payment/:id", admin, deps.PaymentHandler.Approve)
			payment.PATCH("/reject-payment/:id", admin, deps.PaymentHandler.Reject)

			payment.POST("/refund", deps.RefundHandler.Create)
			payment.GET("/refund/:id", deps.RefundHandler.GetByID)
			payment.PATCH("/approve-refund/:id", admin, deps.RefundHandler.Approve)
			payment.PATCH("/reject-refund/:id", admin, deps.RefundHandler.Reject)
		}
	}

	return router
}

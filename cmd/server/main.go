package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"musafir/internal/app"
	"musafir/internal/config"
	"musafir/internal/handler"
	internalRedis "musafir/internal/redis"
	"musafir/internal/repository/postgres"
	"musafir/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so the database can be instrumented.
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.WithError(err).Warn("failed to initialize New Relic")
		} else {
			log.WithField("app", cfg.NewRelic.AppName).Info("New Relic enabled")
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()
	log.Info("connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info("connected to Redis")

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		log.WithError(err).Fatal("failed to create uploads directory")
	}

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg, log)

	// Start server in goroutine.
	go func() {
		log.WithField("port", cfg.Server.Port).Info("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config, log *logrus.Logger) *http.Server {
	// Initialize Redis stores.
	draftStore := internalRedis.NewDraftStore(redisClient)
	lockStore := internalRedis.NewLockStore(redisClient)
	cacheStore := internalRedis.NewCacheStore(redisClient)

	// Initialize repositories.
	userRepo := postgres.NewUserRepository(db)
	bankRepo := postgres.NewBankAccountRepository(db)
	flagshipRepo := postgres.NewFlagshipRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	refundRepo := postgres.NewRefundRepository(db)

	// Initialize services.
	notificationService := service.NewNotificationService(log)
	authService := service.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	flagshipService := service.NewFlagshipService(flagshipRepo, bankRepo, lockStore, cacheStore, draftStore, notificationService)
	registrationService := service.NewRegistrationService(registrationRepo, flagshipRepo, draftStore, notificationService)
	paymentService := service.NewPaymentService(db, paymentRepo, registrationRepo, bankRepo, notificationService)
	refundService := service.NewRefundService(db, refundRepo, registrationRepo, notificationService)
	statsService := service.NewStatsService(flagshipRepo, registrationRepo, paymentRepo, refundRepo)

	// Initialize handlers.
	authHandler := handler.NewAuthHandler(authService)
	flagshipHandler := handler.NewFlagshipHandler(flagshipService, statsService)
	registrationHandler := handler.NewRegistrationHandler(registrationService)
	paymentHandler := handler.NewPaymentHandler(paymentService, cfg.Uploads.Dir, cfg.Uploads.MaxSizeByte)
	refundHandler := handler.NewRefundHandler(refundService)
	bankHandler := handler.NewBankHandler(bankRepo)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		AuthService:         authService,
		AuthHandler:         authHandler,
		FlagshipHandler:     flagshipHandler,
		RegistrationHandler: registrationHandler,
		PaymentHandler:      paymentHandler,
		RefundHandler:       refundHandler,
		BankHandler:         bankHandler,
		RedisClient:         redisClient,
		NewRelicApp:         nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

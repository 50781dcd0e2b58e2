package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edupay-service/config"
	httpHandler "edupay-service/internal/adapter/http/handler"
	"edupay-service/internal/adapter/lms"
	"edupay-service/internal/adapter/processor"
	pgStorage "edupay-service/internal/adapter/storage/postgres"
	redisStorage "edupay-service/internal/adapter/storage/redis"
	"edupay-service/internal/core/ports"
	"edupay-service/internal/service"
	"edupay-service/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting EduPay Service")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	txRepo := pgStorage.NewTransactionRepo(pool)
	userRepo := pgStorage.NewUserRepo(pool)
	deliveryRepo := pgStorage.NewDeliveryRepo(pool)
	auditRepo := pgStorage.NewAuditRepository(pool)

	// Initialize Redis stores
	dedupeStore := redisStorage.NewDedupeStore(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize core services
	sigSvc := service.NewDigestSignatureService()
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.Ops.JWTSecret, cfg.Ops.JWTExpiry, cfg.Ops.JWTIssuer)
	auditSvc := service.NewAuditService(auditRepo, log)

	// Outbound adapters
	gateway := processor.NewClient(cfg.Processor, sigSvc, &http.Client{Timeout: cfg.Processor.Timeout}, log)
	lmsClient := lms.NewClient(cfg.LMS.BaseURL, cfg.LMS.Token, &http.Client{Timeout: cfg.LMS.Timeout}, log)

	// Initialize business services
	notifierSvc := service.NewNotifierService(deliveryRepo, &http.Client{Timeout: 10 * time.Second}, cfg.Notifier.CallbackURL, cfg.Notifier.Secret, log)
	provisionSvc := service.NewProvisionService(
		lmsClient,
		userRepo,
		auditSvc,
		cfg.LMS.CategoryID,
		cfg.LMS.EnrolRoleID,
		cfg.Provisioning.MaxAttempts,
		cfg.Provisioning.Backoff,
		cfg.Provisioning.QueueSize,
		log,
	)
	checkoutSvc := service.NewCheckoutService(txRepo, gateway, notifierSvc, auditSvc, log)
	reconcilerSvc := service.NewReconcileService(
		txRepo,
		userRepo,
		sigSvc,
		dedupeStore,
		notifierSvc,
		provisionSvc,
		auditSvc,
		cfg.Processor.APIKey,
		cfg.Processor.MerchantID,
		log,
	)
	reportingSvc := service.NewReportingService(txRepo)
	opsAuthSvc := service.NewOpsAuthService(hashSvc, tokenSvc, auditSvc, cfg.Ops.PasswordHash)

	// Start the provisioning worker
	workerCtx, stopWorker := context.WithCancel(ctx)
	provisionSvc.Start(workerCtx)
	log.Info().Msg("Provisioning worker started")

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		CheckoutSvc:    checkoutSvc,
		ReconcilerSvc:  reconcilerSvc,
		ProvisionSvc:   provisionSvc,
		ReportingSvc:   reportingSvc,
		OpsAuthSvc:     opsAuthSvc,
		TokenSvc:       tokenSvc,
		UserRepo:       userRepo,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		AuditSvc:       auditSvc,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Stop the provisioning worker and wait for the in-flight job.
	stopWorker()
	provisionSvc.Wait()

	log.Info().Msg("Server exited")
}

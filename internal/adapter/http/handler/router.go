package handler

import (
	"edupay-service/internal/adapter/http/middleware"
	redisStore "edupay-service/internal/adapter/storage/redis"
	"edupay-service/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	CheckoutSvc    ports.CheckoutService
	ReconcilerSvc  ports.ReconcilerService
	ProvisionSvc   ports.ProvisionService
	ReportingSvc   ports.ReportingService
	OpsAuthSvc     ports.OpsAuthService
	TokenSvc       ports.TokenService
	UserRepo       ports.UserRepository
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	// Health check (deep, verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
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

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Payment routes ---
	paymentHandler := NewPaymentHandler(deps.CheckoutSvc, deps.ReconcilerSvc)
	webhookHandler := NewWebhookHandler(deps.ReconcilerSvc, deps.Logger)
	payments := v1.Group("/payments")
	{
		payments.POST("/checkout", rl("checkout"), paymentHandler.Checkout)
		payments.POST("/confirmation", rl("webhook"), webhookHandler.Confirmation)
		payments.GET("/status", rl("status"), paymentHandler.Status)
	}

	// --- Provisioning (platform backend) ---
	provisionHandler := NewProvisionHandler(deps.ProvisionSvc, deps.UserRepo)
	v1.POST("/provisioning", rl("provisioning"), provisionHandler.Enqueue)

	// --- Operator dashboard ---
	opsHandler := NewOpsHandler(deps.OpsAuthSvc, deps.ReportingSvc)
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	ops := v1.Group("/ops")
	{
		ops.POST("/login", rl("ops_login"), opsHandler.Login)
		ops.GET("/stats", jwtAuth, rl("ops"), opsHandler.GetStats)
		ops.GET("/transactions", jwtAuth, rl("ops"), opsHandler.ListTransactions)
		ops.POST("/provisioning/retry", jwtAuth, rl("ops"), provisionHandler.Enqueue)
	}

	return r
}

package handler

import (
	"settlement-ledger/internal/adapter/http/middleware"
	redisStore "settlement-ledger/internal/adapter/storage/redis"
	"settlement-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	SettlementSvc  ports.SettlementService
	CustodySvc     ports.CustodyService
	DirectorySvc   ports.DirectoryService
	ReportingSvc   ports.ReportingService
	MerchantRepo   ports.MerchantRepository
	EncSvc         ports.EncryptionService
	SigSvc         ports.SignatureService
	NonceStore     ports.NonceStore
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Deep health check verifying PostgreSQL and Redis
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

	// --- Public routes (operator login) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	// --- HMAC-authenticated routes (merchant API) ---
	hmacAuth := middleware.HMACAuth(deps.MerchantRepo, deps.EncSvc, deps.SigSvc, deps.NonceStore, deps.Logger)
	paymentHandler := NewPaymentHandler(deps.SettlementSvc, deps.ReportingSvc)

	payments := v1.Group("/payments", hmacAuth)
	{
		payments.POST("", rl("payments"), paymentHandler.ProcessPayment)
	}
	withdrawals := v1.Group("/withdrawals", hmacAuth)
	{
		withdrawals.POST("", rl("withdrawals"), paymentHandler.Withdraw)
	}
	v1.GET("/balance", hmacAuth, rl("reports"), paymentHandler.GetBalance)

	// --- JWT-authenticated routes (operator console) ---
	operatorAuth := middleware.OperatorAuth(deps.TokenSvc, deps.Logger)
	adminHandler := NewAdminHandler(deps.SettlementSvc, deps.CustodySvc, deps.ReportingSvc)
	merchantHandler := NewMerchantHandler(deps.DirectorySvc)
	reportingHandler := NewReportingHandler(deps.ReportingSvc)

	admin := v1.Group("/admin", operatorAuth)

	custody := admin.Group("/custody")
	{
		custody.POST("/rescue", rl("admin"), adminHandler.Rescue)
		custody.GET("/free", rl("reports"), adminHandler.GetFreeBalance)
	}

	commission := admin.Group("/commission")
	{
		commission.PUT("/rate", rl("admin"), adminHandler.SetCommissionRate)
		commission.PUT("/receiver", rl("admin"), adminHandler.SetCommissionReceiver)
		commission.POST("/withdraw", rl("admin"), adminHandler.WithdrawCommission)
		commission.GET("/balance", rl("reports"), adminHandler.GetCommissionBalance)
	}

	merchants := admin.Group("/merchants")
	{
		merchants.POST("", rl("admin"), merchantHandler.Onboard)
		merchants.GET("/:id", rl("reports"), merchantHandler.GetMerchant)
		merchants.PUT("/:id/status", rl("admin"), merchantHandler.SetStatus)
		merchants.PUT("/:id/receiver", rl("admin"), merchantHandler.SetFundReceiver)
		merchants.PUT("/:id/assets", rl("admin"), merchantHandler.SetAssetSupport)
		merchants.GET("/:id/balance", rl("reports"), reportingHandler.GetMerchantBalance)
	}

	settlements := admin.Group("/settlements")
	{
		settlements.GET("", rl("reports"), reportingHandler.ListSettlements)
		settlements.GET("/:merchant_id/:order_id/:invoice_id", rl("reports"), reportingHandler.GetSettlement)
	}

	admin.GET("/events", rl("reports"), reportingHandler.ListEvents)

	return r
}

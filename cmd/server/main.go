package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/datamark/backend/internal/application/catalog"
	identityapp "github.com/datamark/backend/internal/application/identity"
	partnerapp "github.com/datamark/backend/internal/application/partner"
	reportapp "github.com/datamark/backend/internal/application/report"
	salesapp "github.com/datamark/backend/internal/application/sales"
	"github.com/datamark/backend/internal/domain/report"
	"github.com/datamark/backend/internal/infrastructure/auth"
	"github.com/datamark/backend/internal/infrastructure/cache"
	"github.com/datamark/backend/internal/infrastructure/config"
	"github.com/datamark/backend/internal/infrastructure/logger"
	"github.com/datamark/backend/internal/infrastructure/persistence"
	"github.com/datamark/backend/internal/infrastructure/telemetry"
	"github.com/datamark/backend/internal/interfaces/http/handler"
	"github.com/datamark/backend/internal/interfaces/http/middleware"
	"github.com/datamark/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(logger.FromAppConfig(cfg.Log))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Datamark Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing and continuous profiling
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()

	// Link spans to CPU profiles when both are running
	if cfg.Telemetry.ProfilerEnabled && tracerProvider.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	// Initialize database connection with zap-backed GORM logger
	gormLog := logger.NewGormLogger(log)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if tracerProvider.IsEnabled() {
		if err := db.EnableTracing(); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	dashboardRepo := persistence.NewGormDashboardRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Dashboard summary cache (optional)
	var summaryCache report.SummaryCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisSummaryCache(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		summaryCache = redisCache
		log.Info("Redis summary cache enabled", zap.String("addr", cfg.Redis.Addr()))
	} else {
		log.Info("Redis disabled, dashboard summaries are computed per request")
	}

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, storeRepo, jwtService, log)
	productService := catalogapp.NewProductService(productRepo)
	accountService := partnerapp.NewAccountService(accountRepo)
	clientService := partnerapp.NewClientService(clientRepo)
	saleService := salesapp.NewSaleService(productRepo, accountRepo, saleRepo, txScope, summaryCache)
	dashboardService := reportapp.NewDashboardService(dashboardRepo, summaryCache, cfg.Dashboard.CacheTTL)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	accountHandler := handler.NewAccountHandler(accountService)
	clientHandler := handler.NewClientHandler(clientService)
	saleHandler := handler.NewSaleHandler(saleService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Global middleware chain. Order matters: request IDs first so the
	// recovery and request loggers can pick them up, tracing before JWT
	// so auth failures still produce spans.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))
	engine.Use(middleware.SpanErrorMarker())

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// JWT authentication for API routes, with public auth endpoints
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Auth routes (login/refresh are in the JWT skip list)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	r.Register(authRoutes)

	// Product catalog routes
	productRoutes := router.NewDomainGroup("products", "/products")
	productRoutes.POST("", productHandler.Create)
	productRoutes.GET("", productHandler.List)
	productRoutes.GET("/:id", productHandler.Get)
	productRoutes.PUT("/:id", productHandler.Update)
	productRoutes.DELETE("/:id", productHandler.Deactivate)
	r.Register(productRoutes)

	// Customer account routes
	accountRoutes := router.NewDomainGroup("accounts", "/accounts")
	accountRoutes.POST("", accountHandler.Create)
	accountRoutes.GET("", accountHandler.List)
	accountRoutes.GET("/:id", accountHandler.Get)
	accountRoutes.PUT("/:id", accountHandler.Update)
	accountRoutes.DELETE("/:id", accountHandler.Delete)
	r.Register(accountRoutes)

	// Contact book routes
	clientRoutes := router.NewDomainGroup("clients", "/clients")
	clientRoutes.POST("", clientHandler.Create)
	clientRoutes.GET("", clientHandler.List)
	r.Register(clientRoutes)

	// Point-of-sale routes
	saleRoutes := router.NewDomainGroup("sales", "/sales")
	saleRoutes.POST("", saleHandler.Create)
	saleRoutes.GET("", saleHandler.List)
	saleRoutes.GET("/:id", saleHandler.Get)
	r.Register(saleRoutes)

	// Dashboard routes
	dashboardRoutes := router.NewDomainGroup("dashboard", "/dashboard")
	dashboardRoutes.GET("/summary", dashboardHandler.GetSummary)
	r.Register(dashboardRoutes)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports liveness and database connectivity
func healthHandler(db *persistence.Database, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c, log)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}

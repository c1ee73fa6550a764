package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	cartapp "github.com/scentline/backend/internal/application/cart"
	catalogapp "github.com/scentline/backend/internal/application/catalog"
	checkoutapp "github.com/scentline/backend/internal/application/checkout"
	customerapp "github.com/scentline/backend/internal/application/customer"
	identityapp "github.com/scentline/backend/internal/application/identity"
	orderapp "github.com/scentline/backend/internal/application/order"
	"github.com/scentline/backend/internal/domain/checkout"
	"github.com/scentline/backend/internal/domain/shared/valueobject"
	"github.com/scentline/backend/internal/infrastructure/auth"
	"github.com/scentline/backend/internal/infrastructure/config"
	"github.com/scentline/backend/internal/infrastructure/keyvalue"
	"github.com/scentline/backend/internal/infrastructure/logger"
	"github.com/scentline/backend/internal/infrastructure/payment"
	"github.com/scentline/backend/internal/infrastructure/persistence"
	"github.com/scentline/backend/internal/interfaces/http/handler"
	"github.com/scentline/backend/internal/interfaces/http/middleware"
	"github.com/scentline/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = logger.Sync(log) }()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	// Database
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	// Redis backs checkout drafts and the token blacklist; both fall
	// back to in-memory stores when Redis is unreachable.
	var draftStore checkout.Store
	var blacklist auth.TokenBlacklist

	redisStore, err := keyvalue.NewRedisStore(keyvalue.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("redis unavailable, using in-memory stores", zap.Error(err))
		draftStore = keyvalue.NewMemoryStore()
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		defer func() { _ = redisStore.Close() }()
		draftStore = redisStore
		blacklist = auth.NewRedisTokenBlacklist(redisStore.Client())
	}

	// Payment gateway
	gateway, err := buildGateway(cfg, log)
	if err != nil {
		log.Fatal("failed to configure payment gateway", zap.Error(err))
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	productService := catalogapp.NewProductService(productRepo)
	reviewService := catalogapp.NewReviewService(reviewRepo)
	cartService := cartapp.NewService(cartRepo, productRepo)
	orderService := orderapp.NewService(orderRepo)
	addressService := customerapp.NewAddressService(addressRepo)
	checkoutService := checkoutapp.NewService(
		cartRepo,
		orderRepo,
		draftStore,
		gateway,
		buildPromotions(cfg.Checkout.Promos),
		cfg.Checkout.DraftTTL,
		log,
	)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsCfg))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	jwtCfg := middleware.DefaultJWTConfig(jwtService)
	jwtCfg.TokenBlacklist = blacklist
	jwtCfg.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtCfg))

	// Handlers
	systemHandler := handler.NewSystemHandler()
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	cartHandler := handler.NewCartHandler(cartService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, authService)
	orderHandler := handler.NewOrderHandler(orderService)
	addressHandler := handler.NewAddressHandler(addressService)

	r := router.NewRouter(engine)
	r.Register(systemHandler)
	r.Register(authHandler)
	r.Register(productHandler)
	r.Register(reviewHandler)
	r.Register(cartHandler)
	r.Register(checkoutHandler)
	r.Register(orderHandler)
	r.Register(addressHandler)
	r.Register(adminRoutes(productHandler, reviewHandler, orderHandler))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}

	log.Info("stopped")
}

// buildGateway selects the configured payment gateway
func buildGateway(cfg *config.Config, log *zap.Logger) (payment.Gateway, error) {
	switch cfg.Payment.Gateway {
	case "razorpay":
		return payment.NewRazorpayAdapter(&payment.RazorpayConfig{
			KeyID:     cfg.Payment.KeyID,
			KeySecret: cfg.Payment.KeySecret,
		})
	default:
		log.Warn("using stub payment gateway", zap.String("gateway", cfg.Payment.Gateway))
		return payment.NewStubGateway(), nil
	}
}

// buildPromotions converts configured promo codes to domain rules
func buildPromotions(promos []config.PromoConfig) *checkout.Promotions {
	if len(promos) == 0 {
		return checkout.DefaultPromotions()
	}
	rules := make([]checkout.PromoRule, 0, len(promos))
	for _, p := range promos {
		rule := checkout.PromoRule{
			Code:    p.Code,
			Percent: decimal.NewFromFloat(p.Percent),
		}
		if p.Cap > 0 {
			cap := valueobject.NewMoneyINRFromFloat(p.Cap)
			rule.Cap = &cap
		}
		rules = append(rules, rule)
	}
	return checkout.NewPromotions(rules)
}

// adminRoutes groups the role-gated management endpoints
func adminRoutes(
	productHandler *handler.ProductHandler,
	reviewHandler *handler.ReviewHandler,
	orderHandler *handler.OrderHandler,
) router.RouteRegistrar {
	return router.RegistrarFunc(func(rg *gin.RouterGroup) {
		admin := rg.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		productHandler.RegisterAdminRoutes(admin)
		reviewHandler.RegisterAdminRoutes(admin)
		orderHandler.RegisterAdminRoutes(admin)
	})
}

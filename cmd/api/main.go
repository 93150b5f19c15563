package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/recyclelect/storefront-backend/api/controllers"
	"github.com/recyclelect/storefront-backend/api/routes"
	"github.com/recyclelect/storefront-backend/internal/cart"
	"github.com/recyclelect/storefront-backend/internal/catalog"
	checkoutsvc "github.com/recyclelect/storefront-backend/internal/checkout"
	"github.com/recyclelect/storefront-backend/internal/favorites"
	"github.com/recyclelect/storefront-backend/internal/orders"
	"github.com/recyclelect/storefront-backend/internal/pricing"
	"github.com/recyclelect/storefront-backend/pkg/config"
	"github.com/recyclelect/storefront-backend/pkg/logger"
	"github.com/recyclelect/storefront-backend/pkg/metrics"
	"github.com/recyclelect/storefront-backend/pkg/redis"
)

type gormPinger struct {
	db *gorm.DB
}

func (p gormPinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	loaded, err := catalog.Load(context.Background(), cfg.Catalog.Path, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to load catalog", err)
		os.Exit(1)
	}

	db, err := gorm.Open(sqlite.Open(cfg.Orders.SQLitePath), &gorm.Config{})
	if err != nil {
		logg.Error(context.Background(), "failed to open orders database", err)
		os.Exit(1)
	}
	if cfg.Orders.AutoMigrate {
		if err := orders.AutoMigrate(db); err != nil {
			logg.Error(context.Background(), "failed to migrate orders schema", err)
			os.Exit(1)
		}
	}

	cartRepo := cart.NewMemoryRepository()
	favRepo := favorites.NewMemoryRepository()
	checkoutRepo := checkoutsvc.NewMemoryRepository()
	var sessionsPinger controllers.Pinger

	if cfg.Sessions.UseRedis() {
		redisClient, err := redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		cartRepo = cart.NewRedisRepository(redisClient, cfg.Sessions.TTL)
		favRepo = favorites.NewRedisRepository(redisClient, cfg.Sessions.TTL)
		checkoutRepo = checkoutsvc.NewRedisRepository(redisClient, cfg.Sessions.TTL)
		sessionsPinger = redisClient
	}

	calculator := pricing.NewCalculator(loaded, cfg.Delivery.ExpressFeeCents)
	cartSvc := cart.NewService(cartRepo, loaded, calculator)
	favSvc := favorites.NewService(favRepo, loaded)
	orderSvc := orders.NewService(orders.NewRepository(db))
	checkoutService := checkoutsvc.NewService(checkoutRepo, cartSvc, calculator, loaded, orderSvc)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"products": loaded.Len(),
		"sessions": cfg.Sessions.Backend,
	})
	logg.Info(ctx, "starting storefront api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:     cfg,
			Logger:     logg,
			Metrics:    httpMetrics,
			Registry:   registry,
			DB:         gormPinger{db: db},
			Sessions:   sessionsPinger,
			Catalog:    catalog.NewService(loaded),
			Calculator: calculator,
			Cart:       cartSvc,
			Favorites:  favSvc,
			Checkout:   checkoutService,
			Orders:     orderSvc,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

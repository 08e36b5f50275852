package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nharmon/slicehaus-backend/api/routes"
	"github.com/nharmon/slicehaus-backend/internal/cart"
	"github.com/nharmon/slicehaus-backend/internal/catalog"
	"github.com/nharmon/slicehaus-backend/internal/orders"
	"github.com/nharmon/slicehaus-backend/internal/pricing"
	"github.com/nharmon/slicehaus-backend/pkg/config"
	"github.com/nharmon/slicehaus-backend/pkg/db"
	"github.com/nharmon/slicehaus-backend/pkg/logger"
	"github.com/nharmon/slicehaus-backend/pkg/metrics"
	"github.com/nharmon/slicehaus-backend/pkg/migrate"
	"github.com/nharmon/slicehaus-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	ruleset, err := pricing.FromConfig(cfg.Pricing)
	if err != nil {
		logg.Error(context.Background(), "failed to build pricing ruleset", err)
		os.Exit(1)
	}

	cartMetrics := metrics.NewCartMetrics(prometheus.DefaultRegisterer)

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartStore, err := cart.NewStore(redisClient, cfg.Cart)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cartStore, catalogService, ruleset, cartMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.NewRepository(dbClient.DB()), dbClient, cartStore, ruleset, logg, cartMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, catalogService, cartService, ordersService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

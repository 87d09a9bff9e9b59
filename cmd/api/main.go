package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/rkotecha/tilebill-backend/api/routes"
	"github.com/rkotecha/tilebill-backend/internal/bills"
	cartsvc "github.com/rkotecha/tilebill-backend/internal/cart"
	"github.com/rkotecha/tilebill-backend/internal/inventory"
	"github.com/rkotecha/tilebill-backend/pkg/config"
	"github.com/rkotecha/tilebill-backend/pkg/db"
	"github.com/rkotecha/tilebill-backend/pkg/logger"
	"github.com/rkotecha/tilebill-backend/pkg/migrate"
	"github.com/rkotecha/tilebill-backend/pkg/redis"
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

	inventoryService := inventory.NewService(inventory.NewRepository(dbClient.DB()), logg)
	assembler := cartsvc.NewAssembler(inventoryService)

	cartStore := cartsvc.NewRedisStore(redisClient, cfg.Cart.TTL)
	cartService, err := cartsvc.NewService(cartStore, cfg.Cart.MaxItems)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	billService, err := bills.NewService(bills.NewRepository(dbClient.DB()), dbClient, cartService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create bill service", err)
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
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, inventoryService, assembler, cartService, billService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

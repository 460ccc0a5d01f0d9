package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/minithai/minithai-backend/api/routes"
	cartsvc "github.com/minithai/minithai-backend/internal/cart"
	checkoutsvc "github.com/minithai/minithai-backend/internal/checkout"
	"github.com/minithai/minithai-backend/internal/contact"
	"github.com/minithai/minithai-backend/internal/content"
	"github.com/minithai/minithai-backend/internal/menu"
	"github.com/minithai/minithai-backend/internal/orders"
	"github.com/minithai/minithai-backend/internal/reservations"
	"github.com/minithai/minithai-backend/pkg/config"
	"github.com/minithai/minithai-backend/pkg/db"
	"github.com/minithai/minithai-backend/pkg/logger"
	"github.com/minithai/minithai-backend/pkg/metrics"
	"github.com/minithai/minithai-backend/pkg/migrate"
	"github.com/minithai/minithai-backend/pkg/redis"
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

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	badgeMetrics := metrics.NewBadgeMetrics(registry)

	cartManager := cartsvc.NewManager(cartsvc.ManagerParams{
		Storage: cartsvc.NewRedisStorage(redisClient, logg),
		KeyFor:  redisClient.CartKey,
		Cart:    cfg.Cart,
		Logger:  logg,
		Metrics: badgeMetrics,
	})
	defer func() {
		if err := cartManager.Close(); err != nil {
			logg.Error(context.Background(), "error closing cart manager", err)
		}
	}()

	menuService, err := menu.NewService(menu.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create menu service", err)
		os.Exit(1)
	}
	orderService, err := orders.NewService(orders.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}
	checkoutService, err := checkoutsvc.NewService(orderService, cfg.Checkout)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}
	reservationService, err := reservations.NewService(reservations.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create reservation service", err)
		os.Exit(1)
	}
	contactService, err := contact.NewService(contact.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create contact service", err)
		os.Exit(1)
	}
	contentService, err := content.NewService(content.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create content service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config:       cfg,
		Logger:       logg,
		DB:           dbClient,
		Redis:        redisClient,
		HTTPMetrics:  httpMetrics,
		Registry:     registry,
		CartManager:  cartManager,
		Menu:         menuService,
		Orders:       orderService,
		Checkout:     checkoutService,
		Reservations: reservationService,
		Contact:      contactService,
		Content:      contentService,
	})

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
		Handler: router,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-shutdown
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "graceful shutdown failed", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

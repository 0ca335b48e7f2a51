package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vladpolisuk/sport-shop-client/clients"
	"github.com/vladpolisuk/sport-shop-client/config"
	"github.com/vladpolisuk/sport-shop-client/middleware"
	"github.com/vladpolisuk/sport-shop-client/routes"
	"github.com/vladpolisuk/sport-shop-client/services"
	"github.com/vladpolisuk/sport-shop-client/storage"
)

func main() {
	cfg := config.Load()

	var logger *zap.Logger
	var err error
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	store, err := buildStore(cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", zap.Error(err))
	}

	// The session feeds tokens into the client, and the client tears the
	// session down on 401, so wiring happens in two steps.
	session := services.NewSessionService(store, logger)
	backend := clients.NewBackendClient(cfg.BackendURL, cfg.RequestTimeout, session, logger)
	backend.OnUnauthorized(session.Clear)
	session.SetBackend(backend)

	carts := services.NewCartService(store, services.NopNotifier{}, logger)
	checkout := services.NewCheckoutService(backend, clients.IsNotFound, carts, logger)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(logger),
		middleware.SecurityHeaders(),
		middleware.CORSMiddleware(),
		middleware.RateLimitMiddleware(),
	)

	routes.Register(router, backend, session, carts, checkout)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("storefront service is running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", zap.Error(err))
	}
	logger.Info("server shutdown complete")
}

// buildStore selects the session/cart store: redis when configured, the
// local file store otherwise.
func buildStore(cfg config.Config) (storage.Store, error) {
	if cfg.RedisURL != "" {
		client, err := storage.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return storage.NewRedis(client, cfg.CartTTL), nil
	}
	return storage.NewFile(cfg.StorageDir)
}

package main

import (
	"context"   // Shutdown and Redis ping
	"errors"    // Server close detection
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Signal notification
	"syscall"   // SIGTERM
	"time"      // Timeouts

	"stock_management/internal/api"        // HTTP handlers
	"stock_management/internal/config"     // Configuration
	"stock_management/internal/db"         // Database connection
	"stock_management/internal/metrics"    // Prometheus collectors
	"stock_management/internal/repository" // Storage
	"stock_management/internal/service"    // Workflows
	"stock_management/internal/utils"      // Product locks

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"golang.org/x/sync/errgroup"   // Server lifecycle
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	cfg.SetupLogger()          // Setup logger

	// Connect to the database
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			logrus.WithError(err).Warn("failed to close DB")
		}
	}()

	// Product locks: Redis when configured so several instances agree, in-process otherwise
	var locker utils.Locker = utils.NewKeyedMutex()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		defer redisClient.Close()

		// Test Redis connection
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err = redisClient.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		locker = utils.NewRedisLocker(redisClient, cfg.LockTTL)
		logrus.WithField("addr", cfg.RedisAddr).Info("Using Redis product locks")
	}

	// Repositories and workflows
	accounts := repository.NewGormAccounts(gdb)
	categories := repository.NewGormCategories(gdb)
	products := repository.NewGormProducts(gdb)
	orders := repository.NewGormOrders(gdb)
	m := metrics.New()

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.NewRouter(api.Services{
		Accounts:   service.NewAccountService(accounts, cfg.BcryptCost),
		Categories: service.NewCategoryService(categories, products),
		Products:   service.NewProductService(products, categories, locker),
		Orders:     service.NewOrderService(orders, products, accounts, locker, m),
	}, m)

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logrus.Info("Server running on " + cfg.AppPort) // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done() // Signal received or server failed
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logrus.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logrus.WithError(err).Error("server stopped with error")
	}
}

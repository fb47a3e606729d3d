// Package main is the entry point for the finance tracker client service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/client/config"
	"github.com/finance-tracker/client/internal/infra/db"
	"github.com/finance-tracker/client/internal/infra/dependency"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize structured logger
	level := slog.LevelInfo
	if !cfg.IsProduction() {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting finance tracker client",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"finance_api", cfg.FinanceAPI.BaseURL,
	)

	// Initialize the sync history database
	var gormDB *gorm.DB
	if cfg.History.Enabled {
		database, err := db.NewConnection(&cfg.Database)
		if err != nil {
			slog.Warn("Database connection failed, running without sync history", "error", err)
		} else if err := database.Migrate(); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		} else {
			slog.Info("Database migrations completed successfully")
			gormDB = database.DB()
			defer func() {
				if err := database.Close(); err != nil {
					slog.Error("Failed to close database connection", "error", err)
				}
			}()
		}
	}

	// Initialize Redis for transaction views
	redisOptions, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		slog.Error("Invalid Redis URL", "error", err)
		os.Exit(1)
	}
	if cfg.Redis.Password != "" {
		redisOptions.Password = cfg.Redis.Password
	}
	redisOptions.DB = cfg.Redis.DB
	redisClient := redis.NewClient(redisOptions)
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("Failed to close Redis client", "error", err)
		}
	}()

	injector := dependency.NewInjector(cfg, gormDB, redisClient, nil, logger)
	engine := injector.Router.Setup(cfg.Server.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start background workers
	var workers sync.WaitGroup
	if injector.History != nil {
		workers.Add(1)
		go func() {
			defer workers.Done()
			injector.History.Start(ctx)
		}()
	}

	if injector.RateLimiter != nil {
		workers.Add(1)
		go func() {
			defer workers.Done()
			ticker := time.NewTicker(injector.RateLimiter.IdleTimeout())
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					injector.RateLimiter.Cleanup()
				}
			}
		}()
	}

	// Load the initial snapshot without blocking the listener; /health reports progress.
	workers.Add(1)
	go func() {
		defer workers.Done()
		if err := injector.Store.Initialize(ctx); err != nil {
			slog.Warn("Store initialization stopped", "error", err)
			return
		}
		slog.Info("Store initialized", "version", injector.Store.Version())
	}()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		// Event streams end when the process is signalled
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	injector.Close()
	workers.Wait()

	slog.Info("Server exited properly")
}

// Package main is the entry point for the blog API server. It loads
// configuration, connects to both stores, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogpress/internal/config"
	"blogpress/internal/database"
	"blogpress/internal/docstore"
	"blogpress/internal/handlers"
	"blogpress/internal/router"
	"blogpress/internal/storage"
	"blogpress/internal/store"
	"blogpress/internal/token"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL (users, roles, categories).
	db, err := database.Connect(context.Background(), cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the role catalog (no-op if already present).
	if err := database.SeedRoles(db); err != nil {
		slog.Error("failed to seed roles", "error", err)
		os.Exit(1)
	}

	// Seed a development admin account (no-op if users exist).
	if cfg.IsDev() {
		if err := database.SeedDevAdmin(db); err != nil {
			slog.Error("failed to seed dev admin", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Redis (blog document store).
	redisClient, err := docstore.Connect(cfg.RedisAddr(), cfg.RedisPassword)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	roleStore := store.NewRoleStore(db)
	categoryStore := store.NewCategoryStore(db)
	blogStore := docstore.NewBlogStore(redisClient)

	// Connect to S3-compatible object storage (optional — media uploads
	// are disabled without it).
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured — media uploads disabled")
	}

	// Token manager for issuing and validating bearer tokens.
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL())

	// Create handler groups with their dependencies.
	authHandlers := handlers.NewAuth(userStore, tokens)
	blogHandlers := handlers.NewBlogs(blogStore, userStore, categoryStore)
	categoryHandlers := handlers.NewCategories(categoryStore)
	adminHandlers := handlers.NewAdmin(blogStore, categoryStore, roleStore)
	mediaHandlers := handlers.NewMedia(storageClient)

	// Set up the Chi router with all middleware and routes.
	r := router.New(tokens, authHandlers, blogHandlers, categoryHandlers, adminHandlers, mediaHandlers)

	// Create the HTTP server with sensible timeouts. WriteTimeout
	// accommodates media uploads to object storage.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

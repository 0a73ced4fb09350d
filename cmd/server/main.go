// Package main initializes and starts the dashboard gateway server, setting
// up configuration, logging, database connections, repositories, services and
// handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/Davidshtp/Dashboard/internal/config"
	"github.com/Davidshtp/Dashboard/internal/db"
	"github.com/Davidshtp/Dashboard/internal/logger"
	"github.com/Davidshtp/Dashboard/internal/repository"
	"github.com/Davidshtp/Dashboard/internal/server/handler/http"
	"github.com/Davidshtp/Dashboard/internal/service"
	"github.com/Davidshtp/Dashboard/internal/token"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("JWT secret is not configured")
	}

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Periodically clear expired password-recovery codes.
	db.StartResetCodeCleaner(context.Background(), postgresDB,
		time.Minute, // interval
		zapLogger,
	)

	// Initialize repositories.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	categoryRepo := repository.NewPostgresCategoryRepository(postgresDB)
	itemRepo := repository.NewPostgresItemRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, options.ResetCodeTTL)
	categoryService := service.NewCategoryService(categoryRepo)
	itemService := service.NewItemService(itemRepo, categoryRepo)
	profileService := service.NewProfileService(userRepo)

	// Session token signing and verification.
	tokens := token.NewManager(options.JWTSecret)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService, Tokens: tokens}
	categoryHandler := &http.CategoryHandler{CategoryService: categoryService}
	itemHandler := &http.ItemHandler{ItemService: itemService}
	profileHandler := &http.ProfileHandler{ProfileService: profileService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, categoryHandler, itemHandler, profileHandler, tokens, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}

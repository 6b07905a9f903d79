package main

import (
	"comandas_server/api"
	"comandas_server/config"
	"comandas_server/database"
	"comandas_server/repository"
	"comandas_server/services"
	"comandas_server/structs"
	"comandas_server/structs/tables"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/joho/godotenv"
)

var logger *gecho.Logger
var cfg *structs.Config

// init loads environment variables and initializes config and logger
func init() {
	envErr := godotenv.Load()

	cfg = config.GetConfig()
	logger = config.InitializeLogger()

	if envErr != nil {
		logger.Warn("No .env file found or error loading .env file, proceeding with system environment variables")
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, store, err := openStore(ctx)
	if err != nil {
		logger.Fatal("Failed to initialize storage", gecho.Field("error", err))
	}

	sm := services.NewServiceManager(logger, cfg, db, store)
	defer sm.CacheService.Close()

	if cfg.Auth.AdminPassword != "" {
		if err := sm.AuthService.EnsureOperator(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword, tables.RoleAdmin); err != nil {
			logger.Fatal("Failed to create admin operator", gecho.Field("error", err))
		}
	} else {
		logger.Warn("AUTH_ADMIN_PASSWORD is empty, no admin operator was bootstrapped")
	}

	server := &http.Server{
		Addr:           cfg.Server.Port,
		Handler:        api.App(sm, cfg, config.GetLogLevel()),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		logger.Info(fmt.Sprintf("Starting server (%s) on %s", cfg.Server.AppName, cfg.Server.Port),
			gecho.Field("storage", cfg.Storage.Backend),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to start server", gecho.Field("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Received shutdown signal, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", gecho.Field("error", err))
	}
	if db != nil {
		if err := database.CloseInstance(); err != nil {
			logger.Error("Failed to close database", gecho.Field("error", err))
		}
	}
	logger.Info("Server stopped")
}

// openStore picks the storage backend. The returned db is nil for the memory backend.
func openStore(ctx context.Context) (*database.DB, services.Store, error) {
	switch cfg.Storage.Backend {
	case "memory":
		logger.Warn("Using in-memory storage, data is lost on restart")
		return nil, repository.NewMemoryStore(), nil
	case "postgres", "":
		db, err := database.Initialize(ctx)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := database.CreateSchema(ctx, db); err != nil {
				return nil, nil, fmt.Errorf("failed to create schema: %w", err)
			}
		}
		return db, repository.NewPostgresStore(db, cfg.Database.WriteTimeout), nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/josemedina1/Papafactory/internal/auth"
	"github.com/josemedina1/Papafactory/internal/catalog"
	"github.com/josemedina1/Papafactory/internal/config"
	"github.com/josemedina1/Papafactory/internal/ledger"
	"github.com/josemedina1/Papafactory/internal/server"
	"github.com/josemedina1/Papafactory/internal/service"
	"github.com/josemedina1/Papafactory/internal/storage/sqlite"
	"github.com/josemedina1/Papafactory/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logging.Setup()
	cfg := config.Load()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	ctx := context.Background()

	authenticator := auth.NewPasswordAuthenticator(store)
	if cfg.SeedPassword != "" {
		if err := auth.SeedDefault(ctx, authenticator, store, cfg.SeedUsername, cfg.SeedPassword); err != nil {
			slog.Error("Failed to seed operator", "error", err)
			os.Exit(1)
		}
	}
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)

	var client *catalog.Client
	if cfg.CatalogURL != "" {
		client = catalog.NewClient(cfg.CatalogURL, cfg.CatalogTimeout)
	}
	cat, err := catalog.Load(ctx, client)
	if err != nil {
		slog.Error("Failed to load catalog", "error", err)
		os.Exit(1)
	}
	holder := catalog.NewHolder(cat)

	till := ledger.New(holder, store, store)

	svr := server.SetupRoutes(
		service.NewOrderService(till, holder, store),
		service.NewCatalogService(holder, client),
		service.NewAuthService(authenticator, jwtManager),
		jwtManager,
	)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := svr.Run(cfg.Port); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")
	if err := svr.Shutdown(shutdownTimeout); err != nil {
		slog.Error("Shutdown failed", "error", err)
		os.Exit(1)
	}
}

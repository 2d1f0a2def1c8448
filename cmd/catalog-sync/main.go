package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"buildhub/database"
	"buildhub/internal/api/repository"
	"buildhub/internal/config"
	"buildhub/internal/ingestion/catalog"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	// sync_state lives outside the API schema
	if err := db.AutoMigrate(&catalog.SyncState{}); err != nil {
		logger.Error("sync state migration failed", "error", err)
		os.Exit(1)
	}

	syncService := catalog.NewSyncService(catalog.SyncConfig{
		BaseURL: cfg.CatalogAPIURL,
		APIKey:  cfg.CatalogAPIKey,
	}, db, repository.NewPartRepository(db), repository.NewCategoryRepository(db), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutdown signal received")
		cancel()
	}()

	if err := syncService.Run(ctx); err != nil {
		logger.Error("catalog sync failed", "error", err)
		os.Exit(1)
	}
}

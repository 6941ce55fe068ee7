package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/chamchi6619/pantry-core/internal/catalog"
	"github.com/chamchi6619/pantry-core/internal/common"
	"github.com/chamchi6619/pantry-core/internal/entity"
	"github.com/chamchi6619/pantry-core/internal/history"
	"github.com/chamchi6619/pantry-core/internal/server"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	cat, err := loadCatalog(cfg.Catalog.Path)
	if err != nil {
		logger.Error("catalog load failed", "path", cfg.Catalog.Path, "error", err)
		os.Exit(1)
	}
	ring := history.NewRing(cfg.Heuristic.HistorySize)

	svc := server.NewService(cfg.Server, cfg.Heuristic.DefaultLocale, cat, ring, logger)
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: svc.Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("pantryd listening", "addr", cfg.Server.Addr, "catalog_items", cat.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("serve error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := common.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("pantryd stopped")
}

// loadCatalog reads the canonical catalog file; without one the matcher
// runs against an empty catalog and every lookup is unmatched.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.New([]entity.CanonicalItem{}), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return catalog.LoadJSON(data)
}

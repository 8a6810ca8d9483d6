package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Veeeetzzzz/tag-sales-scraper/internal/api"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/application/service"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/domain/catalog"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/infrastructure/config"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/infrastructure/logging"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/infrastructure/storage"
)

// RunServe wires the full stack and runs the API server until a
// shutdown signal arrives.
func RunServe(cfg *config.Config, flags *ServeFlags) error {
	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "api")

	if flags.Port > 0 {
		cfg.Server.Port = flags.Port
	}

	repo, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close() }()

	loader := catalog.NewLoader(cfg.Catalog.Dir, logger)
	source := NewEbaySource(cfg, logger)
	svc := service.NewTrackerService(cfg, loader, source, repo, logger)

	server := api.NewServer(svc, repo, cfg, logger)
	httpServer := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Server.Port),
		Handler: server.Router(),
	}

	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("received shutdown signal")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", slog.Any("error", err))
		}
		close(done)
	}()

	logger.Info("api server listening", slog.String("addr", httpServer.Addr))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	<-done
	logger.Info("server stopped")
	return nil
}

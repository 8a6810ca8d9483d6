package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Veeeetzzzz/tag-sales-scraper/internal/adapters/sources"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/application/service"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/cli"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/domain/catalog"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/infrastructure/config"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/infrastructure/logging"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/infrastructure/storage"
)

func main() {
	flags := cli.ParseScrapeFlags()

	cfg := config.LoadOrEnvWithPath(flags.ConfigFile)
	if flags.Marketplace != "" {
		cfg.Scraper.Marketplace = flags.Marketplace
	}

	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "scrape")

	repo, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = repo.Close() }()

	loader := catalog.NewLoader(cfg.Catalog.Dir, logger)
	source := cli.NewEbaySource(cfg, logger)
	svc := service.NewTrackerService(cfg, loader, source, repo, logger)

	cli.PrintRunHeader(cfg.Scraper.Marketplace)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := svc.RunScrape(ctx, service.RunRequest{
		Marketplace: sources.Marketplace(cfg.Scraper.Marketplace),
		MaxItems:    flags.MaxItems,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "scrape failed: %v\n", err)
		os.Exit(1)
	}

	cli.PrintRunSummary(result)
}

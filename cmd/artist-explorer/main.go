package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gatallah-de/Artist-Explorer/internal/api"
	"github.com/Gatallah-de/Artist-Explorer/internal/cache"
	"github.com/Gatallah-de/Artist-Explorer/internal/catalog"
	"github.com/Gatallah-de/Artist-Explorer/internal/config"
	"github.com/Gatallah-de/Artist-Explorer/internal/credits"
	"github.com/Gatallah-de/Artist-Explorer/internal/logging"
	"github.com/Gatallah-de/Artist-Explorer/internal/provider"
	"github.com/Gatallah-de/Artist-Explorer/internal/provider/musicbrainz"
	"github.com/Gatallah-de/Artist-Explorer/internal/provider/spotify"
	"github.com/Gatallah-de/Artist-Explorer/internal/provider/wikipedia"
	"github.com/Gatallah-de/Artist-Explorer/internal/version"
)

const staticDir = "web/static"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	configPath := os.Getenv("AE_CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Set up structured logging
	logger, logCloser := logging.New(logging.Config{
		Level:          cfg.Logging.Level,
		Format:         cfg.Logging.Format,
		FilePath:       cfg.Logging.FilePath,
		FileMaxSizeMB:  cfg.Logging.FileMaxSizeMB,
		FileMaxFiles:   cfg.Logging.FileMaxFiles,
		FileMaxAgeDays: cfg.Logging.FileMaxAgeDays,
	})
	defer logCloser.Close() //nolint:errcheck
	slog.SetDefault(logger)

	logger.Info("starting",
		slog.String("version", version.Version),
		slog.String("commit", version.Commit))

	// Shared provider infrastructure
	limiters := provider.NewRateLimiterMap()
	responses := cache.NewTTL(time.Duration(cfg.Cache.TTLSeconds)*time.Second, cfg.Cache.MaxEntries)

	// Upstream adapters
	spotifyAdapter := spotify.New(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret,
		cfg.Spotify.Market, limiters, responses, logger)
	if !spotifyAdapter.Enabled() {
		logger.Warn("spotify credentials not configured; catalog requests will fail")
	}
	mbAdapter := musicbrainz.New(limiters, responses, logger)
	wikiAdapter := wikipedia.New(limiters, responses, logger)

	// Domain services
	creditsService := credits.NewService(mbAdapter, logger)
	catalogService := catalog.NewService(spotifyAdapter, wikiAdapter, logger)

	router := api.NewRouter(api.RouterDeps{
		CatalogService: catalogService,
		CreditsService: creditsService,
		Logger:         logger,
		BasePath:       cfg.Server.BasePath,
		StaticDir:      staticDir,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Rescan static assets on change during development
	if cfg.Dev.WatchAssets {
		assetWatcher := api.NewAssetWatcher(router.StaticAssets(), staticDir, logger)
		go assetWatcher.Start(ctx)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", slog.String("addr", addr), slog.String("base_path", cfg.Server.BasePath))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

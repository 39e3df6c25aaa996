package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/vertextoedge/site-title-cache/internal/config"
	"github.com/vertextoedge/site-title-cache/internal/domain"
	"github.com/vertextoedge/site-title-cache/internal/extract"
	"github.com/vertextoedge/site-title-cache/internal/logger"
	"github.com/vertextoedge/site-title-cache/internal/port"
	"github.com/vertextoedge/site-title-cache/internal/scanner"
	"github.com/vertextoedge/site-title-cache/internal/server"
	"github.com/vertextoedge/site-title-cache/internal/titles"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	serve := flag.Bool("serve", false, "Serve titles over HTTP instead of running once")
	reindexAll := flag.Bool("reindex-all", false, "Recompute every title")
	reindex := flag.Bool("reindex", false, "Add titles for new files")
	reindexCat := flag.String("reindex-cat", "", "Recompute titles within one category")
	delindex := flag.Bool("delindex", false, "Drop entries for files no longer present")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting site-title-cache",
		zap.String("version", version),
		zap.String("config", *configPath))

	scan := scanner.New(&scanner.Config{
		ContentDir:     cfg.Site.ContentDir,
		HTMLExtensions: cfg.Formats.HTMLExtensions,
		TextExtensions: cfg.Formats.TextExtensions,
	}, log)

	store := titles.OpenStore(cfg, log)
	if store != nil {
		defer store.Close()
	}

	registry := extract.NewRegistry()

	if *serve {
		runServer(cfg, store, scan, registry, log)
		return
	}

	idx, _, err := scan.Scan()
	if err != nil {
		log.Fatal("failed to scan content", zap.Error(err))
	}

	directive := domain.ParseDirective(*reindexAll, *reindex, *reindexCat, *delindex)
	manager := titles.New(store, idx, registry, log)
	result := manager.Run(directive)

	log.Info("indexing run finished",
		zap.String("directive", result.Directive.Kind.String()),
		zap.Int("mutated", result.Mutated),
		zap.Int("entries", result.Entries),
		zap.Bool("saved", result.Saved))
}

func runServer(cfg *config.Config, store port.TitleStore, scan *scanner.Scanner, registry *extract.Registry, log *zap.Logger) {
	srv := server.New(&server.Config{
		BindAddr:     cfg.HTTP.BindAddr,
		ReadTimeout:  cfg.HTTP.GetReadTimeout(),
		WriteTimeout: cfg.HTTP.GetWriteTimeout(),
		IdleTimeout:  cfg.HTTP.GetIdleTimeout(),
	}, store, func() (port.FileIndex, error) {
		idx, _, err := scan.Scan()
		return idx, err
	}, registry, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	case sig := <-sigCh:
		log.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.GetWriteTimeout())
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn("shutdown error", zap.Error(err))
		}
	}
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"reciboscan/internal/async"
	"reciboscan/internal/common"
	"reciboscan/internal/core"
	"reciboscan/internal/ingest"
	"reciboscan/internal/ocr"
	"reciboscan/internal/pipeline"
	"reciboscan/internal/store"
)

func main() {
	cfg := common.LoadConfig()

	level := slog.LevelInfo
	if strings.EqualFold(cfg.Scan.LogLevel, "debug") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if len(cfg.Watch.Roots) == 0 {
		logger.Error("RECIBOS_WATCH_DIRS is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.NewSQLiteStore(ctx, cfg.Store.DBPath, logger)
	if err != nil {
		logger.Error("failed to open store", "db_path", cfg.Store.DBPath, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn("store close failed", "error", err)
		}
	}()

	engine := pipeline.NewEngine(logger)
	engine.SetCurrency(cfg.Scan.Currency)
	processor := core.NewProcessor(logger, ocr.NewFileTextExtractor(logger), engine, st)
	queue := async.NewScanQueue(processor, logger)

	pathCh, errCh, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       cfg.Watch.Roots,
		InitialScan: cfg.Watch.InitialScan,
		Debounce:    cfg.Watch.Debounce,
	}, logger)
	if err != nil {
		logger.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}
	logger.Info("recibod started", "roots", cfg.Watch.Roots, "db_path", cfg.Store.DBPath)

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			drainCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			queue.Shutdown(drainCtx)
			cancel()
			return
		case p, ok := <-pathCh:
			if !ok {
				return
			}
			_ = queue.Enqueue(ctx, async.Job{Path: p})
		case err, ok := <-errCh:
			if !ok {
				return
			}
			logger.Error("recibod.watch.error", "error", err)
		}
	}
}

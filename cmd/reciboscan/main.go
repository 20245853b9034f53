package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"reciboscan/constants"
	"reciboscan/internal/common"
	"reciboscan/internal/core"
	"reciboscan/internal/ocr"
	"reciboscan/internal/pipeline"
	"reciboscan/internal/store"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		path    = flag.String("path", "", "OCR text file or directory to scan (required)")
		dbPath  = flag.String("db", "", "sqlite database path; empty disables persistence")
		hint    = flag.String("hint", "", "free-form annotation stored with recognized transactions")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *path == "" {
		printError("Error: --path is required\n")
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	// Logs go to stderr so stdout stays pure JSON, one object per file.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx := context.Background()
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var st store.TransactionStore
	if *dbPath != "" {
		var err error
		st, err = store.NewSQLiteStore(ctx, *dbPath, logger)
		if err != nil {
			logger.Error("failed to open store", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := st.Close(); err != nil {
				logger.Warn("store close failed", "error", err)
			}
		}()
	}

	engine := pipeline.NewEngine(logger)
	engine.SetCurrency(cfg.Scan.Currency)
	processor := core.NewProcessor(logger, ocr.NewFileTextExtractor(logger), engine, st)

	paths, err := collectPaths(*path)
	if err != nil {
		logger.Error("failed to collect input files", "path", *path, "error", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		printError("Error: no readable text files under %s\n", *path)
		os.Exit(1)
	}

	recognized := 0
	failures := 0
	for _, p := range paths {
		res, err := processor.ProcessFile(ctx, p, *hint)
		if err != nil {
			logger.Error("failed to process file", "path", p, "error", err)
			failures++
			continue
		}
		if res.Output.Recognized() {
			recognized++
		}
		fmt.Println(string(res.JSON))
	}

	logger.Info("scan complete",
		"files", len(paths),
		"recognized", recognized,
		"failures", failures,
	)
	if failures > 0 {
		os.Exit(1)
	}
}

// collectPaths expands a file or directory argument into the list of
// allowed text files beneath it, in walk order.
func collectPaths(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}
	var paths []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := constants.AllowedExtensions[constants.NormalizeExt(filepath.Ext(p))]; ok {
			paths = append(paths, p)
		}
		return nil
	})
	return paths, err
}

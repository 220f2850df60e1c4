package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/leadforge/giscrawl/browser"
	"github.com/leadforge/giscrawl/config"
	"github.com/leadforge/giscrawl/crawl"
	"github.com/leadforge/giscrawl/export"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("giscrawl starting",
		"city", cfg.City,
		"categories", cfg.Categories,
		"maxItems", cfg.MaxItems,
		"headless", cfg.Browser.Headless,
	)

	// ── 3. Launch browser session ───────────────────────────────────
	session, err := browser.NewSession(cfg.Browser)
	if err != nil {
		slog.Error("failed to launch browser", "error", err)
		os.Exit(1)
	}
	defer session.Close()

	// ── 4. Run the crawl, unwinding on SIGINT/SIGTERM ───────────────
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	runner := crawl.NewRunner(session.Page(), cfg, slog.Default())
	records, stats, runErr := runner.Run(ctx)
	if runErr != nil {
		slog.Warn("run interrupted, exporting partial results", "error", runErr)
	}

	// ── 5. Export results ───────────────────────────────────────────
	if len(records) == 0 {
		slog.Warn("no records collected, nothing to export")
	} else {
		path, err := export.Write(cfg.Export.Path, cfg.City, records, stats)
		if err != nil {
			slog.Error("export failed", "error", err)
		} else {
			slog.Info("results exported", "path", path, "records", len(records))
		}
	}

	// ── 6. Final statistics ─────────────────────────────────────────
	slog.Info("giscrawl finished",
		"uniqueCompanies", stats.UniqueCompanies,
		"totalRecords", stats.TotalRecords,
		"duplicatesSkipped", stats.DuplicatesSkipped,
		"categoriesProcessed", stats.CategoriesProcessed,
		"withWebsite", stats.WithWebsite,
		"withWhatsApp", stats.WithWhatsApp,
		"withInstagram", stats.WithInstagram,
	)
}

// initLogger configures slog based on the Log config.
func initLogger(cfg config.Log) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}

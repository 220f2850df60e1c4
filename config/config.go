package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/leadforge/giscrawl/models"
)

// Config holds all application configuration.
type Config struct {
	// City is the 2GIS city slug used to build the start URL
	// (e.g. "astana" -> https://2gis.kz/astana).
	City string

	// Categories is the list of search terms to crawl, one pass each.
	Categories []string

	// MaxItems is the maximum number of organisations collected per category.
	MaxItems int

	Browser Browser
	Crawler Crawler
	Export  Export
	Log     Log
}

// Browser controls the Rod browser instance.
type Browser struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// Bin overrides the Chromium binary path.
	Bin string

	// Proxy is an optional proxy URL for all traffic.
	Proxy string

	// NavigationTimeout is the max time for a single page load.
	NavigationTimeout time.Duration // default: 20s

	// ReadyTimeout bounds the dynamic-content readiness wait after navigation.
	ReadyTimeout time.Duration // default: 15s

	// BlockedResourceTypes lists resource types to block.
	// default: ["Image", "Font", "Media"]
	BlockedResourceTypes []string
}

// Crawler controls pagination and pacing behavior.
type Crawler struct {
	// MaxPages is the absolute pagination cap per category.
	MaxPages int // default: 50

	// MaxAdvanceFailures is the consecutive next-page-failure cap.
	MaxAdvanceFailures int // default: 3

	// MinDelay and MaxDelay bound the randomized pacing delay inserted
	// between page-driving operations. Rate shaping, not correctness.
	MinDelay time.Duration // default: 1s
	MaxDelay time.Duration // default: 3s
}

// Export controls result persistence.
type Export struct {
	// Path is the output file. Empty means an auto-generated name
	// encoding the city and a run timestamp. A .csv extension switches
	// the writer to CSV.
	Path string
}

// Log controls structured logging.
type Log struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
}

// fileOverrides is the JSON config document shape. It overrides the same
// three semantic fields the flags expose; absent fields keep flag values.
type fileOverrides struct {
	City       string   `json:"city"`
	Categories []string `json:"categories"`
	MaxItems   int      `json:"max_items"`
}

// Load parses command-line flags, applies environment fallbacks for the
// browser/crawler knobs, and merges an optional JSON config file on top
// (JSON wins for city/categories/max_items).
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("giscrawl", flag.ContinueOnError)

	city := fs.String("city", "astana", "city slug to search in")
	categories := fs.String("categories", "кофейни", "comma-separated search categories")
	maxItems := fs.Int("max-items", 100, "maximum organisations per category")
	configPath := fs.String("config", "", "path to a JSON config file (overrides flags)")
	verbose := fs.Bool("verbose", false, "debug-level logging")
	out := fs.String("out", "", "output file path (.xlsx or .csv; default auto-named)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{
		City:       *city,
		Categories: splitList(*categories),
		MaxItems:   *maxItems,
		Browser: Browser{
			Headless:          envBoolOr("GISCRAWL_HEADLESS", true),
			NoSandbox:         envBoolOr("GISCRAWL_NO_SANDBOX", false),
			Bin:               os.Getenv("GISCRAWL_BROWSER_BIN"),
			Proxy:             os.Getenv("GISCRAWL_PROXY"),
			NavigationTimeout: envDurationOr("GISCRAWL_NAV_TIMEOUT", 20*time.Second),
			ReadyTimeout:      envDurationOr("GISCRAWL_READY_TIMEOUT", 15*time.Second),
			BlockedResourceTypes: envSliceOr("GISCRAWL_BLOCKED_RESOURCES", []string{
				"Image", "Font", "Media",
			}),
		},
		Crawler: Crawler{
			MaxPages:           envIntOr("GISCRAWL_MAX_PAGES", 50),
			MaxAdvanceFailures: envIntOr("GISCRAWL_MAX_ADVANCE_FAILURES", 3),
			MinDelay:           envDurationOr("GISCRAWL_MIN_DELAY", time.Second),
			MaxDelay:           envDurationOr("GISCRAWL_MAX_DELAY", 3*time.Second),
		},
		Export: Export{
			Path: *out,
		},
		Log: Log{
			Level:  envOr("GISCRAWL_LOG_LEVEL", "info"),
			Format: envOr("GISCRAWL_LOG_FORMAT", "text"),
		},
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}

	if *configPath != "" {
		if err := cfg.mergeFile(*configPath); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile overlays the JSON document at path onto the config.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var o fileOverrides
	if err := json.Unmarshal(data, &o); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if o.City != "" {
		c.City = o.City
	}
	if len(o.Categories) > 0 {
		c.Categories = o.Categories
	}
	if o.MaxItems != 0 {
		c.MaxItems = o.MaxItems
	}
	return nil
}

func (c *Config) validate() error {
	if c.MaxItems <= 0 {
		return models.NewCrawlError(models.ErrCodeInvalidInput,
			fmt.Sprintf("max-items must be positive, got %d", c.MaxItems), nil)
	}
	if len(c.Categories) == 0 {
		return models.NewCrawlError(models.ErrCodeInvalidInput,
			"at least one category is required", nil)
	}
	if c.Crawler.MinDelay > c.Crawler.MaxDelay {
		return models.NewCrawlError(models.ErrCodeInvalidInput,
			fmt.Sprintf("min delay %s exceeds max delay %s", c.Crawler.MinDelay, c.Crawler.MaxDelay), nil)
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}

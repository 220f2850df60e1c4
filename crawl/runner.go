package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/leadforge/giscrawl/browser"
	"github.com/leadforge/giscrawl/config"
	"github.com/leadforge/giscrawl/dedup"
	"github.com/leadforge/giscrawl/models"
)

// searchBoxSelectors locate the site's search input, most specific first.
var searchBoxSelectors = []string{
	`input[placeholder*="Поиск"]`,
	`input[placeholder*="поиск"]`,
	`input[type="search"]`,
	`input[name="search"]`,
	`.search-input input`,
	`input`,
}

// searchBoxWait bounds the appearance wait per search-box selector.
const searchBoxWait = 5 * time.Second

// interCategoryPause separates category passes beyond the normal pacing.
const interCategoryPause = 2 * time.Second

// Runner drives a whole multi-category run: open the city page, search a
// category, paginate the listing and visit every detail page, sharing one
// dedup index across categories.
type Runner struct {
	page  browser.Page
	cfg   *config.Config
	pacer *pacer
	log   *slog.Logger

	paginator  *Paginator
	aggregator *Aggregator
}

func NewRunner(page browser.Page, cfg *config.Config, log *slog.Logger) *Runner {
	index := dedup.NewIndex()
	return &Runner{
		page:       page,
		cfg:        cfg,
		pacer:      newPacer(cfg.Crawler.MinDelay, cfg.Crawler.MaxDelay),
		log:        log,
		paginator:  NewPaginator(page, cfg.Crawler, log),
		aggregator: NewAggregator(page, index, cfg.Browser.ReadyTimeout, log),
	}
}

// Run executes every configured category in order. A failing category is
// logged and skipped; only cancellation aborts the run. The records
// collected so far are always returned alongside the final stats.
func (r *Runner) Run(ctx context.Context) ([]models.BusinessRecord, models.RunStats, error) {
	for i, category := range r.cfg.Categories {
		r.log.Info("category started",
			"category", category, "city", r.cfg.City,
			"progress", i+1, "of", len(r.cfg.Categories))

		if err := r.runCategory(ctx, category); err != nil {
			if ctx.Err() != nil {
				return r.aggregator.Records(), r.aggregator.Stats(), ctx.Err()
			}
			r.log.Error("category failed", "category", category, "err", err)
		}

		if i < len(r.cfg.Categories)-1 {
			if err := sleepCtx(ctx, interCategoryPause); err != nil {
				return r.aggregator.Records(), r.aggregator.Stats(), err
			}
		}
	}
	return r.aggregator.Records(), r.aggregator.Stats(), nil
}

func (r *Runner) runCategory(ctx context.Context, category string) error {
	if err := r.openAndSearch(ctx, category); err != nil {
		return err
	}

	links, err := r.paginator.Collect(ctx, r.cfg.MaxItems)
	if err != nil {
		return err
	}
	r.log.Info("detail links collected", "category", category, "count", len(links))

	for i, url := range links {
		if err := ctx.Err(); err != nil {
			return err
		}
		added, err := r.aggregator.Process(ctx, url, category)
		if err != nil {
			r.log.Warn("detail page skipped",
				"url", url, "progress", i+1, "of", len(links), "err", err)
		} else if added {
			r.log.Debug("detail page processed",
				"url", url, "progress", i+1, "of", len(links))
		}
		if err := r.pacer.pause(ctx); err != nil {
			return err
		}
	}
	return nil
}

// openAndSearch loads the city start page and submits the category query.
// Start URLs fall back from the configured city to the default city to the
// bare site root.
func (r *Runner) openAndSearch(ctx context.Context, category string) error {
	var lastErr error
	loaded := false
	for _, url := range startURLs(r.cfg.City) {
		if err := r.page.Navigate(ctx, url); err != nil {
			lastErr = err
			r.log.Debug("start URL failed", "url", url, "err", err)
			continue
		}
		loaded = true
		break
	}
	if !loaded {
		return models.NewCrawlError(models.ErrCodeNavigation, "no start URL reachable", lastErr)
	}
	if err := r.pacer.pause(ctx); err != nil {
		return err
	}

	typed := false
	for _, sel := range searchBoxSelectors {
		el, err := r.page.WaitFor(ctx, sel, searchBoxWait)
		if err != nil {
			return err
		}
		if el == nil {
			continue
		}
		if err := r.page.Input(sel, category); err != nil {
			r.log.Debug("search input failed", "selector", sel, "err", err)
			continue
		}
		typed = true
		break
	}
	if !typed {
		return models.NewCrawlError(models.ErrCodeNavigation, "search box not found", nil)
	}

	if err := r.pacer.pause(ctx); err != nil {
		return err
	}
	if err := r.page.PressEnter(); err != nil {
		return models.NewCrawlError(models.ErrCodeNavigation, "submit search", err)
	}
	if err := r.pacer.pause(ctx); err != nil {
		return err
	}
	r.page.WaitReady(ctx, r.cfg.Browser.ReadyTimeout)
	return nil
}

func startURLs(city string) []string {
	urls := []string{baseURL + "/" + city}
	if city != "astana" {
		urls = append(urls, baseURL+"/astana")
	}
	return append(urls, baseURL)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

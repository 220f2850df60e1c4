package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leadforge/giscrawl/browser"
	"github.com/leadforge/giscrawl/config"
	"github.com/leadforge/giscrawl/extract"
	"github.com/leadforge/giscrawl/models"
)

// baseURL resolves the relative detail-page hrefs the listing emits.
const baseURL = "https://2gis.kz"

// linkSelectors identify organisation detail-page anchors on a listing
// page. The platform uses different path shapes for firms, organisations
// and branches.
var linkSelectors = []string{
	`a[href*="/firm/"]`,
	`a[href*="/organization/"]`,
	`a[href*="/branch/"]`,
}

// nextControlLocators find a generic "next page" control when no exact
// page-number control exists.
var nextControlLocators = []extract.Locator{
	extract.Selector(`[class*="next"]`),
	extract.Selector(`[aria-label*="Next"]`),
	extract.Selector(`[aria-label*="Следующая"]`),
	extract.TextEquals{Base: extract.Selector("a, button"), Text: ">"},
	extract.TextEquals{Base: extract.Selector("a, button"), Text: "Следующая"},
}

// Paginator walks a category's listing pages and accumulates the set of
// detail-page links.
type Paginator struct {
	page  browser.Page
	pacer *pacer
	cfg   config.Crawler
	log   *slog.Logger
}

func NewPaginator(page browser.Page, cfg config.Crawler, log *slog.Logger) *Paginator {
	return &Paginator{
		page:  page,
		pacer: newPacer(cfg.MinDelay, cfg.MaxDelay),
		cfg:   cfg,
		log:   log,
	}
}

// Collect walks listing pages starting from the currently loaded one and
// returns up to limit unique detail-page links in discovery order. The
// walk stops when the limit is reached, when a page past the first yields
// nothing new, when the page cap is hit, or after too many consecutive
// failed advances. Partial results are always returned.
func (pg *Paginator) Collect(ctx context.Context, limit int) ([]string, error) {
	seen := make(map[string]struct{})
	var links []string

	page := 1
	failures := 0
	for page <= pg.cfg.MaxPages {
		if err := ctx.Err(); err != nil {
			return truncate(links, limit), err
		}

		// Listing content renders lazily; start from the top so the
		// first results are attached before collecting.
		pg.page.Eval(`() => window.scrollTo(0, 0)`)
		if err := pg.pacer.pause(ctx); err != nil {
			return truncate(links, limit), err
		}

		added := 0
		for _, link := range pg.collectCurrent() {
			if _, ok := seen[link]; ok {
				continue
			}
			seen[link] = struct{}{}
			links = append(links, link)
			added++
		}
		pg.log.Info("listing page collected",
			"page", page, "new", added, "total", len(links))

		if len(links) >= limit {
			break
		}
		if added == 0 && page > 1 {
			pg.log.Info("no new links, stopping pagination", "page", page)
			break
		}

		if pg.advance(ctx, page+1) {
			failures = 0
			page++
			continue
		}
		failures++
		pg.log.Warn("could not advance to next page",
			"page", page, "failures", failures)
		if failures >= pg.cfg.MaxAdvanceFailures {
			pg.log.Warn("pagination stalled, keeping collected links",
				"code", models.ErrCodePagination, "page", page, "links", len(links))
			break
		}
	}
	return truncate(links, limit), nil
}

// collectCurrent gathers detail links from the loaded page, resolving
// relative hrefs against the site root.
func (pg *Paginator) collectCurrent() []string {
	var links []string
	for _, sel := range linkSelectors {
		els, err := pg.page.Query(sel)
		if err != nil {
			continue
		}
		for _, el := range els {
			href, err := el.Attribute("href")
			if err != nil || href == "" {
				continue
			}
			if link := absoluteLink(href); link != "" {
				links = append(links, link)
			}
		}
	}
	return links
}

func absoluteLink(href string) string {
	switch {
	case strings.HasPrefix(href, "http"):
		return href
	case strings.HasPrefix(href, "/"):
		return baseURL + href
	}
	return ""
}

// advance moves the listing to page next: exact page-number control first,
// then a generic next control, then a last-resort scan of every anchor and
// button. Reports whether the listing advanced.
func (pg *Paginator) advance(ctx context.Context, next int) bool {
	// Pagination controls live below the results.
	pg.page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)
	if pg.pacer.pause(ctx) != nil {
		return false
	}

	control := pg.findPageNumber(next)
	if control == nil {
		control = pg.findNextControl()
	}
	if control == nil {
		control = pg.scanForPageNumber(next)
	}
	if control == nil {
		return false
	}

	control.ScrollIntoView()
	if pg.pacer.pause(ctx) != nil {
		return false
	}
	if err := control.Click(); err != nil {
		pg.log.Debug("pagination click failed", "err", err)
		return false
	}
	if pg.pacer.pause(ctx) != nil {
		return false
	}
	pg.page.WaitReady(ctx, pg.cfg.MinDelay+pg.cfg.MaxDelay)
	return true
}

// findPageNumber locates a control whose label is exactly the page number.
// Exact equality: matching "2" must not fire on "22 reviews".
func (pg *Paginator) findPageNumber(n int) browser.Element {
	label := fmt.Sprintf("%d", n)
	locators := []extract.Locator{
		extract.TextEquals{Base: extract.Selector("a"), Text: label},
		extract.TextEquals{Base: extract.Selector("button"), Text: label},
		extract.Selector(fmt.Sprintf(`[data-page="%d"]`, n)),
	}
	for _, loc := range locators {
		els, err := loc.Locate(pg.page)
		if err != nil {
			continue
		}
		for _, el := range els {
			if el.Visible() {
				return el
			}
		}
	}
	return nil
}

func (pg *Paginator) findNextControl() browser.Element {
	for _, loc := range nextControlLocators {
		els, err := loc.Locate(pg.page)
		if err != nil {
			continue
		}
		for _, el := range els {
			if el.Visible() && el.Enabled() {
				return el
			}
		}
	}
	return nil
}

// scanForPageNumber is the last resort: every anchor and button on the
// page, matched by exact text.
func (pg *Paginator) scanForPageNumber(n int) browser.Element {
	label := fmt.Sprintf("%d", n)
	els, err := pg.page.Query("a, button")
	if err != nil {
		return nil
	}
	for _, el := range els {
		text, err := el.Text()
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) == label && el.Visible() && el.Enabled() {
			return el
		}
	}
	return nil
}

func truncate(links []string, limit int) []string {
	if len(links) > limit {
		return links[:limit]
	}
	return links
}

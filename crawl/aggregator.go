package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/leadforge/giscrawl/browser"
	"github.com/leadforge/giscrawl/dedup"
	"github.com/leadforge/giscrawl/extract"
	"github.com/leadforge/giscrawl/models"
)

// Aggregator visits detail pages, extracts the contact fields and folds
// the results into the run, consulting the dedup index before committing
// a record.
type Aggregator struct {
	page         browser.Page
	index        *dedup.Index
	readyTimeout time.Duration
	log          *slog.Logger

	records    []models.BusinessRecord
	duplicates int
}

func NewAggregator(page browser.Page, index *dedup.Index, readyTimeout time.Duration, log *slog.Logger) *Aggregator {
	return &Aggregator{
		page:         page,
		index:        index,
		readyTimeout: readyTimeout,
		log:          log,
	}
}

// Process loads one detail page and, unless the organisation is a known
// duplicate, commits a record. Reports whether a record was added; a
// navigation error skips the page without failing the run.
func (a *Aggregator) Process(ctx context.Context, url, category string) (bool, error) {
	if err := a.page.Navigate(ctx, url); err != nil {
		return false, models.NewCrawlError(models.ErrCodeNavigation, "load detail page "+url, err)
	}
	a.page.WaitReady(ctx, a.readyTimeout)

	// Name and address settle duplication together: the address can
	// override a name match when it points at a different branch.
	// Probing before the remaining fields keeps duplicate visits cheap.
	name := extract.Name(a.page)
	address := extract.Address(a.page)
	if name != "" && a.index.AlreadyProcessed(name, address) {
		a.duplicates++
		a.log.Info("duplicate skipped", "name", name, "address", address, "url", url)
		return false, nil
	}

	phone := extract.Phone(a.page)
	website := extract.Website(a.page)
	whatsapp := extract.WhatsApp(a.page)
	instagram := extract.Instagram(a.page)

	record := models.BusinessRecord{
		Name:       models.OrValue(name),
		Address:    models.OrValue(address),
		Phone:      models.OrValue(phone),
		Website:    models.OrValue(website),
		WhatsApp:   models.OrValue(whatsapp),
		Instagram:  models.OrValue(instagram),
		Category:   category,
		HasWebsite: website != "",
	}

	if name != "" {
		a.index.Register(name, dedup.Detail{
			OriginalName: name,
			Address:      address,
			Category:     category,
			Phone:        record.Phone,
			Website:      record.Website,
		})
	}
	a.records = append(a.records, record)
	a.log.Info("organisation collected",
		"name", record.Name,
		"phone", record.Phone,
		"website", record.HasWebsite)
	return true, nil
}

// Records returns the committed records in collection order.
func (a *Aggregator) Records() []models.BusinessRecord {
	return a.records
}

// DuplicatesSkipped returns the number of detail pages dropped as
// duplicates of already collected organisations.
func (a *Aggregator) DuplicatesSkipped() int {
	return a.duplicates
}

// Stats summarizes the run so far.
func (a *Aggregator) Stats() models.RunStats {
	return models.CollectStats(a.records, a.index.Size(), a.duplicates)
}

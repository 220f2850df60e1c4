package models

// Unspecified is the sentinel stored in any field that could not be
// extracted. Downstream reporting counts sentinel-vs-present fields, so
// records never omit fields.
const Unspecified = "Не указано"

// BusinessRecord is one extracted, deduplicated organisation.
// Immutable after creation.
type BusinessRecord struct {
	Name       string
	Address    string
	Phone      string
	Website    string
	WhatsApp   string
	Instagram  string
	Category   string
	HasWebsite bool
}

// OrValue returns v, or the Unspecified sentinel when v is empty.
func OrValue(v string) string {
	if v == "" {
		return Unspecified
	}
	return v
}

// Present reports whether a field holds a real value rather than the sentinel.
func Present(v string) bool {
	return v != "" && v != Unspecified
}

// RunStats summarises a whole multi-category run.
type RunStats struct {
	UniqueCompanies     int
	TotalRecords        int
	DuplicatesSkipped   int
	CategoriesProcessed int
	WithWebsite         int
	WithWhatsApp        int
	WithInstagram       int
}

// CollectStats derives run statistics from the emitted records plus the
// dedup index size and the aggregator's duplicate counter. The index can
// be smaller than the record count: nameless records are never registered,
// and distinct branches sharing a normalized name share one key, so
// TotalRecords is the authoritative record count.
func CollectStats(records []BusinessRecord, indexSize, duplicatesSkipped int) RunStats {
	s := RunStats{
		UniqueCompanies:   indexSize,
		TotalRecords:      len(records),
		DuplicatesSkipped: duplicatesSkipped,
	}
	categories := make(map[string]struct{})
	for _, r := range records {
		categories[r.Category] = struct{}{}
		if r.HasWebsite {
			s.WithWebsite++
		}
		if Present(r.WhatsApp) {
			s.WithWhatsApp++
		}
		if Present(r.Instagram) {
			s.WithInstagram++
		}
	}
	s.CategoriesProcessed = len(categories)
	return s
}

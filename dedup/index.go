package dedup

import (
	"log/slog"
	"strings"

	"github.com/leadforge/giscrawl/models"
)

// minKeyRunes is the minimum normalized-key length for the substring
// containment check; shorter keys produce too many false positives.
const minKeyRunes = 4

// Detail is what the index remembers about a registered organisation.
type Detail struct {
	OriginalName string
	Address      string
	Category     string
	Phone        string
	Website      string
}

// Index owns the set of normalized keys seen so far plus the per-key detail
// cache. It lives for exactly one run across all categories: the same
// organisation can legitimately appear under multiple category searches and
// must be recognised as already processed. Single writer (the aggregator);
// no locking needed until a concurrent-crawl extension exists.
type Index struct {
	keys    map[string]struct{}
	details map[string]Detail
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		keys:    make(map[string]struct{}),
		details: make(map[string]Detail),
	}
}

// Size returns the number of registered keys.
func (ix *Index) Size() int {
	return len(ix.keys)
}

// AlreadyProcessed reports whether name refers to an organisation already
// in the index. address is optional ("" means unknown); when supplied, a
// known-dissimilar recorded address overrides a name match — same
// normalized name at a different address is likely a genuinely different
// branch.
//
// The scan consults the first similarly-named entry whose address does not
// contradict the match; entries contradicted by the address are skipped,
// not remembered. O(n) per lookup — the index stays in the hundreds of
// entries per run, so a linear scan is a deliberate tradeoff.
func (ix *Index) AlreadyProcessed(name, address string) bool {
	key := Normalize(name)
	if key == "" {
		return false
	}

	if _, ok := ix.keys[key]; ok {
		if !ix.addressContradicts(key, address) {
			slog.Debug("duplicate by exact key", "name", name, "key", key)
			return true
		}
	}

	if len([]rune(key)) < minKeyRunes {
		return false
	}
	for existing := range ix.keys {
		if existing == key || len([]rune(existing)) < minKeyRunes {
			continue
		}
		if !containsEither(key, existing) {
			continue
		}
		if ix.addressContradicts(existing, address) {
			continue
		}
		slog.Debug("duplicate by similar name",
			"name", name, "key", key, "existing", existing)
		return true
	}
	return false
}

// Register stores the organisation's detail under its normalized key.
// No-op when the name normalises to the empty key.
func (ix *Index) Register(name string, d Detail) {
	key := Normalize(name)
	if key == "" {
		return
	}
	ix.keys[key] = struct{}{}
	ix.details[key] = d
}

// addressContradicts reports whether the supplied address is known to be
// dissimilar to the one recorded for key. Unknown addresses on either side
// never contradict.
func (ix *Index) addressContradicts(key, address string) bool {
	if address == "" {
		return false
	}
	d, ok := ix.details[key]
	if !ok || !models.Present(d.Address) {
		return false
	}
	return !Similar(address, d.Address)
}

func containsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

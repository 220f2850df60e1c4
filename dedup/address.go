package dedup

import (
	"regexp"
	"strings"
)

var (
	addrPunctRe = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	digitsRe    = regexp.MustCompile(`[0-9]+`)
)

// similarityThreshold is the minimum Jaccard token overlap for two
// addresses to count as the same area.
const similarityThreshold = 0.7

// addressTokens reduces a free-text address to its street-level token set:
// lowercased, punctuation replaced with spaces, digit runs removed so house
// numbers do not block a street-level match, single-rune leftovers (building
// letters such as the "а" in "12-а") dropped.
func addressTokens(addr string) map[string]struct{} {
	lower := strings.ToLower(addr)
	lower = addrPunctRe.ReplaceAllString(lower, " ")
	lower = digitsRe.ReplaceAllString(lower, "")

	tokens := make(map[string]struct{})
	for _, t := range strings.Fields(lower) {
		if len([]rune(t)) < 2 {
			continue
		}
		tokens[t] = struct{}{}
	}
	return tokens
}

// Similar reports whether two free-text addresses describe the same area.
// Either input empty means no similarity claim is made.
func Similar(a, b string) bool {
	if a == "" || b == "" {
		return false
	}

	ta := addressTokens(a)
	tb := addressTokens(b)

	common, total := 0, len(tb)
	for t := range ta {
		if _, ok := tb[t]; ok {
			common++
		} else {
			total++
		}
	}
	if total == 0 {
		return false
	}
	return float64(common)/float64(total) > similarityThreshold
}

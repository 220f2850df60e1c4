// Package dedup recognises near-duplicate organisations across mirrored
// listings, branches and malformed duplicate pages.
package dedup

import (
	"regexp"
	"strings"

	"github.com/leadforge/giscrawl/models"
)

var (
	spaceRe = regexp.MustCompile(`\s+`)

	// Punctuation is stripped early, except the delimiters the later
	// steps consume: parentheses, commas and the numero sign.
	punctRe = regexp.MustCompile(`[^\p{L}\p{N}\s(),№]`)

	// Branch and mall suffix markers, with optional trailing numbers.
	suffixRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\s*филиал\s*\d*`),
		regexp.MustCompile(`(?i)\s*отделение\s*\d*`),
		regexp.MustCompile(`(?i)\s*магазин\s*\d*`),
		regexp.MustCompile(`(?i)\s*точка\s*\d*`),
		regexp.MustCompile(`(?i)\s*№\s*\d+`),
		regexp.MustCompile(`\s*\d+\s*$`),
		regexp.MustCompile(`(?i)\s*mall\s*`),
		regexp.MustCompile(`(?i)\s*торговый\s*центр\s*`),
		regexp.MustCompile(`(?i)\s*тдц\s*`),
		regexp.MustCompile(`(?i)\s*тц\s*`),
		regexp.MustCompile(`(?i)\s*центр\s*`),
		regexp.MustCompile(`(?i)\s*фудкорт\s*`),
	}

	parenRe    = regexp.MustCompile(`\([^)]*\)`)
	afterComma = regexp.MustCompile(`,.*$`)
	leftoverRe = regexp.MustCompile(`[(),№]`)
)

// Normalize canonicalises a raw organisation name into its deduplication
// key. Empty and placeholder names normalise to "", which is never indexed
// and never matches. The step order is significant: suffixes are removed
// before parenthetical and comma truncation so a suffix written before a
// comma is still caught.
func Normalize(name string) string {
	if name == "" || name == models.Unspecified {
		return ""
	}

	n := strings.ToLower(strings.TrimSpace(name))
	n = spaceRe.ReplaceAllString(n, " ")
	n = punctRe.ReplaceAllString(n, "")

	for _, re := range suffixRes {
		n = re.ReplaceAllString(n, "")
	}

	n = parenRe.ReplaceAllString(n, "")
	n = afterComma.ReplaceAllString(n, "")
	n = leftoverRe.ReplaceAllString(n, "")

	return strings.TrimSpace(n)
}

package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// anchorHrefs parses serialized markup and returns the hrefs of anchors
// containing substr. A real HTML parse catches attribute orderings and
// quoting that the regex scans miss.
func anchorHrefs(html, substr string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	var hrefs []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if strings.Contains(href, substr) {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs
}

// runeWindow returns the ±radius rune window around byte offset pos.
func runeWindow(text string, pos, radius int) string {
	runes := []rune(text[:pos])
	start := len(runes) - radius
	if start < 0 {
		start = 0
	}
	prefix := string(runes[start:])

	rest := []rune(text[pos:])
	end := radius
	if end > len(rest) {
		end = len(rest)
	}
	return prefix + string(rest[:end])
}

package extract

import (
	"regexp"
	"strings"

	"github.com/leadforge/giscrawl/browser"
)

// instagramAttrs are the data attributes a labeled element may carry the
// profile link in.
var instagramAttrs = []string{
	"data-url", "data-link", "data-href", "data-instagram", "data-action",
}

// instagramAncestorLevels bounds the upward traversal from a labeled
// element to an enclosing anchor.
const instagramAncestorLevels = 3

var (
	instagramOnclickRe = regexp.MustCompile(`https://[^'"\s]*instagram\.com[^'"\s]*`)

	// Raw-markup patterns, most explicit first. Capture groups hold
	// either a full URL or a bare handle.
	instagramRawRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)https://(?:www\.)?instagram\.com/([^"')\s/]+)`),
		regexp.MustCompile(`(?i)instagram\.com/([^"')\s/]+)`),
		regexp.MustCompile(`(?i)instagram["']?\s*:\s*["']([^"']+)["']`),
		regexp.MustCompile(`(?i)window\.open\(["']([^"']*instagram[^"']*)["']`),
	}
)

// Instagram extracts the profile link: direct anchors, then labeled
// interactive elements (inline handlers, data attributes, enclosing
// anchors), then a raw-markup scan synthesizing a URL from a bare handle.
func Instagram(p browser.Page) string {
	return runChain("instagram", p, []Strategy{
		instagramFromDirectLinks,
		instagramFromLabeledElements,
		instagramFromRawContent,
	})
}

func instagramFromDirectLinks(p browser.Page) Outcome {
	els, err := p.Query(`a[href*="instagram"]`)
	if err != nil {
		return Failed(err)
	}
	for _, el := range els {
		if href, err := el.Attribute("href"); err == nil && strings.Contains(href, "instagram") {
			return Found(href)
		}
	}
	return Miss()
}

func instagramFromLabeledElements(p browser.Page) Outcome {
	loc := TextContains{Base: Selector("button, div, span, a"), Text: "instagram"}
	els, err := loc.Locate(p)
	if err != nil {
		return Failed(err)
	}
	for _, el := range els {
		if onclick, err := el.Attribute("onclick"); err == nil && onclick != "" {
			if m := instagramOnclickRe.FindString(onclick); m != "" {
				return Found(m)
			}
		}
		for _, attr := range instagramAttrs {
			if v, err := el.Attribute(attr); err == nil && strings.Contains(v, "instagram") {
				return Found(v)
			}
		}
		if href := ancestorHref(el, instagramAncestorLevels); href != "" {
			return Found(href)
		}
	}
	return Miss()
}

// ancestorHref climbs up to levels parents looking for an instagram href.
func ancestorHref(el browser.Element, levels int) string {
	current := el
	for i := 0; i < levels; i++ {
		parent, err := current.Parent()
		if err != nil || parent == nil {
			return ""
		}
		if href, err := parent.Attribute("href"); err == nil && strings.Contains(href, "instagram") {
			return href
		}
		current = parent
	}
	return ""
}

func instagramFromRawContent(p browser.Page) Outcome {
	html, err := p.RawContent()
	if err != nil {
		return Failed(err)
	}

	for _, href := range anchorHrefs(html, "instagram.com") {
		return Found(normalizeInstagram(href))
	}

	for _, re := range instagramRawRes {
		m := re.FindStringSubmatch(html)
		if m == nil {
			continue
		}
		if link := normalizeInstagram(m[1]); link != "" {
			return Found(link)
		}
	}
	return Miss()
}

// normalizeInstagram turns a bare handle or partial URL into a full
// profile URL.
func normalizeInstagram(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.Contains(v, "instagram") {
		return "https://instagram.com/" + v
	}
	if !strings.HasPrefix(v, "http") {
		return "https://" + v
	}
	if strings.Contains(v, "instagram.com") {
		return v
	}
	return ""
}

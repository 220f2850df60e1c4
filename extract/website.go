package extract

import (
	"regexp"
	"strings"

	"github.com/leadforge/giscrawl/browser"
	"github.com/leadforge/giscrawl/decode"
)

// The platform marks an organisation's site with a globe icon; the anchor
// lives in a sibling container. Both hooks are markup-specific and brittle
// by nature, hence the direct container fallback.
var websiteIconChain = []Locator{
	Selector(`svg[fill="#028eff"]`),
	Selector("svg"),
	Selector("div._1iftozu svg"),
}

// globePathSignatures are fragments of the globe icon's path data.
var globePathSignatures = []string{"M12 4a8 8", "a8 8 0", "A6 6 0"}

const websiteContainerSel = `div._49kxlr, ._49kxlr`

// ancestorLevels bounds the upward traversal from the icon to its
// contact-row container.
const ancestorLevels = 5

var domainRe = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

var allowedTLDs = map[string]struct{}{
	"com": {}, "ru": {}, "kz": {}, "org": {}, "net": {}, "biz": {},
	"info": {}, "cafe": {}, "coffee": {}, "shop": {}, "store": {},
}

// excludedDomains are the platform's own, search-engine and social hosts
// that must never be reported as an organisation's website.
var excludedDomains = []string{"2gis", "google", "yandex", "facebook", "vk"}

// Website extracts the organisation's site: globe-icon marker search first,
// then a direct query for the known container class.
func Website(p browser.Page) string {
	return runChain("website", p, []Strategy{
		websiteFromIcon,
		websiteFromContainers,
	})
}

func websiteFromIcon(p browser.Page) Outcome {
	for _, loc := range websiteIconChain {
		els, err := loc.Locate(p)
		if err != nil {
			continue
		}
		for _, svg := range els {
			if !isGlobeIcon(svg) {
				continue
			}
			if v := websiteNearIcon(svg); v != "" {
				return Found(v)
			}
		}
	}
	return Miss()
}

func isGlobeIcon(svg browser.Element) bool {
	paths, err := svg.Find("path")
	if err != nil || len(paths) == 0 {
		return false
	}
	d, err := paths[0].Attribute("d")
	if err != nil || d == "" {
		return false
	}
	for _, sig := range globePathSignatures {
		if strings.Contains(d, sig) {
			return true
		}
	}
	return false
}

// websiteNearIcon climbs from the icon and inspects each ancestor's
// website containers for a usable anchor.
func websiteNearIcon(svg browser.Element) string {
	current := svg
	for level := 0; level < ancestorLevels; level++ {
		parent, err := current.Parent()
		if err != nil || parent == nil {
			return ""
		}
		containers, err := parent.Find(websiteContainerSel)
		if err == nil {
			for _, c := range containers {
				if v := websiteFromAnchorsOf(c); v != "" {
					return v
				}
			}
		}
		current = parent
	}
	return ""
}

func websiteFromContainers(p browser.Page) Outcome {
	els, err := p.Query(websiteContainerSel)
	if err != nil {
		return Failed(err)
	}
	for _, el := range els {
		if v := websiteFromAnchorsOf(el); v != "" {
			return Found(v)
		}
	}
	return Miss()
}

// websiteFromAnchorsOf inspects a container's anchors: a redirect-service
// href is decoded, an anchor whose visible text is itself a valid domain is
// accepted directly.
func websiteFromAnchorsOf(container browser.Element) string {
	anchors, err := container.Find("a")
	if err != nil {
		return ""
	}
	for _, a := range anchors {
		if href, err := a.Attribute("href"); err == nil && decode.IsRedirectLink(href) {
			if site, ok := decode.Website(href); ok {
				return site
			}
		}
		text, err := a.Text()
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if validDomain(text) {
			if strings.HasPrefix(text, "http") {
				return text
			}
			return "https://" + text
		}
	}
	return ""
}

// validDomain reports whether s is a syntactically valid domain (subdomains
// included) with an allow-listed TLD, excluding service hosts.
func validDomain(s string) bool {
	if s == "" {
		return false
	}
	domain := strings.TrimPrefix(strings.TrimPrefix(s, "https://"), "http://")
	domain = strings.SplitN(domain, "/", 2)[0]

	if !domainRe.MatchString(domain) {
		return false
	}
	parts := strings.Split(domain, ".")
	if len(parts) < 2 {
		return false
	}
	if _, ok := allowedTLDs[strings.ToLower(parts[len(parts)-1])]; !ok {
		return false
	}
	lower := strings.ToLower(domain)
	for _, excluded := range excludedDomains {
		if strings.Contains(lower, excluded) {
			return false
		}
	}
	return true
}

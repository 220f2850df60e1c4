package extract

import (
	"regexp"
	"strings"

	"github.com/leadforge/giscrawl/browser"
	"github.com/leadforge/giscrawl/decode"
)

var whatsappDirectChain = []Locator{
	Selector(`a[href*="wa.me"]`),
	Selector(`a[href*="whatsapp"]`),
	Selector(`a[href*="` + decode.RedirectHost + `"]`),
}

// whatsappLabeledChain finds interactive elements labeled for the app;
// they carry the number in an attribute rather than an href.
var whatsappLabeledChain = []Locator{
	Selector(`button[title*="WhatsApp"], button[title*="whatsapp"]`),
	Selector(`a[title*="WhatsApp"], a[title*="whatsapp"]`),
	Selector(`div[title*="WhatsApp"], div[title*="whatsapp"]`),
	Selector(`[class*="whatsapp"]`),
	Selector(`[data-social="whatsapp"]`),
	TextContains{Base: Selector("button, a"), Text: "whatsapp"},
}

// contactAttrs is every attribute worth inspecting on a labeled element,
// inline event handlers included.
var contactAttrs = []string{
	"href", "data-url", "data-link", "data-phone",
	"data-action", "data-contact", "onclick",
	"data-whatsapp", "data-phone-number",
}

var (
	kzMobileRe  = regexp.MustCompile(`\+?7\d{10}`)
	waPathRe    = regexp.MustCompile(`wa\.me/(\d+)`)
	waSchemeRe  = regexp.MustCompile(`whatsapp://send\?phone=(\d+)`)
	waReadyRe   = regexp.MustCompile(`https://wa\.me/[^\s'"]+`)
	rawRedirect = regexp.MustCompile(`https://link\.2gis\.com/[^\s'"]+`)

	rawPhoneCtxRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)whatsapp[^0-9]*(\+?7\d{10})`),
		regexp.MustCompile(`wa\.me/(\d+)`),
		regexp.MustCompile(`(?i)data-phone["']\s*:\s*["'](\+?7\d{10})["']`),
		regexp.MustCompile(`(?i)phone["']\s*:\s*["'](\+?7\d{10})["']`),
	}
)

// proximityRadius is the rune window inspected around an app-name mention.
const proximityRadius = 100

// WhatsApp extracts a wa.me deep link through four stages: direct links,
// labeled elements inspected attribute-by-attribute, a raw-markup scan,
// and a full-text proximity search around the app name.
func WhatsApp(p browser.Page) string {
	return runChain("whatsapp", p, []Strategy{
		whatsappFromDirectLinks,
		whatsappFromLabeledElements,
		whatsappFromRawContent,
		whatsappFromProximity,
	})
}

func whatsappFromDirectLinks(p browser.Page) Outcome {
	for _, loc := range whatsappDirectChain {
		els, err := loc.Locate(p)
		if err != nil {
			continue
		}
		for _, el := range els {
			href, err := el.Attribute("href")
			if err != nil || href == "" {
				continue
			}
			if strings.Contains(href, "wa.me") || strings.Contains(href, "whatsapp") {
				return Found(href)
			}
			if decode.IsRedirectLink(href) {
				if link, ok := decode.WhatsApp(href); ok {
					return Found(link)
				}
			}
		}
	}
	return Miss()
}

func whatsappFromLabeledElements(p browser.Page) Outcome {
	for _, loc := range whatsappLabeledChain {
		els, err := loc.Locate(p)
		if err != nil {
			continue
		}
		for _, el := range els {
			for _, attr := range contactAttrs {
				v, err := el.Attribute(attr)
				if err != nil || v == "" {
					continue
				}
				if link := whatsappFromAttrValue(v); link != "" {
					return Found(link)
				}
			}
		}
	}
	return Miss()
}

// whatsappFromAttrValue digs a phone or ready-made deep link out of one
// attribute value.
func whatsappFromAttrValue(v string) string {
	if m := waPathRe.FindStringSubmatch(v); m != nil {
		return waDeepLink(m[1])
	}
	if m := waSchemeRe.FindStringSubmatch(v); m != nil {
		return waDeepLink(m[1])
	}
	if m := kzMobileRe.FindString(v); m != "" {
		return waDeepLink(m)
	}
	if strings.Contains(v, "wa.me") || strings.Contains(v, "whatsapp") {
		if m := waReadyRe.FindString(v); m != "" {
			return m
		}
	}
	return ""
}

func whatsappFromRawContent(p browser.Page) Outcome {
	html, err := p.RawContent()
	if err != nil {
		return Failed(err)
	}

	// Redirect-service links first: parsed anchors, then a raw pattern
	// for links assembled in script code.
	candidates := anchorHrefs(html, decode.RedirectHost)
	candidates = append(candidates, rawRedirect.FindAllString(html, -1)...)
	for _, link := range candidates {
		if deep, ok := decode.WhatsApp(link); ok {
			return Found(deep)
		}
	}

	for _, re := range rawPhoneCtxRes {
		m := re.FindStringSubmatch(html)
		if m == nil {
			continue
		}
		return Found(waDeepLink(m[1]))
	}
	return Miss()
}

func whatsappFromProximity(p browser.Page) Outcome {
	text, err := p.FullText()
	if err != nil {
		return Failed(err)
	}
	lower := strings.ToLower(text)
	pos := strings.Index(lower, "whatsapp")
	if pos < 0 {
		return Miss()
	}
	window := runeWindow(lower, pos, proximityRadius)
	if m := kzMobileRe.FindString(window); m != "" {
		return Found(waDeepLink(m))
	}
	return Miss()
}

// waDeepLink canonicalises a bare phone into a wa.me link, coercing a
// 10-digit number to 11 by prefixing the country code.
func waDeepLink(phone string) string {
	digits := strings.ReplaceAll(phone, "+", "")
	digits = strings.ReplaceAll(digits, " ", "")
	digits = strings.ReplaceAll(digits, "-", "")
	if len(digits) == 10 && !strings.HasPrefix(digits, "7") {
		digits = "7" + digits
	}
	return "https://wa.me/" + digits
}

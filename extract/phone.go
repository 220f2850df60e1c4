package extract

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/leadforge/giscrawl/browser"
)

var phoneChain = []Locator{
	Selector(`a[href^="tel:"]`),
	Selector(`[class*="phone"]`),
	Selector(`button[class*="phone"]`),
}

// digitRichRe is the minimum signature of a phone number in visible text.
var digitRichRe = regexp.MustCompile(`[\d\-\+\(\)\s]{7,}`)

// phonePatterns recognise Kazakhstan phone formats in free text:
// country-code-prefixed 10-11 digit numbers with optional separators.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+7\s*[-\(\s]*\d{3}\s*[-\)\s]*\d{3}[-\s]*\d{2}[-\s]*\d{2}`),
	regexp.MustCompile(`8\s*[-\(\s]*\d{3}\s*[-\)\s]*\d{3}[-\s]*\d{2}[-\s]*\d{2}`),
	regexp.MustCompile(`\+7\d{10}`),
	regexp.MustCompile(`8\d{10}`),
}

// Phone extracts the contact phone: tel: links and phone-class elements
// first, then a pattern scan over the page text. The result is
// canonicalised to E.164 when it parses as a valid number.
func Phone(p browser.Page) string {
	raw := runChain("phone", p, []Strategy{
		phoneFromElements,
		phoneFromText,
	})
	return canonicalPhone(raw)
}

func phoneFromElements(p browser.Page) Outcome {
	for _, loc := range phoneChain {
		els, err := loc.Locate(p)
		if err != nil {
			continue
		}
		for _, el := range els {
			if href, err := el.Attribute("href"); err == nil && strings.HasPrefix(href, "tel:") {
				if v := strings.TrimSpace(strings.TrimPrefix(href, "tel:")); v != "" {
					return Found(v)
				}
			}
			text, err := el.Text()
			if err != nil {
				continue
			}
			if digitRichRe.MatchString(text) {
				return Found(strings.TrimSpace(text))
			}
		}
	}
	return Miss()
}

func phoneFromText(p browser.Page) Outcome {
	text, err := p.FullText()
	if err != nil {
		return Failed(err)
	}
	for _, re := range phonePatterns {
		if m := re.FindString(text); m != "" {
			return Found(strings.TrimSpace(m))
		}
	}
	return Miss()
}

// canonicalPhone formats raw as E.164 when it parses as a valid KZ number;
// otherwise the raw extraction is kept as-is.
func canonicalPhone(raw string) string {
	if raw == "" {
		return ""
	}
	num, err := phonenumbers.Parse(raw, "KZ")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

package extract

import (
	"regexp"
	"strings"

	"github.com/leadforge/giscrawl/browser"
)

var addressChain = []Locator{
	Selector(`[class*="address"]`),
	Selector(`[class*="location"]`),
	Selector(".address"),
	Selector(".location"),
}

// addressPatterns recognise Kazakhstan-locale street addresses in free
// text: a street keyword followed by a building number, or a district
// mention. Ordered most specific first.
var addressPatterns = []*regexp.Regexp{
	regexp.MustCompile(`ЖК\s+[А-Яа-я\s]+,\s*улица\s+[А-Яа-я\s]+,\s*\d+`),
	regexp.MustCompile(`улица\s+[А-Яа-я\s]+,\s*\d+[А-Яа-я\s]*`),
	regexp.MustCompile(`проспект\s+[А-Яа-я\s]+,\s*\d+[А-Яа-я\s]*`),
	regexp.MustCompile(`бульвар\s+[А-Яа-я\s]+,\s*\d+[А-Яа-я\s]*`),
	regexp.MustCompile(`[А-Яа-я\s]+(?:район|микрорайон)[А-Яа-я\s\d,]*`),
	regexp.MustCompile(`Астана[,\s]+[А-Яа-я\s\d,]+`),
}

// Address extracts the street address: class-based containers first, then
// locale pattern search over the whole page text.
func Address(p browser.Page) string {
	return runChain("address", p, []Strategy{
		func(p browser.Page) Outcome { return firstText(p, addressChain) },
		addressFromText,
	})
}

func addressFromText(p browser.Page) Outcome {
	text, err := p.FullText()
	if err != nil {
		return Failed(err)
	}
	for _, re := range addressPatterns {
		if m := re.FindString(text); m != "" {
			return Found(strings.TrimSpace(m))
		}
	}
	return Miss()
}

package extract

import (
	"strings"

	"github.com/leadforge/giscrawl/browser"
)

// Locator finds zero or more elements on the current page. Fallback chains
// are ordered locator slices, data instead of repeated control flow.
type Locator interface {
	Locate(p browser.Page) ([]browser.Element, error)
}

// Selector locates by CSS selector.
type Selector string

func (s Selector) Locate(p browser.Page) ([]browser.Element, error) {
	return p.Query(string(s))
}

// TextEquals narrows a base locator to elements whose trimmed visible text
// equals Text exactly.
type TextEquals struct {
	Base Locator
	Text string
}

func (t TextEquals) Locate(p browser.Page) ([]browser.Element, error) {
	els, err := t.Base.Locate(p)
	if err != nil {
		return nil, err
	}
	var matched []browser.Element
	for _, el := range els {
		text, err := el.Text()
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) == t.Text {
			matched = append(matched, el)
		}
	}
	return matched, nil
}

// TextContains narrows a base locator to elements whose visible text
// contains Text, case-insensitively.
type TextContains struct {
	Base Locator
	Text string
}

func (t TextContains) Locate(p browser.Page) ([]browser.Element, error) {
	els, err := t.Base.Locate(p)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(t.Text)
	var matched []browser.Element
	for _, el := range els {
		text, err := el.Text()
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(text), needle) {
			matched = append(matched, el)
		}
	}
	return matched, nil
}

// firstText returns the first non-empty trimmed text found by the chain.
func firstText(p browser.Page, chain []Locator) Outcome {
	for _, loc := range chain {
		els, err := loc.Locate(p)
		if err != nil {
			continue
		}
		for _, el := range els {
			text, err := el.Text()
			if err != nil {
				continue
			}
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				return Found(trimmed)
			}
		}
	}
	return Miss()
}

package extract

import "github.com/leadforge/giscrawl/browser"

// nameChain tries heading and title-ish containers in priority order.
var nameChain = []Locator{
	Selector("h1"),
	Selector("h2"),
	Selector(`[class*="title"]`),
	Selector(`[class*="name"]`),
	Selector(`[class*="header"]`),
}

// Name extracts the organisation name, or "" when no heading is found.
func Name(p browser.Page) string {
	return runChain("name", p, []Strategy{
		func(p browser.Page) Outcome { return firstText(p, nameChain) },
	})
}

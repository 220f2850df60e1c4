// Package extract pulls contact fields out of a rendered detail page.
// Every field is a prioritized fallback chain of strategies; the first
// strategy producing a value wins, and a failing strategy is skipped,
// never aborting the chain.
package extract

import (
	"log/slog"

	"github.com/leadforge/giscrawl/browser"
)

// Outcome is the result of one extraction strategy: a value, a miss, or a
// strategy-level failure.
type Outcome struct {
	Value string
	Err   error
}

// Found wraps a hit. An empty value degrades to a miss.
func Found(v string) Outcome { return Outcome{Value: v} }

// Miss is the no-value outcome.
func Miss() Outcome { return Outcome{} }

// Failed wraps a strategy error. The chain logs it and moves on.
func Failed(err error) Outcome { return Outcome{Err: err} }

// Hit reports whether the outcome carries a value.
func (o Outcome) Hit() bool { return o.Err == nil && o.Value != "" }

// Strategy is one way of locating a field on the current page.
type Strategy func(p browser.Page) Outcome

// runChain evaluates strategies in order and returns the first hit, or ""
// when the chain is exhausted.
func runChain(field string, p browser.Page, strategies []Strategy) string {
	for i, s := range strategies {
		o := s(p)
		if o.Err != nil {
			slog.Debug("extraction strategy failed",
				"field", field, "strategy", i, "error", o.Err)
			continue
		}
		if o.Hit() {
			return o.Value
		}
	}
	return ""
}

// Package browser owns the Chromium session and exposes the page-driving
// capability set the crawler and extractors consume. Core packages depend
// on the Page and Element interfaces, never on Rod directly, so tests can
// drive them with fakes.
package browser

import (
	"context"
	"time"
)

// Element is one DOM node on the current page.
type Element interface {
	// Text returns the element's visible text.
	Text() (string, error)

	// Attribute returns the attribute value, or "" when absent.
	Attribute(name string) (string, error)

	// Visible and Enabled are best-effort; query failures report false.
	Visible() bool
	Enabled() bool

	ScrollIntoView() error
	Click() error

	// Parent returns the parent element, or nil at the document root.
	Parent() (Element, error)

	// Find returns descendants matching the selector.
	Find(selector string) ([]Element, error)
}

// Page is the page-driving contract. All blocking operations take a context
// so an external interrupt unwinds cleanly mid-operation.
type Page interface {
	// Navigate loads url and waits for the DOM to settle.
	Navigate(ctx context.Context, url string) error

	// Query returns all elements matching the selector, without waiting.
	Query(selector string) ([]Element, error)

	// WaitFor waits until an element matching the selector appears.
	// A timeout is silent: (nil, nil).
	WaitFor(ctx context.Context, selector string, timeout time.Duration) (Element, error)

	// Eval runs a script in the page, discarding its result.
	Eval(js string) error

	// Input focuses the first element matching the selector and types text.
	Input(selector, text string) error

	// PressEnter submits the focused control.
	PressEnter() error

	// FullText returns the rendered text of the whole page.
	FullText() (string, error)

	// RawContent returns the serialized markup, for attribute and script
	// regex scans beyond what structured queries reach.
	RawContent() (string, error)

	// WaitReady blocks until the page looks settled: DOM stable plus any
	// of the known content markers present. Best-effort; a quiet timeout
	// is not an error.
	WaitReady(ctx context.Context, timeout time.Duration) error
}

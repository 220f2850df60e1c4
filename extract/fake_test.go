package extract

import (
	"context"
	"time"

	"github.com/leadforge/giscrawl/browser"
)

// fakeElement is an in-memory browser.Element for extractor tests.
type fakeElement struct {
	text   string
	attrs  map[string]string
	parent *fakeElement
	kids   map[string][]browser.Element
}

func (e *fakeElement) Text() (string, error)                 { return e.text, nil }
func (e *fakeElement) Attribute(name string) (string, error) { return e.attrs[name], nil }
func (e *fakeElement) Visible() bool                         { return true }
func (e *fakeElement) Enabled() bool                         { return true }
func (e *fakeElement) ScrollIntoView() error                 { return nil }
func (e *fakeElement) Click() error                          { return nil }

func (e *fakeElement) Parent() (browser.Element, error) {
	if e.parent == nil {
		return nil, nil
	}
	return e.parent, nil
}

func (e *fakeElement) Find(selector string) ([]browser.Element, error) {
	return e.kids[selector], nil
}

func textEl(text string) *fakeElement { return &fakeElement{text: text} }

func attrEl(attrs map[string]string) *fakeElement { return &fakeElement{attrs: attrs} }

// fakePage serves canned elements per selector plus fixed text and markup.
type fakePage struct {
	els      map[string][]browser.Element
	fullText string
	raw      string
}

func (p *fakePage) Navigate(ctx context.Context, url string) error { return nil }

func (p *fakePage) Query(selector string) ([]browser.Element, error) {
	return p.els[selector], nil
}

func (p *fakePage) WaitFor(ctx context.Context, selector string, timeout time.Duration) (browser.Element, error) {
	if els := p.els[selector]; len(els) > 0 {
		return els[0], nil
	}
	return nil, nil
}

func (p *fakePage) Eval(js string) error              { return nil }
func (p *fakePage) Input(selector, text string) error { return nil }
func (p *fakePage) PressEnter() error                 { return nil }
func (p *fakePage) FullText() (string, error)         { return p.fullText, nil }
func (p *fakePage) RawContent() (string, error)       { return p.raw, nil }

func (p *fakePage) WaitReady(ctx context.Context, timeout time.Duration) error { return nil }

package crawl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/leadforge/giscrawl/browser"
	"github.com/leadforge/giscrawl/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fastCrawler() config.Crawler {
	return config.Crawler{
		MaxPages:           50,
		MaxAdvanceFailures: 3,
		MinDelay:           0,
		MaxDelay:           0,
	}
}

// fakeControl is a pagination control that advances the listing on click.
type fakeControl struct {
	text    string
	onClick func()
}

func (c *fakeControl) Text() (string, error)                 { return c.text, nil }
func (c *fakeControl) Attribute(name string) (string, error) { return "", nil }
func (c *fakeControl) Visible() bool                         { return true }
func (c *fakeControl) Enabled() bool                         { return true }
func (c *fakeControl) ScrollIntoView() error                 { return nil }
func (c *fakeControl) Click() error {
	c.onClick()
	return nil
}
func (c *fakeControl) Parent() (browser.Element, error)              { return nil, nil }
func (c *fakeControl) Find(string) ([]browser.Element, error)        { return nil, nil }

// fakeAnchor carries a detail-page href.
type fakeAnchor struct {
	href string
}

func (a *fakeAnchor) Text() (string, error) { return "", nil }
func (a *fakeAnchor) Attribute(name string) (string, error) {
	if name == "href" {
		return a.href, nil
	}
	return "", nil
}
func (a *fakeAnchor) Visible() bool                           { return true }
func (a *fakeAnchor) Enabled() bool                           { return true }
func (a *fakeAnchor) ScrollIntoView() error                   { return nil }
func (a *fakeAnchor) Click() error                            { return nil }
func (a *fakeAnchor) Parent() (browser.Element, error)        { return nil, nil }
func (a *fakeAnchor) Find(string) ([]browser.Element, error)  { return nil, nil }

// fakeListing simulates a paginated listing: one slice of hrefs per page,
// with a numbered control that advances to the next page when present.
type fakeListing struct {
	pages      [][]string
	idx        int
	noControls bool
}

func (l *fakeListing) Navigate(ctx context.Context, url string) error { return nil }

func (l *fakeListing) Query(selector string) ([]browser.Element, error) {
	switch {
	case strings.Contains(selector, "/firm/"):
		var els []browser.Element
		for _, href := range l.pages[l.idx] {
			els = append(els, &fakeAnchor{href: href})
		}
		return els, nil
	case selector == "a":
		if l.noControls || l.idx+1 >= len(l.pages) {
			return nil, nil
		}
		return []browser.Element{&fakeControl{
			text:    fmt.Sprintf("%d", l.idx+2),
			onClick: func() { l.idx++ },
		}}, nil
	}
	return nil, nil
}

func (l *fakeListing) WaitFor(ctx context.Context, selector string, timeout time.Duration) (browser.Element, error) {
	els, err := l.Query(selector)
	if err != nil || len(els) == 0 {
		return nil, err
	}
	return els[0], nil
}

func (l *fakeListing) Eval(js string) error              { return nil }
func (l *fakeListing) Input(selector, text string) error { return nil }
func (l *fakeListing) PressEnter() error                 { return nil }
func (l *fakeListing) FullText() (string, error)         { return "", nil }
func (l *fakeListing) RawContent() (string, error)       { return "", nil }

func (l *fakeListing) WaitReady(ctx context.Context, timeout time.Duration) error { return nil }

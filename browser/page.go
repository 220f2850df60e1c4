package browser

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"

	"github.com/leadforge/giscrawl/config"
	"github.com/leadforge/giscrawl/models"
)

// readyMarkers are the content signatures whose presence means a detail or
// listing page has rendered enough to extract from. Any one suffices.
var readyMarkers = []string{
	"h1, h2",
	`[class*="contact"]`,
	`[class*="phone"]`,
	"button, a",
}

// rodPage adapts a *rod.Page to the Page interface.
type rodPage struct {
	page *rod.Page
	cfg  config.Browser
}

func (p *rodPage) Navigate(ctx context.Context, url string) error {
	pg := p.page.Context(ctx).Timeout(p.cfg.NavigationTimeout)
	if err := pg.Navigate(url); err != nil {
		return models.NewCrawlError(models.ErrCodeNavigation, "page load failed", err)
	}
	if err := pg.WaitDOMStable(300*time.Millisecond, 0.1); err != nil {
		slog.Debug("DOM did not stabilise after navigation, proceeding",
			"url", url, "error", err)
	}
	return nil
}

func (p *rodPage) Query(selector string) ([]Element, error) {
	els, err := p.page.Elements(selector)
	if err != nil {
		return nil, err
	}
	wrapped := make([]Element, 0, len(els))
	for _, el := range els {
		wrapped = append(wrapped, &rodElement{el: el})
	}
	return wrapped, nil
}

func (p *rodPage) WaitFor(ctx context.Context, selector string, timeout time.Duration) (Element, error) {
	pg := p.page.Context(ctx).Timeout(timeout)
	el, err := pg.Element(selector)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// Absence is a silent miss, not an error.
		return nil, nil
	}
	return &rodElement{el: el}, nil
}

func (p *rodPage) Eval(js string) error {
	_, err := p.page.Eval(js)
	return err
}

func (p *rodPage) Input(selector, text string) error {
	el, err := p.page.Element(selector)
	if err != nil {
		return err
	}
	if err := el.SelectAllText(); err == nil {
		_ = el.Type(input.Backspace)
	}
	return el.Input(text)
}

func (p *rodPage) PressEnter() error {
	return p.page.Keyboard.Type(input.Enter)
}

func (p *rodPage) FullText() (string, error) {
	res, err := p.page.Eval(`() => document.body ? document.body.innerText : ""`)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

func (p *rodPage) RawContent() (string, error) {
	return p.page.HTML()
}

// WaitReady blocks until the DOM is stable and any known content marker is
// present. Misses time out silently: a page with none of the markers is
// still handed to the extractors, which degrade per-field.
func (p *rodPage) WaitReady(ctx context.Context, timeout time.Duration) error {
	pg := p.page.Context(ctx).Timeout(timeout)

	if err := pg.WaitDOMStable(300*time.Millisecond, 0.1); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		slog.Debug("DOM did not stabilise during readiness wait", "error", err)
	}

	race := pg.Race()
	for _, sel := range readyMarkers {
		race = race.Element(sel)
	}
	if _, err := race.Do(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		slog.Debug("no content marker appeared before timeout", "error", err)
	}
	return nil
}

// rodElement adapts a *rod.Element to the Element interface.
type rodElement struct {
	el *rod.Element
}

func (e *rodElement) Text() (string, error) {
	return e.el.Text()
}

func (e *rodElement) Attribute(name string) (string, error) {
	v, err := e.el.Attribute(name)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}

func (e *rodElement) Visible() bool {
	v, err := e.el.Visible()
	return err == nil && v
}

func (e *rodElement) Enabled() bool {
	prop, err := e.el.Property("disabled")
	if err != nil {
		return false
	}
	return !prop.Bool()
}

func (e *rodElement) ScrollIntoView() error {
	return e.el.ScrollIntoView()
}

func (e *rodElement) Click() error {
	return e.el.Click(proto.InputMouseButtonLeft, 1)
}

func (e *rodElement) Parent() (Element, error) {
	parent, err := e.el.Parent()
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, nil
	}
	return &rodElement{el: parent}, nil
}

func (e *rodElement) Find(selector string) ([]Element, error) {
	els, err := e.el.Elements(selector)
	if err != nil {
		return nil, err
	}
	wrapped := make([]Element, 0, len(els))
	for _, el := range els {
		wrapped = append(wrapped, &rodElement{el: el})
	}
	return wrapped, nil
}

package browser

import (
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/leadforge/giscrawl/config"
	"github.com/leadforge/giscrawl/models"
)

// Session manages the browser lifecycle for one crawl run. A single page is
// active at a time: every candidate link is processed fully before the next
// starts, trading throughput for lower detection risk.
type Session struct {
	browser *rod.Browser
	page    *rod.Page
	cfg     config.Browser
}

// NewSession launches Chromium and prepares the single working page.
// This is the only operation whose failure aborts the whole run.
func NewSession(cfg config.Browser) (*Session, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}
	if cfg.Proxy != "" {
		l = l.Proxy(cfg.Proxy)
	}

	// ── Stealth flags ────────────────────────────────────────────────
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("ignore-certificate-errors"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewCrawlError(
			models.ErrCodeBrowserCrash,
			"failed to launch browser",
			err,
		)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, models.NewCrawlError(
			models.ErrCodeBrowserCrash,
			"failed to connect to browser",
			err,
		)
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		b.MustClose()
		return nil, models.NewCrawlError(
			models.ErrCodeBrowserCrash,
			"failed to open working page",
			err,
		)
	}

	// Stealth JS must be installed before any navigation happens.
	if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
		slog.Warn("stealth injection failed, proceeding without stealth",
			"error", evalErr,
		)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             1920,
		Height:            920,
		DeviceScaleFactor: 1,
	}); err != nil {
		slog.Warn("failed to set viewport", "error", err)
	}

	_ = proto.NetworkSetExtraHTTPHeaders{
		Headers: toHeadersMap(map[string]string{
			"Accept-Language": "ru-RU,ru;q=0.9,en;q=0.6",
		}),
	}.Call(page)

	// Block heavyweight resources; text and scripts still load.
	setupHijack(page, cfg.BlockedResourceTypes)

	return &Session{browser: b, page: page, cfg: cfg}, nil
}

// Page returns the session's working page behind the driving interface.
func (s *Session) Page() Page {
	return &rodPage{page: s.page, cfg: s.cfg}
}

// Close kills the browser process. Runs on every exit path, including
// interrupt, to prevent zombie Chrome processes.
func (s *Session) Close() {
	slog.Info("session shutting down: closing browser")
	s.browser.MustClose()
	slog.Info("session shutdown complete")
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}

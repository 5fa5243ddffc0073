package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/storefront-qa/sauce-e2e/internal/config"
)

// Launcher owns the playwright driver and one launched browser. Contexts it
// hands out are isolated: separate cookie jars and storage.
type Launcher struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cfg     *config.SuiteConfig
	logger  *zap.Logger
}

// Launch starts playwright and the browser named by cfg.Browser.
func Launch(cfg *config.SuiteConfig, logger *zap.Logger) (*Launcher, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browserType, err := browserTypeFor(pw, cfg.Browser)
	if err != nil {
		_ = pw.Stop()
		return nil, err
	}

	b, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", cfg.Browser, err)
	}

	logger.Info("browser launched",
		zap.String("browser", cfg.Browser),
		zap.Bool("headless", cfg.Headless),
		zap.String("version", b.Version()),
	)

	return &Launcher{pw: pw, browser: b, cfg: cfg, logger: logger}, nil
}

func browserTypeFor(pw *playwright.Playwright, name string) (playwright.BrowserType, error) {
	switch name {
	case config.BrowserChromium:
		return pw.Chromium, nil
	case config.BrowserFirefox:
		return pw.Firefox, nil
	case config.BrowserWebKit:
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("unsupported browser %q", name)
	}
}

// NewContext opens an isolated browsing context with the suite timeouts applied.
func (l *Launcher) NewContext(options ...playwright.BrowserNewContextOptions) (playwright.BrowserContext, error) {
	ctx, err := l.browser.NewContext(options...)
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}
	ctx.SetDefaultTimeout(l.cfg.TimeoutMS())
	ctx.SetDefaultNavigationTimeout(l.cfg.TimeoutMS())
	return ctx, nil
}

// NewSession opens a fresh context and page resolving paths against baseURL.
// Closing the returned context releases both.
func (l *Launcher) NewSession(baseURL string, options ...playwright.BrowserNewContextOptions) (*PageSession, playwright.BrowserContext, error) {
	ctx, err := l.NewContext(options...)
	if err != nil {
		return nil, nil, err
	}
	page, err := ctx.NewPage()
	if err != nil {
		_ = ctx.Close()
		return nil, nil, fmt.Errorf("could not create page: %w", err)
	}
	return NewSession(page, baseURL), ctx, nil
}

// Playwright exposes the driver, e.g. for API request contexts.
func (l *Launcher) Playwright() *playwright.Playwright {
	return l.pw
}

// Close shuts the browser and the driver down.
func (l *Launcher) Close() error {
	var firstErr error
	if err := l.browser.Close(); err != nil {
		firstErr = fmt.Errorf("failed to close browser: %w", err)
	}
	if err := l.pw.Stop(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to stop playwright: %w", err)
	}
	return firstErr
}

// Install downloads the driver and the given browsers (all when empty).
func Install(browsers ...string) error {
	opts := &playwright.RunOptions{}
	if len(browsers) > 0 {
		opts.Browsers = browsers
	}
	return playwright.Install(opts)
}

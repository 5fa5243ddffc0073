// Package pages holds one page object per storefront screen. A page object is
// a locator map plus one-line actions and assertions over a browser.Session.
package pages

import (
	"errors"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/storefront-qa/sauce-e2e/internal/browser"
)

// DefaultAssertionTimeout bounds how long assertions wait for a condition.
const DefaultAssertionTimeout = 10 * time.Second

// ErrNoPage is returned by assertions when the session has no real page behind it.
var ErrNoPage = errors.New("session has no playwright page")

// Page is what every page object shares: the session it drives.
type Page interface {
	Session() browser.Session
}

// Option tunes a page object.
type Option func(*Base)

// WithTimeout overrides DefaultAssertionTimeout.
func WithTimeout(d time.Duration) Option {
	return func(b *Base) {
		b.timeout = d
	}
}

// Base is embedded by every page object.
type Base struct {
	session browser.Session
	timeout time.Duration
}

func newBase(s browser.Session, opts ...Option) Base {
	b := Base{session: s, timeout: DefaultAssertionTimeout}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Session returns the driven session.
func (b *Base) Session() browser.Session {
	return b.session
}

// Goto navigates relative to the base URL.
func (b *Base) Goto(path string) error {
	_, err := b.session.Goto(path)
	return err
}

func (b *Base) page() (playwright.Page, error) {
	p := b.session.Page()
	if p == nil {
		return nil, ErrNoPage
	}
	return p, nil
}

func (b *Base) locator(selector string) (playwright.Locator, error) {
	p, err := b.page()
	if err != nil {
		return nil, err
	}
	return p.Locator(selector), nil
}

func (b *Base) expect() playwright.PlaywrightAssertions {
	return playwright.NewPlaywrightAssertions(float64(b.timeout.Milliseconds()))
}

func (b *Base) expectLocator(selector string) (playwright.LocatorAssertions, error) {
	loc, err := b.locator(selector)
	if err != nil {
		return nil, err
	}
	return b.expect().Locator(loc), nil
}

// AssertVisible waits for selector to become visible.
func (b *Base) AssertVisible(selector string) error {
	e, err := b.expectLocator(selector)
	if err != nil {
		return err
	}
	return e.ToBeVisible()
}

// AssertHidden waits for selector to be hidden or detached.
func (b *Base) AssertHidden(selector string) error {
	e, err := b.expectLocator(selector)
	if err != nil {
		return err
	}
	return e.ToBeHidden()
}

// AssertText waits for selector to have exactly text.
func (b *Base) AssertText(selector, text string) error {
	e, err := b.expectLocator(selector)
	if err != nil {
		return err
	}
	return e.ToHaveText(text)
}

// AssertContainsText waits for selector to contain text.
func (b *Base) AssertContainsText(selector, text string) error {
	e, err := b.expectLocator(selector)
	if err != nil {
		return err
	}
	return e.ToContainText(text)
}

// AssertCount waits for selector to match exactly n elements.
func (b *Base) AssertCount(selector string, n int) error {
	e, err := b.expectLocator(selector)
	if err != nil {
		return err
	}
	return e.ToHaveCount(n)
}

// AssertFocused waits for selector to hold keyboard focus.
func (b *Base) AssertFocused(selector string) error {
	e, err := b.expectLocator(selector)
	if err != nil {
		return err
	}
	return e.ToBeFocused()
}

// AssertURL waits for the page URL to match pattern.
func (b *Base) AssertURL(pattern string) error {
	p, err := b.page()
	if err != nil {
		return err
	}
	return b.expect().Page(p).ToHaveURL(regexpFor(pattern))
}

// AllTexts returns the text content of every element matching selector.
func (b *Base) AllTexts(selector string) ([]string, error) {
	loc, err := b.locator(selector)
	if err != nil {
		return nil, err
	}
	return loc.AllTextContents()
}

// ClickWithText clicks the element matching selector that contains text.
func (b *Base) ClickWithText(selector, text string) error {
	loc, err := b.locator(selector)
	if err != nil {
		return err
	}
	return loc.Filter(playwright.LocatorFilterOptions{HasText: text}).Click()
}

// Package browser binds the suite to the playwright automation engine.
//
// Helpers never talk to playwright directly; they receive a Session, the
// capability object for one browsing context. Errors returned by a Session
// are automation failures and are passed to callers unmodified.
package browser

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// Cookie is a cookie as seen in the browsing context's cookie jar.
type Cookie struct {
	Name     string
	Value    string
	Domain   string
	Path     string
	Expires  float64
	HTTPOnly bool
	Secure   bool
	SameSite string
}

// Response is the main-resource response of a navigation.
type Response struct {
	Status  int
	URL     string
	Headers map[string]string
}

// Session is one browsing context: a page plus its cookie jar.
type Session interface {
	// Goto navigates to url; paths are resolved against the base URL.
	Goto(url string) (*Response, error)
	URL() string
	Fill(selector, value string) error
	Click(selector string) error
	Press(selector, key string) error
	IsVisible(selector string) (bool, error)
	TextContent(selector string) (string, error)
	InnerHTML(selector string) (string, error)
	Cookies() ([]Cookie, error)
	AddCookies(cookies ...Cookie) error
	Screenshot(fullPage bool) ([]byte, error)
	// AddScriptTag loads the script at url into the current document.
	AddScriptTag(url string) error
	// Evaluate runs a JavaScript expression or function in the page.
	Evaluate(expression string, arg ...interface{}) (interface{}, error)
	// Page exposes the underlying playwright page for page objects. Fakes return nil.
	Page() playwright.Page
}

// PageSession adapts a playwright.Page to Session.
type PageSession struct {
	page    playwright.Page
	baseURL string
}

// NewSession wraps page. baseURL may be empty when every navigation is absolute.
func NewSession(page playwright.Page, baseURL string) *PageSession {
	return &PageSession{
		page:    page,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// ResolveURL joins a path with base. Absolute URLs are returned unchanged.
func ResolveURL(base, target string) (string, error) {
	if base == "" {
		return target, nil
	}
	ref, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", target, err)
	}
	if ref.IsAbs() {
		return target, nil
	}
	root, err := url.Parse(base + "/")
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", base, err)
	}
	return root.ResolveReference(ref).String(), nil
}

func (s *PageSession) Goto(target string) (*Response, error) {
	resolved, err := ResolveURL(s.baseURL, target)
	if err != nil {
		return nil, err
	}
	resp, err := s.page.Goto(resolved)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return &Response{URL: s.page.URL(), Headers: map[string]string{}}, nil
	}
	return &Response{
		Status:  resp.Status(),
		URL:     resp.URL(),
		Headers: resp.Headers(),
	}, nil
}

func (s *PageSession) URL() string {
	return s.page.URL()
}

func (s *PageSession) Fill(selector, value string) error {
	return s.page.Locator(selector).Fill(value)
}

func (s *PageSession) Click(selector string) error {
	return s.page.Locator(selector).Click()
}

func (s *PageSession) Press(selector, key string) error {
	return s.page.Locator(selector).Press(key)
}

func (s *PageSession) IsVisible(selector string) (bool, error) {
	return s.page.Locator(selector).IsVisible()
}

func (s *PageSession) TextContent(selector string) (string, error) {
	return s.page.Locator(selector).TextContent()
}

func (s *PageSession) InnerHTML(selector string) (string, error) {
	return s.page.Locator(selector).InnerHTML()
}

func (s *PageSession) Cookies() ([]Cookie, error) {
	raw, err := s.page.Context().Cookies()
	if err != nil {
		return nil, err
	}
	cookies := make([]Cookie, 0, len(raw))
	for _, c := range raw {
		cookie := Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  c.Expires,
			HTTPOnly: c.HttpOnly,
			Secure:   c.Secure,
		}
		if c.SameSite != nil {
			cookie.SameSite = string(*c.SameSite)
		}
		cookies = append(cookies, cookie)
	}
	return cookies, nil
}

func (s *PageSession) AddCookies(cookies ...Cookie) error {
	optional := make([]playwright.OptionalCookie, 0, len(cookies))
	for _, c := range cookies {
		oc := playwright.OptionalCookie{
			Name:  c.Name,
			Value: c.Value,
			Path:  playwright.String(c.Path),
		}
		if c.Domain != "" {
			oc.Domain = playwright.String(c.Domain)
		}
		if c.HTTPOnly {
			oc.HttpOnly = playwright.Bool(true)
		}
		if c.Secure {
			oc.Secure = playwright.Bool(true)
		}
		optional = append(optional, oc)
	}
	return s.page.Context().AddCookies(optional)
}

func (s *PageSession) Screenshot(fullPage bool) ([]byte, error) {
	return s.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(fullPage),
	})
}

func (s *PageSession) AddScriptTag(url string) error {
	_, err := s.page.AddScriptTag(playwright.PageAddScriptTagOptions{URL: playwright.String(url)})
	if err != nil {
		return fmt.Errorf("could not load script %s: %w", url, err)
	}
	return nil
}

func (s *PageSession) Evaluate(expression string, arg ...interface{}) (interface{}, error) {
	return s.page.Evaluate(expression, arg...)
}

func (s *PageSession) Page() playwright.Page {
	return s.page
}

// Package browsertest provides an in-memory browser.Session for unit tests.
package browsertest

import (
	"fmt"
	"net/url"

	"github.com/playwright-community/playwright-go"

	"github.com/storefront-qa/sauce-e2e/internal/browser"
)

// Action is one recorded interaction.
type Action struct {
	Kind     string
	Selector string
	Value    string
}

// FakeSession scripts page content and records what helpers do with it.
// Set Errors["<kind>:<selector-or-url>"] to make a call fail.
type FakeSession struct {
	BaseURL    string
	CurrentURL string
	Texts      map[string]string
	HTML       map[string]string
	Visible    map[string]bool
	Responses  map[string]*browser.Response
	Errors     map[string]error
	Jar        []browser.Cookie
	PNG        []byte
	// Eval answers Evaluate calls. Unset, every evaluation yields nil.
	Eval func(expression string, arg ...interface{}) (interface{}, error)

	Actions []Action
}

var _ browser.Session = (*FakeSession)(nil)

// NewFakeSession returns a session positioned at baseURL.
func NewFakeSession(baseURL string) *FakeSession {
	return &FakeSession{
		BaseURL:    baseURL,
		CurrentURL: baseURL + "/",
		Texts:      map[string]string{},
		HTML:       map[string]string{},
		Visible:    map[string]bool{},
		Responses:  map[string]*browser.Response{},
		Errors:     map[string]error{},
	}
}

func (f *FakeSession) record(kind, selector, value string) error {
	f.Actions = append(f.Actions, Action{Kind: kind, Selector: selector, Value: value})
	return f.Errors[kind+":"+selector]
}

func (f *FakeSession) Goto(target string) (*browser.Response, error) {
	resolved, err := browser.ResolveURL(f.BaseURL, target)
	if err != nil {
		return nil, err
	}
	if err := f.record("goto", target, ""); err != nil {
		return nil, err
	}
	f.CurrentURL = resolved
	if resp, ok := f.Responses[target]; ok {
		return resp, nil
	}
	return &browser.Response{Status: 200, URL: resolved, Headers: map[string]string{}}, nil
}

func (f *FakeSession) URL() string {
	return f.CurrentURL
}

func (f *FakeSession) Fill(selector, value string) error {
	return f.record("fill", selector, value)
}

func (f *FakeSession) Click(selector string) error {
	return f.record("click", selector, "")
}

func (f *FakeSession) Press(selector, key string) error {
	return f.record("press", selector, key)
}

func (f *FakeSession) IsVisible(selector string) (bool, error) {
	if err := f.record("visible", selector, ""); err != nil {
		return false, err
	}
	return f.Visible[selector], nil
}

func (f *FakeSession) TextContent(selector string) (string, error) {
	if err := f.record("text", selector, ""); err != nil {
		return "", err
	}
	text, ok := f.Texts[selector]
	if !ok {
		return "", fmt.Errorf("no element matches %q", selector)
	}
	return text, nil
}

func (f *FakeSession) InnerHTML(selector string) (string, error) {
	if err := f.record("html", selector, ""); err != nil {
		return "", err
	}
	html, ok := f.HTML[selector]
	if !ok {
		return "", fmt.Errorf("no element matches %q", selector)
	}
	return html, nil
}

func (f *FakeSession) Cookies() ([]browser.Cookie, error) {
	if err := f.record("cookies", "", ""); err != nil {
		return nil, err
	}
	out := make([]browser.Cookie, len(f.Jar))
	copy(out, f.Jar)
	return out, nil
}

// AddCookies replaces cookies with the same name, domain and path.
func (f *FakeSession) AddCookies(cookies ...browser.Cookie) error {
	if err := f.record("add-cookies", "", ""); err != nil {
		return err
	}
	for _, c := range cookies {
		replaced := false
		for i, existing := range f.Jar {
			if existing.Name == c.Name && existing.Domain == c.Domain && existing.Path == c.Path {
				f.Jar[i] = c
				replaced = true
				break
			}
		}
		if !replaced {
			f.Jar = append(f.Jar, c)
		}
	}
	return nil
}

func (f *FakeSession) Screenshot(fullPage bool) ([]byte, error) {
	if err := f.record("screenshot", "", fmt.Sprint(fullPage)); err != nil {
		return nil, err
	}
	return f.PNG, nil
}

func (f *FakeSession) AddScriptTag(url string) error {
	return f.record("script", url, "")
}

func (f *FakeSession) Evaluate(expression string, arg ...interface{}) (interface{}, error) {
	if err := f.record("evaluate", expression, ""); err != nil {
		return nil, err
	}
	if f.Eval == nil {
		return nil, nil
	}
	return f.Eval(expression, arg...)
}

func (f *FakeSession) Page() playwright.Page {
	return nil
}

// Host returns the hostname of the current URL.
func (f *FakeSession) Host() string {
	u, err := url.Parse(f.CurrentURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// ActionsOf filters recorded actions by kind.
func (f *FakeSession) ActionsOf(kind string) []Action {
	var out []Action
	for _, a := range f.Actions {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

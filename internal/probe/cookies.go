package probe

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storefront-qa/sauce-e2e/internal/browser"
)

// SessionCookie is the cookie the storefront keeps the signed-in user in.
const SessionCookie = "session-username"

// GetCookie looks name up in the session's jar. A missing cookie is reported
// through ok, never as an error.
func GetCookie(session browser.Session, name string) (cookie browser.Cookie, ok bool, err error) {
	cookies, err := session.Cookies()
	if err != nil {
		return browser.Cookie{}, false, err
	}
	for _, c := range cookies {
		if c.Name == name {
			return c, true, nil
		}
	}
	return browser.Cookie{}, false, nil
}

// SetCookie stores name=value for the host of the current page, path "/".
func SetCookie(session browser.Session, name, value string) error {
	current, err := url.Parse(session.URL())
	if err != nil {
		return fmt.Errorf("cannot set cookie %q: %w", name, err)
	}
	host := current.Hostname()
	if host == "" {
		return fmt.Errorf("cannot set cookie %q: page %q has no host", name, session.URL())
	}
	return session.AddCookies(browser.Cookie{
		Name:   name,
		Value:  value,
		Domain: host,
		Path:   "/",
	})
}

// CookieFlags lists the attributes AssertCookieSecurity checks. Nil and empty
// fields are not checked.
type CookieFlags struct {
	Secure   *bool
	HTTPOnly *bool
	SameSite string
}

// AssertCookieSecurity records on t when the cookie is missing or its flags differ.
func AssertCookieSecurity(t testing.TB, session browser.Session, name string, want CookieFlags) error {
	t.Helper()

	cookie, ok, err := GetCookie(session, name)
	if err != nil {
		return err
	}
	if !assert.True(t, ok, "cookie %q is not set", name) {
		return nil
	}
	if want.Secure != nil {
		assert.Equal(t, *want.Secure, cookie.Secure, "cookie %q Secure flag", name)
	}
	if want.HTTPOnly != nil {
		assert.Equal(t, *want.HTTPOnly, cookie.HTTPOnly, "cookie %q HttpOnly flag", name)
	}
	if want.SameSite != "" {
		assert.Equal(t, want.SameSite, cookie.SameSite, "cookie %q SameSite", name)
	}
	return nil
}

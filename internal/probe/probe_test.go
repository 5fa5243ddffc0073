package probe

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/storefront-qa/sauce-e2e/internal/browser"
	"github.com/storefront-qa/sauce-e2e/internal/browser/browsertest"
	"github.com/storefront-qa/sauce-e2e/internal/pages"
)

// recordingT captures assertion failures instead of failing the real test.
type recordingT struct {
	testing.TB
	failures []string
}

func (r *recordingT) Errorf(format string, args ...any) {
	r.failures = append(r.failures, format)
}

func (r *recordingT) Helper() {}

func (r *recordingT) failed() bool {
	return len(r.failures) > 0
}

func TestPayloadCatalogs(t *testing.T) {
	assert.Equal(t, []string{"basic", "union", "comment", "doubleDash", "semicolon"}, SQLInjectionPayloads.Names())
	assert.Equal(t, []string{"scriptTag", "imgTag", "svgTag", "eventHandler", "iframe"}, XSSPayloads.Names())

	assert.Equal(t, "' OR '1'='1", SQLInjectionPayloads.MustPayload("basic"))
	assert.Equal(t, "admin'; DROP TABLE users--", SQLInjectionPayloads.MustPayload("semicolon"))
	assert.Equal(t, "<img src=x onerror=alert('XSS')>", XSSPayloads.MustPayload("imgTag"))
	assert.Equal(t, `" onload="alert('XSS')`, XSSPayloads.MustPayload("eventHandler"))

	_, err := XSSPayloads.Payload("marquee")
	assert.ErrorContains(t, err, `xss catalog has no payload "marquee"`)
	assert.Panics(t, func() { SQLInjectionPayloads.MustPayload("nope") })
}

func TestCatalog_AllReturnsACopy(t *testing.T) {
	all := SQLInjectionPayloads.All()
	all[0].Value = "tampered"

	assert.Equal(t, "' OR '1'='1", SQLInjectionPayloads.MustPayload("basic"))
}

func TestCatalogs(t *testing.T) {
	catalogs := Catalogs()
	require.Len(t, catalogs, 2)
	assert.Equal(t, XSSPayloads.Names(), catalogs["xss"].Names())
}

func TestGenerateRepeatedString(t *testing.T) {
	assert.Equal(t, "aaaaa", GenerateRepeatedString(5, "a"))
	assert.Equal(t, "", GenerateRepeatedString(0, "a"))
	assert.Equal(t, "", GenerateRepeatedString(-3, "a"))
	assert.Equal(t, "aaa", GenerateRepeatedString(3, ""))
	assert.Equal(t, "xyxy", GenerateRepeatedString(2, "xy"))
}

func TestGenerateRepeatedString_Length(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 2000).Draw(rt, "n")
		c := rapid.RuneFrom([]rune("ab€")).Draw(rt, "c")

		s := GenerateRepeatedString(n, string(c))
		if got := len([]rune(s)); got != n {
			rt.Fatalf("length %d, want %d", got, n)
		}
		if strings.Trim(s, string(c)) != "" {
			rt.Fatalf("%q contains other characters", s)
		}
	})
}

func TestScanLeakedDatabaseErrors(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		rules []string
	}{
		{name: "clean page", text: "Products Sauce Labs Backpack $29.99"},
		{name: "login error", text: ExpectedLoginFailureMessage},
		{name: "syntax error leak", text: "You have an error in your SQL syntax error near ''1'='1'", rules: []string{"sql", "syntax-error"}},
		{name: "engine names", text: "PostgreSQL said: query failed", rules: []string{"sql", "postgresql", "query-failed"}},
		{name: "case insensitive", text: "ORA-00933: Oracle DATABASE ERROR", rules: []string{"oracle", "database-error"}},
		{name: "sqlite", text: "sqlite3.OperationalError", rules: []string{"sql", "sqlite"}},
		{name: "mysql", text: "Warning: mysql_fetch_array()", rules: []string{"sql", "mysql"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rules []string
			for _, f := range ScanLeakedDatabaseErrors(tt.text) {
				rules = append(rules, f.Rule)
			}
			assert.Equal(t, tt.rules, rules)
		})
	}
}

func TestScanScriptArtifacts(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		rules  []string
	}{
		{name: "raw script", markup: "<div><script>alert('x')</script></div>", rules: []string{"script-alert"}},
		{name: "escaped script", markup: "<div>&lt;script&gt;alert('x')&lt;/script&gt;</div>"},
		{name: "escaped inside value attribute", markup: `<input value="&lt;img src=x onerror=alert('XSS')&gt;">`},
		{name: "raw img handler", markup: `<img src=x onerror=alert('XSS')>`, rules: []string{"img-onerror"}},
		{name: "img handler with spacing", markup: `<IMG SRC="x" ONERROR = alert(1)>`, rules: []string{"img-onerror"}},
		{name: "raw svg handler", markup: `<svg width="1" onload=alert(1)></svg>`, rules: []string{"svg-onload"}},
		{name: "svg slash form is not matched", markup: `<svg/onload=alert('XSS')>`},
		{name: "handler without alert", markup: `<img src=x onerror=track()>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rules []string
			for _, f := range ScanScriptArtifacts(tt.markup) {
				rules = append(rules, f.Rule)
			}
			assert.Equal(t, tt.rules, rules)
		})
	}
}

func TestScanScriptArtifacts_EscapedPayloadsNeverMatch(t *testing.T) {
	escaper := strings.NewReplacer("<", "&lt;", ">", "&gt;")
	for _, p := range XSSPayloads.All() {
		t.Run(p.Name, func(t *testing.T) {
			assert.Empty(t, ScanScriptArtifacts("<p>"+escaper.Replace(p.Value)+"</p>"))
		})
	}
}

func TestAssertNoLeakedDatabaseErrors(t *testing.T) {
	t.Run("fails on leaked error", func(t *testing.T) {
		fake := browsertest.NewFakeSession("https://www.saucedemo.com")
		fake.Texts["body"] = "Error: SQL syntax error near 'OR'"
		rec := &recordingT{TB: t}

		err := AssertNoLeakedDatabaseErrors(rec, fake)

		require.NoError(t, err)
		assert.True(t, rec.failed())
	})

	t.Run("passes on clean page", func(t *testing.T) {
		fake := browsertest.NewFakeSession("https://www.saucedemo.com")
		fake.Texts["body"] = "Swag Labs " + ExpectedLoginFailureMessage
		rec := &recordingT{TB: t}

		require.NoError(t, AssertNoLeakedDatabaseErrors(rec, fake))
		assert.False(t, rec.failed())
	})

	t.Run("automation error is returned, not recorded", func(t *testing.T) {
		fake := browsertest.NewFakeSession("https://www.saucedemo.com")
		boom := errors.New("target closed")
		fake.Errors["text:body"] = boom
		rec := &recordingT{TB: t}

		assert.Same(t, boom, AssertNoLeakedDatabaseErrors(rec, fake))
		assert.False(t, rec.failed())
	})
}

func TestAssertNoScriptExecutionArtifacts(t *testing.T) {
	t.Run("fails on raw script", func(t *testing.T) {
		fake := browsertest.NewFakeSession("https://www.saucedemo.com")
		fake.HTML["body"] = "<h3><script>alert('x')</script></h3>"
		rec := &recordingT{TB: t}

		require.NoError(t, AssertNoScriptExecutionArtifacts(rec, fake))
		assert.True(t, rec.failed())
	})

	t.Run("passes on escaped script", func(t *testing.T) {
		fake := browsertest.NewFakeSession("https://www.saucedemo.com")
		fake.HTML["body"] = "<h3>&lt;script&gt;alert('x')&lt;/script&gt;</h3>"
		rec := &recordingT{TB: t}

		require.NoError(t, AssertNoScriptExecutionArtifacts(rec, fake))
		assert.False(t, rec.failed())
	})

	t.Run("automation error", func(t *testing.T) {
		fake := browsertest.NewFakeSession("https://www.saucedemo.com")
		rec := &recordingT{TB: t}

		assert.Error(t, AssertNoScriptExecutionArtifacts(rec, fake))
		assert.False(t, rec.failed())
	})
}

func TestVerifyLoginFailed(t *testing.T) {
	tests := []struct {
		name       string
		visible    bool
		text       string
		wantFailed bool
	}{
		{name: "generic mismatch message", visible: true, text: ExpectedLoginFailureMessage},
		{name: "no error shown", visible: false, wantFailed: true},
		{name: "different error", visible: true, text: "Epic sadface: Sorry, this user has been locked out.", wantFailed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := browsertest.NewFakeSession("https://www.saucedemo.com")
			fake.Visible[pages.SelectorError] = tt.visible
			fake.Texts[pages.SelectorError] = tt.text
			rec := &recordingT{TB: t}

			require.NoError(t, VerifyLoginFailed(rec, fake))
			assert.Equal(t, tt.wantFailed, rec.failed())
		})
	}
}

func TestSetCookieThenGetCookie(t *testing.T) {
	fake := browsertest.NewFakeSession("https://www.saucedemo.com")
	_, err := fake.Goto("/inventory.html")
	require.NoError(t, err)

	require.NoError(t, SetCookie(fake, SessionCookie, "standard_user"))
	cookie, ok, err := GetCookie(fake, SessionCookie)

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "standard_user", cookie.Value)
	assert.Equal(t, "www.saucedemo.com", cookie.Domain, "scoped to the current host")
	assert.Equal(t, "/", cookie.Path)
	assert.False(t, cookie.Secure)
	assert.False(t, cookie.HTTPOnly)
}

func TestSetCookie_OverwritesTamperedValue(t *testing.T) {
	fake := browsertest.NewFakeSession("https://www.saucedemo.com")
	require.NoError(t, SetCookie(fake, SessionCookie, "standard_user"))
	require.NoError(t, SetCookie(fake, SessionCookie, "admin"))

	cookie, ok, err := GetCookie(fake, SessionCookie)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "admin", cookie.Value)
	assert.Len(t, fake.Jar, 1)
}

func TestSetCookie_NoHost(t *testing.T) {
	fake := browsertest.NewFakeSession("")
	fake.CurrentURL = "about:blank"

	err := SetCookie(fake, SessionCookie, "x")

	assert.ErrorContains(t, err, "has no host")
	assert.Empty(t, fake.ActionsOf("add-cookies"))
}

func TestGetCookie_AbsenceIsNotAnError(t *testing.T) {
	fake := browsertest.NewFakeSession("https://www.saucedemo.com")

	_, ok, err := GetCookie(fake, SessionCookie)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAssertCookieSecurity(t *testing.T) {
	yes, no := true, false
	fake := browsertest.NewFakeSession("https://www.saucedemo.com")
	fake.Jar = []browser.Cookie{{Name: SessionCookie, Value: "standard_user", Secure: true, SameSite: "Lax"}}

	tests := []struct {
		name       string
		cookie     string
		flags      CookieFlags
		wantFailed bool
	}{
		{name: "matching flags", cookie: SessionCookie, flags: CookieFlags{Secure: &yes, HTTPOnly: &no, SameSite: "Lax"}},
		{name: "unchecked flags", cookie: SessionCookie},
		{name: "http only expected", cookie: SessionCookie, flags: CookieFlags{HTTPOnly: &yes}, wantFailed: true},
		{name: "same site mismatch", cookie: SessionCookie, flags: CookieFlags{SameSite: "Strict"}, wantFailed: true},
		{name: "missing cookie", cookie: "session-cart", wantFailed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingT{TB: t}
			require.NoError(t, AssertCookieSecurity(rec, fake, tt.cookie, tt.flags))
			assert.Equal(t, tt.wantFailed, rec.failed())
		})
	}
}

func TestCheckSecurityHeaders(t *testing.T) {
	fake := browsertest.NewFakeSession("https://www.saucedemo.com")
	fake.Responses["/"] = &browser.Response{
		Status: 200,
		Headers: map[string]string{
			"X-Frame-Options":           "DENY",
			"x-content-type-options":    "nosniff",
			"strict-transport-security": "max-age=31536000",
		},
	}

	headers, err := CheckSecurityHeaders(fake, "/")

	require.NoError(t, err)
	assert.Equal(t, "DENY", headers.XFrameOptions)
	assert.Equal(t, "nosniff", headers.XContentTypeOptions)
	assert.Equal(t, "max-age=31536000", headers.StrictTransportSecurity)
	assert.Equal(t, []string{"content-security-policy", "x-xss-protection"}, headers.Missing())
}

func TestCheckSecurityHeaders_NavigationError(t *testing.T) {
	fake := browsertest.NewFakeSession("https://www.saucedemo.com")
	boom := errors.New("net::ERR_NAME_NOT_RESOLVED")
	fake.Errors["goto:/"] = boom

	_, err := CheckSecurityHeaders(fake, "/")

	assert.Same(t, boom, err)
}

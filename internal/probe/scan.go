package probe

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storefront-qa/sauce-e2e/internal/browser"
	"github.com/storefront-qa/sauce-e2e/internal/pages"
)

// Finding is one suspicious match in page content.
type Finding struct {
	Rule   string `json:"rule"`
	Match  string `json:"match"`
	Offset int    `json:"offset"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s matched %q at %d", f.Rule, f.Match, f.Offset)
}

type rule struct {
	name    string
	literal string
	re      *regexp.Regexp
}

func (r rule) find(s string) (Finding, bool) {
	if r.literal != "" {
		i := strings.Index(s, r.literal)
		if i < 0 {
			return Finding{}, false
		}
		return Finding{Rule: r.name, Match: r.literal, Offset: i}, true
	}
	loc := r.re.FindStringIndex(s)
	if loc == nil {
		return Finding{}, false
	}
	return Finding{Rule: r.name, Match: s[loc[0]:loc[1]], Offset: loc[0]}, true
}

func scan(rules []rule, s string) []Finding {
	var findings []Finding
	for _, r := range rules {
		if f, ok := r.find(s); ok {
			findings = append(findings, f)
		}
	}
	return findings
}

// databaseErrorRules flag text a database engine might leak into a page. The
// bare "SQL" rule is broad on purpose and also trips on product copy that
// mentions SQL.
var databaseErrorRules = []rule{
	{name: "sql", re: regexp.MustCompile(`(?i)SQL`)},
	{name: "syntax-error", re: regexp.MustCompile(`(?i)syntax error`)},
	{name: "mysql", re: regexp.MustCompile(`(?i)mysql`)},
	{name: "postgresql", re: regexp.MustCompile(`(?i)postgresql`)},
	{name: "oracle", re: regexp.MustCompile(`(?i)oracle`)},
	{name: "sqlite", re: regexp.MustCompile(`(?i)sqlite`)},
	{name: "database-error", re: regexp.MustCompile(`(?i)database error`)},
	{name: "query-failed", re: regexp.MustCompile(`(?i)query failed`)},
}

// scriptArtifactRules flag injected markup that survived unescaped. Escaped
// payloads render as &lt;...&gt; and never match.
var scriptArtifactRules = []rule{
	{name: "script-alert", literal: "<script>alert("},
	{name: "img-onerror", re: regexp.MustCompile(`(?i)<img\s[^>]*onerror\s*=\s*alert\(`)},
	{name: "svg-onload", re: regexp.MustCompile(`(?i)<svg\s[^>]*onload\s*=\s*alert\(`)},
}

// ScanLeakedDatabaseErrors returns one finding per database-error rule that
// matches text, case-insensitively.
func ScanLeakedDatabaseErrors(text string) []Finding {
	return scan(databaseErrorRules, text)
}

// ScanScriptArtifacts returns one finding per executable script artifact in
// markup. It is a heuristic over serialized HTML, not a DOM analysis.
func ScanScriptArtifacts(markup string) []Finding {
	return scan(scriptArtifactRules, markup)
}

// AssertNoLeakedDatabaseErrors checks the visible body text.
func AssertNoLeakedDatabaseErrors(t testing.TB, session browser.Session) error {
	t.Helper()

	text, err := session.TextContent("body")
	if err != nil {
		return err
	}
	if findings := ScanLeakedDatabaseErrors(text); len(findings) > 0 {
		assert.Fail(t, "page leaks database error details", "%s: %v", session.URL(), findings)
	}
	return nil
}

// AssertNoScriptExecutionArtifacts checks the serialized body markup.
func AssertNoScriptExecutionArtifacts(t testing.TB, session browser.Session) error {
	t.Helper()

	markup, err := session.InnerHTML("body")
	if err != nil {
		return err
	}
	if findings := ScanScriptArtifacts(markup); len(findings) > 0 {
		assert.Fail(t, "page contains unescaped script markup", "%s: %v", session.URL(), findings)
	}
	return nil
}

// VerifyLoginFailed checks that the generic credential mismatch message is shown.
func VerifyLoginFailed(t testing.TB, session browser.Session) error {
	t.Helper()

	visible, err := session.IsVisible(pages.SelectorError)
	if err != nil {
		return err
	}
	if !assert.True(t, visible, "login error message is not visible") {
		return nil
	}
	text, err := session.TextContent(pages.SelectorError)
	if err != nil {
		return err
	}
	assert.Contains(t, text, ExpectedLoginFailureMessage)
	return nil
}

package helpers

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storefront-qa/sauce-e2e/internal/browser"
)

var (
	metaViewport = regexp.MustCompile(`(?i)<meta\s[^>]*name\s*=\s*["']?viewport["']?[^>]*>`)
	metaCharset  = regexp.MustCompile(`(?i)<meta\s[^>]*charset\s*=`)
)

// SeoProblems lists what is missing from a document head: a non-empty title,
// a viewport meta tag and a charset declaration.
func SeoProblems(title, headHTML string) []string {
	var problems []string
	if strings.TrimSpace(title) == "" {
		problems = append(problems, "document title is empty")
	}
	if !metaViewport.MatchString(headHTML) {
		problems = append(problems, "meta viewport is missing")
	}
	if !metaCharset.MatchString(headHTML) {
		problems = append(problems, "meta charset is missing")
	}
	return problems
}

// VerifyBasicSeoMetadata records every missing metadata item on t. The
// returned error is an automation failure only.
func VerifyBasicSeoMetadata(t testing.TB, session browser.Session) error {
	t.Helper()

	title, err := session.TextContent("head > title")
	if err != nil {
		return err
	}
	head, err := session.InnerHTML("head")
	if err != nil {
		return err
	}
	problems := SeoProblems(title, head)
	assert.Empty(t, problems, "basic SEO metadata on %s", session.URL())
	return nil
}

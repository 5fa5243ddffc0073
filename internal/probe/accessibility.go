package probe

import (
	"fmt"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"

	"github.com/storefront-qa/sauce-e2e/internal/browser"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultAxeTags are the WCAG rule sets scanned when no tags are given.
var DefaultAxeTags = []string{"wcag2a", "wcag2aa"}

// AxeScriptURL is the axe-core build injected by the accessibility helpers.
// Documents with a restrictive Content-Security-Policy only accept it in a
// context created with BypassCSP.
var AxeScriptURL = "https://cdnjs.cloudflare.com/ajax/libs/axe-core/4.10.2/axe.min.js"

const (
	axeLoadedJS = `() => typeof window.axe !== "undefined"`

	// axeRunJS reports the violations as a JSON string.
	axeRunJS = `async (tags) => {
  const options = tags.length ? { runOnly: { type: "tag", values: tags } } : {};
  const results = await window.axe.run(document, options);
  return JSON.stringify(results.violations.map((v) => ({
    id: v.id,
    impact: v.impact,
    help: v.help,
    helpUrl: v.helpUrl,
    nodes: v.nodes.map((n) => ({ target: n.target.map(String), html: n.html })),
  })));
}`
)

// AxeViolation is one failed axe rule and the elements that fail it.
type AxeViolation struct {
	ID      string    `json:"id"`
	Impact  string    `json:"impact"`
	Help    string    `json:"help"`
	HelpURL string    `json:"helpUrl"`
	Nodes   []AxeNode `json:"nodes"`
}

// AxeNode is an element flagged by a rule.
type AxeNode struct {
	Target []string `json:"target"`
	HTML   string   `json:"html"`
}

func (v AxeViolation) String() string {
	targets := make([]string, 0, len(v.Nodes))
	for _, n := range v.Nodes {
		targets = append(targets, strings.Join(n.Target, " "))
	}
	return fmt.Sprintf("%s [%s] %s: %s", v.ID, v.Impact, v.Help, strings.Join(targets, ", "))
}

// ScanAccessibility loads axe-core from scriptURL unless the page already has
// it and returns the violations of the rules tagged with tags.
func ScanAccessibility(session browser.Session, scriptURL string, tags ...string) ([]AxeViolation, error) {
	if len(tags) == 0 {
		tags = DefaultAxeTags
	}

	loaded, err := session.Evaluate(axeLoadedJS)
	if err != nil {
		return nil, fmt.Errorf("could not check for axe: %w", err)
	}
	if loaded != true {
		if err := session.AddScriptTag(scriptURL); err != nil {
			return nil, err
		}
	}

	raw, err := session.Evaluate(axeRunJS, tags)
	if err != nil {
		return nil, fmt.Errorf("axe run failed: %w", err)
	}
	encoded, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("axe run returned %T, want a JSON string", raw)
	}

	var violations []AxeViolation
	if err := json.Unmarshal([]byte(encoded), &violations); err != nil {
		return nil, fmt.Errorf("could not decode axe results: %w", err)
	}
	return violations, nil
}

// AssertNoAccessibilityViolations scans the current page with axe-core and
// records every violation on t. Without tags the WCAG 2 A and AA rules run.
func AssertNoAccessibilityViolations(t testing.TB, session browser.Session, tags ...string) error {
	t.Helper()

	violations, err := ScanAccessibility(session, AxeScriptURL, tags...)
	if err != nil {
		return err
	}
	for _, v := range violations {
		assert.Fail(t, "accessibility violation", "%s: %s", session.URL(), v)
	}
	return nil
}

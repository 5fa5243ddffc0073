// Package probe holds the security-probe utilities of the suite: attack
// payload catalogs, scanners for leaked database errors and unescaped script
// markup, cookie helpers and security-header collection.
//
// Assertion helpers record violated expectations on the testing.TB they are
// given. Their error return is reserved for automation failures, so a probe
// that found a regression is never confused with a harness that broke.
package probe

import (
	"fmt"
	"strings"
)

// Payload is one named attack string.
type Payload struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Catalog is an ordered, read-only set of payloads.
type Catalog struct {
	kind     string
	payloads []Payload
}

func newCatalog(kind string, payloads ...Payload) Catalog {
	return Catalog{kind: kind, payloads: payloads}
}

// Kind names the catalog, e.g. "sql-injection".
func (c Catalog) Kind() string {
	return c.kind
}

// All returns a copy of the payloads in declaration order.
func (c Catalog) All() []Payload {
	out := make([]Payload, len(c.payloads))
	copy(out, c.payloads)
	return out
}

// Names lists the payload names in declaration order.
func (c Catalog) Names() []string {
	names := make([]string, len(c.payloads))
	for i, p := range c.payloads {
		names[i] = p.Name
	}
	return names
}

// Payload returns the value registered under name.
func (c Catalog) Payload(name string) (string, error) {
	for _, p := range c.payloads {
		if p.Name == name {
			return p.Value, nil
		}
	}
	return "", fmt.Errorf("%s catalog has no payload %q (have %s)", c.kind, name, strings.Join(c.Names(), ", "))
}

// MustPayload is Payload for names known at compile time.
func (c Catalog) MustPayload(name string) string {
	v, err := c.Payload(name)
	if err != nil {
		panic(err)
	}
	return v
}

// SQLInjectionPayloads are classic login-form injection strings.
var SQLInjectionPayloads = newCatalog("sql-injection",
	Payload{Name: "basic", Value: "' OR '1'='1"},
	Payload{Name: "union", Value: "admin' UNION SELECT NULL--"},
	Payload{Name: "comment", Value: "admin'--"},
	Payload{Name: "doubleDash", Value: "admin' -- "},
	Payload{Name: "semicolon", Value: "admin'; DROP TABLE users--"},
)

// XSSPayloads are reflected script injection strings.
var XSSPayloads = newCatalog("xss",
	Payload{Name: "scriptTag", Value: "<script>alert('XSS')</script>"},
	Payload{Name: "imgTag", Value: "<img src=x onerror=alert('XSS')>"},
	Payload{Name: "svgTag", Value: "<svg/onload=alert('XSS')>"},
	Payload{Name: "eventHandler", Value: `" onload="alert('XSS')`},
	Payload{Name: "iframe", Value: `<iframe src="javascript:alert('XSS')">`},
)

// Catalogs returns every catalog keyed by kind.
func Catalogs() map[string]Catalog {
	return map[string]Catalog{
		SQLInjectionPayloads.Kind(): SQLInjectionPayloads,
		XSSPayloads.Kind():          XSSPayloads,
	}
}

// ExpectedLoginFailureMessage is the generic credential mismatch message.
const ExpectedLoginFailureMessage = "Epic sadface: Username and password do not match any user in this service"

// GenerateRepeatedString returns char repeated length times. A non-positive
// length yields "" and an empty char defaults to "a".
func GenerateRepeatedString(length int, char string) string {
	if length <= 0 {
		return ""
	}
	if char == "" {
		char = "a"
	}
	return strings.Repeat(char, length)
}

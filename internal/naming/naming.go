// Package naming maps human-readable names to the tokens the storefront and
// the snapshot store use.
package naming

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
	parentheses   = regexp.MustCompile(`[()]`)

	pngSuffix       = regexp.MustCompile(`(?i)\.png$`)
	unsafeSnapChars = regexp.MustCompile(`[^a-z0-9\-_]`)
	hyphenRun       = regexp.MustCompile(`-+`)
)

// ToElementID returns the token the storefront embeds in data-test keys for a
// product, e.g. "Sauce Labs Backpack" -> "sauce-labs-backpack".
//
// The steps mirror the storefront's own scheme: lowercase, whitespace runs to
// a hyphen, then drop "(" and ")". Other punctuation such as "." is kept.
func ToElementID(displayName string) string {
	id := strings.ToLower(displayName)
	id = whitespaceRun.ReplaceAllString(id, "-")
	return parentheses.ReplaceAllString(id, "")
}

// ToSnapshotFilename turns a free-form label into a stable, filesystem-safe
// baseline filename ending in exactly one ".png". It is idempotent.
//
// A label with no usable characters yields ".png".
func ToSnapshotFilename(label string) string {
	name := pngSuffix.ReplaceAllString(label, "")
	name = strings.ToLower(name)
	name = whitespaceRun.ReplaceAllString(name, "-")
	name = unsafeSnapChars.ReplaceAllString(name, "")
	name = hyphenRun.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")
	return name + ".png"
}

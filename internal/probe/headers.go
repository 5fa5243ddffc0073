package probe

import (
	"strings"

	"github.com/storefront-qa/sauce-e2e/internal/browser"
)

// SecurityHeaders are the hardening headers of a document response. Absent
// headers are empty.
type SecurityHeaders struct {
	ContentSecurityPolicy   string
	XFrameOptions           string
	XContentTypeOptions     string
	StrictTransportSecurity string
	XXSSProtection          string
}

// Missing names the headers that were not sent.
func (h SecurityHeaders) Missing() []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"content-security-policy", h.ContentSecurityPolicy},
		{"x-frame-options", h.XFrameOptions},
		{"x-content-type-options", h.XContentTypeOptions},
		{"strict-transport-security", h.StrictTransportSecurity},
		{"x-xss-protection", h.XXSSProtection},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// CheckSecurityHeaders navigates to target and collects the security headers
// of the response.
func CheckSecurityHeaders(session browser.Session, target string) (SecurityHeaders, error) {
	resp, err := session.Goto(target)
	if err != nil {
		return SecurityHeaders{}, err
	}
	return SecurityHeadersFrom(resp.Headers), nil
}

// SecurityHeadersFrom picks the security headers out of a flat header map.
// Names match case-insensitively.
func SecurityHeadersFrom(raw map[string]string) SecurityHeaders {
	headers := make(map[string]string, len(raw))
	for k, v := range raw {
		headers[strings.ToLower(k)] = v
	}
	return SecurityHeaders{
		ContentSecurityPolicy:   headers["content-security-policy"],
		XFrameOptions:           headers["x-frame-options"],
		XContentTypeOptions:     headers["x-content-type-options"],
		StrictTransportSecurity: headers["strict-transport-security"],
		XXSSProtection:          headers["x-xss-protection"],
	}
}

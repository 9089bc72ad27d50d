// Package goquery provides DOM-based implementations of papergrade's
// extraction interfaces using CSS selector cascades. It covers menu
// discovery, page content extraction, documentation-platform detection,
// and PDF-reference scanning over heterogeneous HTML structures.
package goquery

import (
	"net/url"
	"strings"
)

// resolveURL resolves a href against a base URL. Protocol-relative
// references always resolve to https regardless of the base scheme.
// Fragments are stripped so deduplication works on page identity.
// Returns "" when the href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	if strings.HasPrefix(strings.TrimSpace(href), "//") {
		resolved.Scheme = "https"
	}
	return resolved.String()
}

// isNonContentLink checks if a href is a pure fragment, script, or contact
// link that never identifies a crawlable page.
func isNonContentLink(href string) bool {
	h := strings.ToLower(strings.TrimSpace(href))
	return h == "" ||
		strings.HasPrefix(h, "#") ||
		strings.HasPrefix(h, "javascript:") ||
		strings.HasPrefix(h, "mailto:") ||
		strings.HasPrefix(h, "tel:") ||
		strings.HasPrefix(h, "data:")
}

// collapseWhitespace trims and collapses runs of whitespace to single
// spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// hasPDFExt reports whether the URL path ends in .pdf.
func hasPDFExt(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return strings.HasSuffix(strings.ToLower(rawURL), ".pdf")
	}
	return strings.HasSuffix(strings.ToLower(u.Path), ".pdf")
}

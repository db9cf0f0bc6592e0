// Package whitelist holds the trusted-domain override evaluated before any
// model inference.
package whitelist

import "strings"

// trusted is the compiled-in set of known-good domains.
var trusted = map[string]struct{}{ //nolint: gochecknoglobals
	"github.com":        {},
	"google.com":        {},
	"paypal.com":        {},
	"microsoft.com":     {},
	"apple.com":         {},
	"amazon.com":        {},
	"facebook.com":      {},
	"instagram.com":     {},
	"stackoverflow.com": {},
	"linkedin.com":      {},
	"youtube.com":       {},
}

// NormalizeDomain reduces a raw URL to the domain used for whitelist lookups:
// the text after the last "//", cut at the first "/", lowercased and without
// a leading "www.".
func NormalizeDomain(rawURL string) string {
	domain := rawURL
	if i := strings.LastIndex(domain, "//"); i >= 0 {
		domain = domain[i+2:]
	}
	if i := strings.Index(domain, "/"); i >= 0 {
		domain = domain[:i]
	}
	domain = strings.ToLower(domain)

	return strings.TrimPrefix(domain, "www.")
}

// IsTrusted reports whether domain is in the trusted set.
func IsTrusted(domain string) bool {
	_, ok := trusted[domain]

	return ok
}

// Domains returns the trusted domains. The order is unspecified.
func Domains() []string {
	out := make([]string, 0, len(trusted))
	for d := range trusted {
		out = append(out, d)
	}

	return out
}

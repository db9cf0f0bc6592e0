// Package explain turns a feature vector and a verdict into human-readable
// justifications.
package explain

import (
	"fmt"

	"phishnet/pkg/features"
)

// Thresholds used by the feature rules.
const (
	LongURLThreshold     = 75
	DotsThreshold        = 3
	DigitRatioThreshold  = 0.45
	SemanticPatternMatch = "⚠️ Deep Learning pattern match (Semantic Structure)."
)

// Messages emitted for benign verdicts.
const (
	StandardStructure = "✅ URL structure appears standard."
	ValidDomain       = "✅ Domain name is valid."
)

// rule flags a single suspicious trait of a URL.
type rule struct {
	name  string
	match func(v features.Vector) bool
	text  func(v features.Vector) string
}

func fixed(s string) func(features.Vector) string {
	return func(features.Vector) string { return s }
}

// rules are evaluated in order and never short-circuit.
var rules = []rule{ //nolint: gochecknoglobals
	{
		name:  "ip_host",
		match: func(v features.Vector) bool { return v.IP == 1 },
		text:  fixed("⚠️ Host uses an IP address instead of a domain name."),
	},
	{
		name:  "long_url",
		match: func(v features.Vector) bool { return v.LengthURL > LongURLThreshold },
		text: func(v features.Vector) string {
			return fmt.Sprintf("⚠️ URL is suspiciously long (%d characters).", v.LengthURL)
		},
	},
	{
		name:  "many_dots",
		match: func(v features.Vector) bool { return v.Dots > DotsThreshold },
		text:  fixed("⚠️ Excessive number of dots detected (possible subdomain masking)."),
	},
	{
		name:  "at_sign",
		match: func(v features.Vector) bool { return v.At > 0 },
		text:  fixed("⚠️ URL contains '@' symbol (often used to obscure destination)."),
	},
	{
		name:  "digit_density",
		match: func(v features.Vector) bool { return v.RatioDigits > DigitRatioThreshold },
		text:  fixed("⚠️ High density of random numbers in the URL."),
	},
}

// Explain returns the justifications for a verdict. Phishing verdicts always
// get at least one entry; benign verdicts get two fixed entries that do not
// depend on v.
func Explain(v features.Vector, isPhishing bool) []string {
	if !isPhishing {
		return []string{StandardStructure, ValidDomain}
	}

	details := make([]string, 0, len(rules))
	for _, r := range rules {
		if r.match(v) {
			details = append(details, r.text(v))
		}
	}

	if len(details) == 0 {
		details = append(details, SemanticPatternMatch)
	}

	return details
}

// Triggered returns the names of the feature rules v trips, in rule order.
// It is used for metrics and logs only.
func Triggered(v features.Vector) []string {
	var names []string
	for _, r := range rules {
		if r.match(v) {
			names = append(names, r.name)
		}
	}

	return names
}

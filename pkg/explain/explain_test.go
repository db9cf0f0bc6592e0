package explain_test

import (
	"phishnet/pkg/explain"
	"phishnet/pkg/features"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExplain_Benign(t *testing.T) {
	// benign details never depend on the vector
	for _, v := range []features.Vector{{}, {IP: 1, LengthURL: 500, At: 3, Dots: 9, RatioDigits: 0.9}} {
		require.Equal(t, []string{explain.StandardStructure, explain.ValidDomain}, explain.Explain(v, false))
	}
}

func TestExplain_Fallback(t *testing.T) {
	v := features.Vector{LengthURL: 75, Dots: 3, RatioDigits: 0.45}
	require.Equal(t, []string{explain.SemanticPatternMatch}, explain.Explain(v, true))
	require.Empty(t, explain.Triggered(v))
}

func TestExplain_AllRulesInOrder(t *testing.T) {
	v := features.Vector{IP: 1, LengthURL: 120, Dots: 4, At: 1, RatioDigits: 0.5}
	got := explain.Explain(v, true)

	require.Equal(t, []string{
		"⚠️ Host uses an IP address instead of a domain name.",
		"⚠️ URL is suspiciously long (120 characters).",
		"⚠️ Excessive number of dots detected (possible subdomain masking).",
		"⚠️ URL contains '@' symbol (often used to obscure destination).",
		"⚠️ High density of random numbers in the URL.",
	}, got)
	require.Equal(t, []string{"ip_host", "long_url", "many_dots", "at_sign", "digit_density"}, explain.Triggered(v))
}

func TestExplain_SingleRules(t *testing.T) {
	cases := []struct {
		name string
		v    features.Vector
		want string
	}{
		{"ip", features.Vector{IP: 1}, "⚠️ Host uses an IP address instead of a domain name."},
		{"long", features.Vector{LengthURL: 76}, "⚠️ URL is suspiciously long (76 characters)."},
		{"dots", features.Vector{Dots: 4}, "⚠️ Excessive number of dots detected (possible subdomain masking)."},
		{"at", features.Vector{At: 2}, "⚠️ URL contains '@' symbol (often used to obscure destination)."},
		{"digits", features.Vector{RatioDigits: 0.46}, "⚠️ High density of random numbers in the URL."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, []string{tc.want}, explain.Explain(tc.v, true))
		})
	}
}

func TestExplain_FromExtractedFeatures(t *testing.T) {
	v := features.Extract("http://192.168.10.20/secure.login.verify.account@bank")
	got := explain.Explain(v, true)

	require.Contains(t, got, "⚠️ Host uses an IP address instead of a domain name.")
	require.Contains(t, got, "⚠️ URL contains '@' symbol (often used to obscure destination).")
	require.NotContains(t, got, explain.SemanticPatternMatch)
}

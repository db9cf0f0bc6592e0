package whitelist_test

import (
	"phishnet/pkg/whitelist"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDomain(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{name: "scheme and path stripped", in: "https://www.google.com/anything", out: "google.com"},
		{name: "no scheme", in: "github.com/user/repo", out: "github.com"},
		{name: "uppercase", in: "HTTP://WWW.PayPal.COM", out: "paypal.com"},
		{name: "last double slash wins", in: "http://evil.com/redirect?to=//apple.com/x", out: "apple.com"},
		{name: "only a leading www is stripped", in: "http://login.www.amazon.com", out: "login.www.amazon.com"},
		{name: "port is kept", in: "https://github.com:443/", out: "github.com:443"},
		{name: "query without path is kept", in: "https://github.com?x=1", out: "github.com?x=1"},
		{name: "empty", in: "", out: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.out, whitelist.NormalizeDomain(tc.in))
		})
	}
}

func TestIsTrusted(t *testing.T) {
	for _, d := range []string{
		"github.com", "google.com", "paypal.com", "microsoft.com", "apple.com", "amazon.com",
		"facebook.com", "instagram.com", "stackoverflow.com", "linkedin.com", "youtube.com",
	} {
		require.True(t, whitelist.IsTrusted(d), d)
	}

	for _, d := range []string{"", "paypal.com.evil.io", "secure-paypal.com", "mail.google.com", "GOOGLE.COM"} {
		require.False(t, whitelist.IsTrusted(d), d)
	}
}

func TestDomains(t *testing.T) {
	require.Len(t, whitelist.Domains(), 11)
	require.Contains(t, whitelist.Domains(), "youtube.com")
}

func TestNormalizeThenTrust(t *testing.T) {
	require.True(t, whitelist.IsTrusted(whitelist.NormalizeDomain("https://www.google.com/anything")))
	require.False(t, whitelist.IsTrusted(whitelist.NormalizeDomain("https://www.google.com.phish.ru/anything")))
}

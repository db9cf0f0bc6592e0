package features_test

import (
	"phishnet/pkg/features"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want features.Vector
	}{
		{
			name: "plain domain",
			in:   "http://github.com",
			want: features.Vector{
				LengthURL:      17,
				LengthHostname: 10,
				Dots:           1,
				Slashes:        2,
				Colons:         1,
			},
		},
		{
			name: "ipv4 host with path",
			in:   "http://192.168.0.1/path",
			want: features.Vector{
				LengthURL:      23,
				LengthHostname: 11,
				IP:             1,
				Dots:           3,
				Slashes:        3,
				Colons:         1,
				RatioDigits:    8.0 / 23.0,
			},
		},
		{
			name: "missing scheme does not change counts",
			in:   "example.com/a-b?x=1&y=2",
			want: features.Vector{
				LengthURL:      23,
				LengthHostname: 11,
				Dots:           1,
				Hyphens:        1,
				QuestionMarks:  1,
				Ampersands:     1,
				Equals:         2,
				Slashes:        1,
				RatioDigits:    2.0 / 23.0,
			},
		},
		{
			name: "userinfo and port are part of the hostname",
			in:   "https://user@login.example.com:8443/",
			want: features.Vector{
				LengthURL:      36,
				LengthHostname: 27,
				Dots:           2,
				At:             1,
				Slashes:        3,
				Colons:         2,
				RatioDigits:    4.0 / 36.0,
			},
		},
		{
			name: "space in host is kept in the hostname",
			in:   "http://exa mple.com/x",
			want: features.Vector{
				LengthURL:      21,
				LengthHostname: 12,
				Dots:           1,
				Slashes:        3,
				Colons:         1,
			},
		},
		{
			name: "unbalanced bracket degrades to empty hostname",
			in:   "http://[::1/x",
			want: features.Vector{
				LengthURL:   13,
				Slashes:     3,
				Colons:      3,
				RatioDigits: 1.0 / 13.0,
			},
		},
		{
			name: "empty url",
			in:   "",
			want: features.Vector{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := features.Extract(tc.in)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Extract(%q) mismatch (-want +got):\n%s", tc.in, diff)
			}
		})
	}
}

func TestExtract_Invariants(t *testing.T) {
	urls := []string{
		"http://github.com",
		"1234567890",
		"http://a.b.c.d.e.f/@@@?q=1&r=2",
		"xn--80ak6aa92e.com",
		"https://bücher.example/straße?id=٣٤",
		"::::////",
	}

	for _, u := range urls {
		v := features.Extract(u)
		s := v.Slice()
		require.Len(t, s, features.Size, u)
		require.GreaterOrEqual(t, v.RatioDigits, 0.0, u)
		require.LessOrEqual(t, v.RatioDigits, 1.0, u)

		// pure function: same input, same output
		require.Equal(t, s, features.Extract(u).Slice(), u)
	}
}

func TestExtract_AllDigits(t *testing.T) {
	v := features.Extract("1234567890")
	require.InDelta(t, 1.0, v.RatioDigits, 1e-12)
	require.Equal(t, 10, v.LengthHostname)
}

func TestVector_SliceOrder(t *testing.T) {
	v := features.Vector{
		LengthURL:      1,
		LengthHostname: 2,
		IP:             3,
		Dots:           4,
		Hyphens:        5,
		At:             6,
		QuestionMarks:  7,
		Ampersands:     8,
		Equals:         9,
		Slashes:        10,
		Colons:         11,
		RatioDigits:    12,
	}

	want := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	if diff := cmp.Diff(want, v.Slice()); diff != "" {
		t.Fatalf("positional order changed (-want +got):\n%s", diff)
	}

	s := v.Slice()
	require.InDelta(t, 1.0, s[features.IdxLengthURL], 0)
	require.InDelta(t, 3.0, s[features.IdxIP], 0)
	require.InDelta(t, 4.0, s[features.IdxDots], 0)
	require.InDelta(t, 6.0, s[features.IdxAt], 0)
	require.InDelta(t, 12.0, s[features.IdxRatioDigits], 0)
}

func TestNames(t *testing.T) {
	require.Equal(t, "length_url", features.Names[features.IdxLengthURL])
	require.Equal(t, "ip", features.Names[features.IdxIP])
	require.Equal(t, "nb_colon", features.Names[features.IdxColons])
	require.Equal(t, "ratio_digits_url", features.Names[features.IdxRatioDigits])
}

func TestHasIPLiteral(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"http://192.168.0.1/path", true},
		{"192.168.0.1/", true},
		{"http://0x7f.0x0.0x0.0x1/login", true},
		{"http://[2001:0db8:85a3:0000:0000:8a2e:0370:7334]/", true},
		{"2001:db8:0:0:0:0:2:1", true},
		{"http://github.com", false},
		// trailing slash is required for IPv4 literals
		{"http://192.168.0.1", false},
		{"http://256.256.256.256/", false},
		// compressed IPv6 is not an 8-hextet literal
		{"http://[2001:db8::1]/", false},
		{"", false},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, features.HasIPLiteral(tc.in), tc.in)
	}
}

func TestHostname(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://github.com/a/b?c#d", "github.com"},
		{"github.com/a", "github.com"},
		{"example.com?x=1", "example.com"},
		{"", ""},
		// malformed but still split lexically
		{"http://example.com/%zz", "example.com"},
		{"http://a.com:abc/", "a.com:abc"},
		{"http://exa mple.com/x", "exa mple.com"},
		{"http://paypal.com.evil.io/a%", "paypal.com.evil.io"},
		{"http://\tex\nample.com/", "example.com"},
		{"http://u@[::1]:80/", "u@[::1]:80"},
		{"http://[v1.fe]/", "[v1.fe]"},
		// "http" prefix without a scheme separator is not prefixed
		{"httpx.com/a", ""},
		{"https:example.com", ""},
		// bracket errors
		{"http://[::1", ""},
		{"http://[::1/x", ""},
		{"http://x]/", ""},
		{"http://[1.2.3.4]/", ""},
		{"http://[]/", ""},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, features.Hostname(tc.in), tc.in)
	}
}

func TestExtract_UnicodeDigits(t *testing.T) {
	// superscripts and circled numbers count as digits
	v := features.Extract("a²③")
	require.InDelta(t, 2.0/3.0, v.RatioDigits, 1e-12)

	// Arabic-Indic digits count and form IPv4 octets
	v = features.Extract("http://١٩٢.١٦٨.٠.١/x")
	require.Equal(t, 1, v.IP)
	require.InDelta(t, 8.0/20.0, v.RatioDigits, 1e-12)

	// letters with a numeric value are not digits
	require.InDelta(t, 0.0, features.Extract("Ⅻ½").RatioDigits, 0)
}

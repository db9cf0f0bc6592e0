// Package features encodes a raw URL string into the fixed, ordered numeric
// vector consumed by the scaler and the scoring model.
//
// The order of the vector is a contract with externally trained artifacts and
// must never change. Vector keeps named fields for readability inside the
// module; Slice serializes them positionally.
package features

import (
	"net/netip"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Size is the number of features in a Vector.
const Size = 12

// Positional indexes of every feature in the serialized vector.
const (
	IdxLengthURL = iota
	IdxLengthHostname
	IdxIP
	IdxDots
	IdxHyphens
	IdxAt
	IdxQuestionMarks
	IdxAmpersands
	IdxEquals
	IdxSlashes
	IdxColons
	IdxRatioDigits
)

// Names lists feature names in contract order.
var Names = [Size]string{ //nolint: gochecknoglobals
	"length_url",
	"length_hostname",
	"ip",
	"nb_dots",
	"nb_hyphens",
	"nb_at",
	"nb_qm",
	"nb_and",
	"nb_eq",
	"nb_slash",
	"nb_colon",
	"ratio_digits_url",
}

// Vector is the labeled form of the feature vector.
type Vector struct {
	LengthURL      int
	LengthHostname int
	IP             int
	Dots           int
	Hyphens        int
	At             int
	QuestionMarks  int
	Ampersands     int
	Equals         int
	Slashes        int
	Colons         int
	RatioDigits    float64
}

// Slice returns the vector in contract order.
func (v Vector) Slice() []float64 {
	return []float64{
		float64(v.LengthURL),
		float64(v.LengthHostname),
		float64(v.IP),
		float64(v.Dots),
		float64(v.Hyphens),
		float64(v.At),
		float64(v.QuestionMarks),
		float64(v.Ampersands),
		float64(v.Equals),
		float64(v.Slashes),
		float64(v.Colons),
		v.RatioDigits,
	}
}

var (
	// schemePrefix decides whether a scheme has to be synthesized before parsing.
	schemePrefix = regexp.MustCompile(`^https?`) //nolint: gochecknoglobals

	// ipLiteral matches a dotted-decimal IPv4 followed by '/', a hex-octet IPv4
	// followed by '/', or an 8-hextet IPv6 address. Decimal octets accept any
	// Unicode decimal digit, not only ASCII.
	ipLiteral = regexp.MustCompile( //nolint: gochecknoglobals
		`(([01]?\p{Nd}\p{Nd}?|2[0-4]\p{Nd}|25[0-5])\.([01]?\p{Nd}\p{Nd}?|2[0-4]\p{Nd}|25[0-5])\.([01]?\p{Nd}\p{Nd}?|2[0-4]\p{Nd}|25[0-5])\.([01]?\p{Nd}\p{Nd}?|2[0-4]\p{Nd}|25[0-5])/)` +
			`|((0x[0-9a-fA-F]{1,2})\.(0x[0-9a-fA-F]{1,2})\.(0x[0-9a-fA-F]{1,2})\.(0x[0-9a-fA-F]{1,2})/)` +
			`|((?:[a-fA-F0-9]{1,4}:){7}[a-fA-F0-9]{1,4})`)
)

// HasIPLiteral reports whether rawURL carries an IP literal.
//
// IPv4 literals only count when followed by '/', so a bare host such as
// "http://192.168.0.1" is not flagged.
func HasIPLiteral(rawURL string) bool {
	return ipLiteral.MatchString(rawURL)
}

// Hostname returns the network location (userinfo, host and port) of rawURL.
// URLs without an http(s) prefix are read as if "http://" was prepended.
//
// The split is lexical and lenient: bad escapes, non-numeric ports and spaces
// stay in the result. Only bracket errors (unbalanced brackets or a bracketed
// host that is not IPv6) yield an empty string.
func Hostname(rawURL string) string {
	s := rawURL
	if !schemePrefix.MatchString(s) {
		s = "http://" + s
	}
	s = strings.NewReplacer("\t", "", "\r", "", "\n", "").Replace(s)

	if i := strings.IndexByte(s, ':'); i > 0 && isScheme(s[:i]) {
		s = s[i+1:]
	}
	if !strings.HasPrefix(s, "//") {
		return ""
	}

	netloc := s[2:]
	if i := strings.IndexAny(netloc, "/?#"); i >= 0 {
		netloc = netloc[:i]
	}

	open, closed := strings.Contains(netloc, "["), strings.Contains(netloc, "]")
	if open != closed {
		return ""
	}
	if open {
		_, after, _ := strings.Cut(netloc, "[")
		host, _, _ := strings.Cut(after, "]")
		if !validBracketedHost(host) {
			return ""
		}
	}

	return netloc
}

func isScheme(s string) bool {
	if s == "" || s[0] >= utf8.RuneSelf || !unicode.IsLetter(rune(s[0])) {
		return false
	}
	for _, r := range s {
		if !(r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '-' || r == '.')) {
			return false
		}
	}

	return true
}

// ipFuture matches the "vX.Y" address form allowed inside brackets.
var ipFuture = regexp.MustCompile(`^v[a-fA-F0-9]+\..+$`) //nolint: gochecknoglobals

func validBracketedHost(host string) bool {
	if strings.HasPrefix(host, "v") {
		return ipFuture.MatchString(host)
	}
	addr, err := netip.ParseAddr(host)

	return err == nil && addr.Is6()
}

// otherDigits holds the characters with a digit value that are not decimal
// digits (superscripts, subscripts, circled and dingbat numbers, ...). They
// count as digits alongside unicode.Nd.
var otherDigits = &unicode.RangeTable{ //nolint: gochecknoglobals
	R16: []unicode.Range16{
		{Lo: 0x00b2, Hi: 0x00b3, Stride: 1},
		{Lo: 0x00b9, Hi: 0x00b9, Stride: 1},
		{Lo: 0x1369, Hi: 0x1371, Stride: 1},
		{Lo: 0x19da, Hi: 0x19da, Stride: 1},
		{Lo: 0x2070, Hi: 0x2070, Stride: 1},
		{Lo: 0x2074, Hi: 0x2079, Stride: 1},
		{Lo: 0x2080, Hi: 0x2089, Stride: 1},
		{Lo: 0x2460, Hi: 0x2468, Stride: 1},
		{Lo: 0x2474, Hi: 0x247c, Stride: 1},
		{Lo: 0x2488, Hi: 0x2490, Stride: 1},
		{Lo: 0x24ea, Hi: 0x24ea, Stride: 1},
		{Lo: 0x24f5, Hi: 0x24fd, Stride: 1},
		{Lo: 0x24ff, Hi: 0x24ff, Stride: 1},
		{Lo: 0x2776, Hi: 0x277e, Stride: 1},
		{Lo: 0x2780, Hi: 0x2788, Stride: 1},
		{Lo: 0x278a, Hi: 0x2792, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x10a40, Hi: 0x10a43, Stride: 1},
		{Lo: 0x10e60, Hi: 0x10e68, Stride: 1},
		{Lo: 0x11052, Hi: 0x1105a, Stride: 1},
		{Lo: 0x1f100, Hi: 0x1f10a, Stride: 1},
	},
	LatinOffset: 2,
}

func isDigit(r rune) bool {
	return unicode.IsDigit(r) || unicode.Is(otherDigits, r)
}

// Extract computes the feature vector of rawURL. It never fails; a URL whose
// network location cannot be split gets an empty hostname.
func Extract(rawURL string) Vector {
	length := utf8.RuneCountInString(rawURL)

	digits := 0
	for _, r := range rawURL {
		if isDigit(r) {
			digits++
		}
	}

	ratio := 0.0
	if length > 0 {
		ratio = float64(digits) / float64(length)
	}

	ip := 0
	if HasIPLiteral(rawURL) {
		ip = 1
	}

	return Vector{
		LengthURL:      length,
		LengthHostname: utf8.RuneCountInString(Hostname(rawURL)),
		IP:             ip,
		Dots:           strings.Count(rawURL, "."),
		Hyphens:        strings.Count(rawURL, "-"),
		At:             strings.Count(rawURL, "@"),
		QuestionMarks:  strings.Count(rawURL, "?"),
		Ampersands:     strings.Count(rawURL, "&"),
		Equals:         strings.Count(rawURL, "="),
		Slashes:        strings.Count(rawURL, "/"),
		Colons:         strings.Count(rawURL, ":"),
		RatioDigits:    ratio,
	}
}

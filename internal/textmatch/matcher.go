package textmatch

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// The prefix the leading national trunk zero of a phone number query is rewritten to
	phoneCountryPrefix = "+46"
)

var (
	// Everything that is not a plain ASCII letter - removed from candidates after decomposition
	nonASCIILetters = regexp.MustCompile(`[^A-Za-z]`)
	// Leading trunk prefix of a Swedish national number
	leadingZero = regexp.MustCompile(`^0`)
)

// Matcher tests candidate texts against a filter query typed by the user
//
// The query is always treated as a literal string. A candidate matches when the query is a case-insensitive
// substring of either the candidate itself or of its normalized form (NFKD decomposition with everything that is
// not an ASCII letter removed). Only the candidate side gets normalized: a query containing diacritics or symbols
// will not match a candidate that lacks them.
type Matcher struct {
	query   string
	pattern *regexp.Regexp
}

// BuildMatcher creates a matcher for the raw query. The empty query matches every text.
// Invalid UTF-8 sequences in the query are replaced by U+FFFD, so every query compiles.
func BuildMatcher(rawQuery string) *Matcher {
	query := wellFormed(rawQuery)
	return &Matcher{
		query:   query,
		pattern: regexp.MustCompile("(?i)" + EscapeRegexp(query)),
	}
}

func wellFormed(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	ret, _, err := transform.String(runes.ReplaceIllFormed(), s)
	if err != nil {
		// strings.Map writes U+FFFD for every invalid byte
		return strings.Map(func(r rune) rune { return r }, s)
	}
	return ret
}

// Query returns the query the matcher has been built from, with invalid UTF-8 replaced
func (m *Matcher) Query() string {
	return m.query
}

// MatchesLiteral reports whether the query is a case-insensitive substring of the text, without any normalization
func (m *Matcher) MatchesLiteral(text string) bool {
	return m.pattern.MatchString(text)
}

// Matches reports whether the text matches the query as is or after diacritics have been stripped from it
func (m *Matcher) Matches(text string) bool {
	return m.MatchesLiteral(text) || m.pattern.MatchString(Normalize(text))
}

// MatchesPhone reports whether the query, read as a phone number, is contained in the given E.164 number.
// Whitespace is removed from the query and a leading zero is replaced by the Swedish country prefix.
func (m *Matcher) MatchesPhone(phone string) bool {
	e164 := leadingZero.ReplaceAllLiteralString(stripSpace(m.query), phoneCountryPrefix)
	return strings.Contains(phone, e164)
}

// Normalize decomposes s into base characters and combining marks (NFKD) and drops everything that is not an ASCII
// letter. "André" becomes "Andre", "Anna Svensson" becomes "AnnaSvensson".
func Normalize(s string) string {
	decomposed, _, err := transform.String(norm.NFKD, s)
	if err != nil {
		decomposed = s
	}
	return nonASCIILetters.ReplaceAllLiteralString(decomposed, "")
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

package textmatch

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeRegexp(t *testing.T) {
	assert.Equal(t, `a\.b`, EscapeRegexp("a.b"))
	assert.Equal(t, `\-\/\\\^\$\*\+\?\.\(\)\|\[\]\{\}`, EscapeRegexp(`-/\^$*+?.()|[]{}`))
	assert.Equal(t, "Björn", EscapeRegexp("Björn"))
	// Every escaped string must compile and match itself literally
	for _, s := range []string{"(a+", "[x", "1.0*2", `back\slash`, "{3}", "a|b"} {
		re := regexp.MustCompile(EscapeRegexp(s))
		assert.True(t, re.MatchString(s), s)
	}
}

func TestEmptyQueryMatchesEverything(t *testing.T) {
	m := BuildMatcher("")
	for _, text := range []string{"", "Anna", "André", "+46701234567", "!?"} {
		assert.True(t, m.Matches(text), text)
	}
	assert.True(t, m.MatchesPhone(""))
	assert.True(t, m.MatchesPhone("+46701234567"))
}

func TestMatchesIsCaseInsensitive(t *testing.T) {
	m := BuildMatcher("björn")
	assert.True(t, m.Matches("Björn Berg"))
	assert.True(t, m.Matches("BJÖRN"))
	assert.False(t, m.Matches("Anna Svensson"))
}

func TestMatchesIgnoresDiacriticsOnCandidate(t *testing.T) {
	assert.True(t, BuildMatcher("andre").Matches("André"))
	assert.True(t, BuildMatcher("and").Matches("André"))
	assert.True(t, BuildMatcher("bjorn").Matches("Björn Berg"))
}

func TestMatchesDoesNotNormalizeQuery(t *testing.T) {
	// Only the candidate is normalized, a query with diacritics does not find the plain spelling
	assert.False(t, BuildMatcher("andré").Matches("andre"))
	// Symbols are dropped from the normalized candidate, so spaces only match literally
	assert.True(t, BuildMatcher("anna s").Matches("Anna Svensson"))
	assert.True(t, BuildMatcher("annasv").Matches("Anna Svensson"))
}

func TestMatchesTreatsQueryLiterally(t *testing.T) {
	assert.False(t, BuildMatcher("a.c").Matches("abc"))
	assert.True(t, BuildMatcher("a.c").Matches("xa.cx"))
	assert.True(t, BuildMatcher("(").Matches("smiley :("))
	assert.False(t, BuildMatcher("[ab]").Matches("a"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "Andre", Normalize("André"))
	assert.Equal(t, "AnnaSvensson", Normalize("Anna Svensson"))
	assert.Equal(t, "Bjorn", Normalize("Björn"))
	assert.Equal(t, "", Normalize("2019-05-01"))
}

func TestMatchesPhone(t *testing.T) {
	assert.True(t, BuildMatcher("0701234567").MatchesPhone("+46701234567"))
	assert.True(t, BuildMatcher("070 123 45 67").MatchesPhone("+46701234567"))
	assert.True(t, BuildMatcher("1234").MatchesPhone("+46701234567"))
	assert.True(t, BuildMatcher("+4670").MatchesPhone("+46701234567"))
	assert.False(t, BuildMatcher("0801234567").MatchesPhone("+46701234567"))
	assert.False(t, BuildMatcher("0701234567").MatchesPhone(""))
	// Only a leading zero is rewritten
	assert.False(t, BuildMatcher("70 0").MatchesPhone("+46701234567"))
}

func TestBuildMatcherIsIdempotent(t *testing.T) {
	a := BuildMatcher("Ström")
	b := BuildMatcher("Ström")
	for _, text := range []string{"Ström", "strom", "STRÖMMING", "Strand"} {
		assert.Equal(t, a.Matches(text), b.Matches(text), text)
		assert.Equal(t, a.Matches(text), a.Matches(text), text)
	}
	assert.Equal(t, "Ström", a.Query())
}

func TestBuildMatcherWithInvalidUTF8(t *testing.T) {
	var m *Matcher
	assert.NotPanics(t, func() { m = BuildMatcher("\xff") })
	assert.Equal(t, "\uFFFD", m.Query())
	assert.False(t, m.Matches("Anna"))
	assert.False(t, m.MatchesPhone("+46701234567"))

	m = BuildMatcher("bj\xc3")
	assert.True(t, m.Matches("bj\uFFFD"))
	assert.False(t, m.Matches("Björn"))
}

func TestMatchesLiteral(t *testing.T) {
	assert.True(t, BuildMatcher("skål").MatchesLiteral("Skål!"))
	assert.False(t, BuildMatcher("skal").MatchesLiteral("Skål!"))
	assert.True(t, BuildMatcher("skal").Matches("Skål!"))
}

// Package textmatch provides the filtering used by the kiosk's user and quote lists: a literal,
// case-insensitive and diacritic-tolerant substring matcher and the aggregation of match results over groups of
// cards
package textmatch

import "regexp"

// Characters that are treated as metacharacters inside a filter query
var metaChars = regexp.MustCompile(`[-/\\^$*+?.()|\[\]{}]`)

// EscapeRegexp prefixes every regular expression metacharacter inside s with a backslash so that the result can be
// compiled into a pattern matching s literally
func EscapeRegexp(s string) string {
	return metaChars.ReplaceAllString(s, `\$0`)
}

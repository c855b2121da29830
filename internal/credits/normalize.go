package credits

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	parensRE     = regexp.MustCompile(`\([^)]*\)`)
	dashColonRE  = regexp.MustCompile(`[-\x{2013}\x{2014}:]`)
	qualifiersRE = regexp.MustCompile(`\b(deluxe|remaster(ed)?|expanded|anniversary|special edition)\b`)
	spacesRE     = regexp.MustCompile(`\s+`)
)

// stripMarks decomposes to NFKD and removes combining diacritical marks,
// so "Café" and "Cafe" normalize identically.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Normalize canonicalizes a title or artist name for comparison. It is a
// pure function and idempotent: lowercase, diacritics stripped, parenthetical
// annotations removed, dashes and colons replaced with spaces, edition
// qualifiers ("deluxe", "remastered", ...) dropped as whole words, and
// whitespace collapsed.
func Normalize(s string) string {
	s = strings.ToLower(s)
	if stripped, _, err := transform.String(stripMarks, s); err == nil {
		s = stripped
	}
	s = parensRE.ReplaceAllString(s, " ")
	s = dashColonRE.ReplaceAllString(s, " ")
	// Removing a qualifier can splice a new qualifier phrase together
	// ("special deluxe edition" -> "special edition"), so strip until the
	// string stops changing to keep Normalize idempotent.
	for {
		next := qualifiersRE.ReplaceAllString(s, "")
		next = spacesRE.ReplaceAllString(next, " ")
		if next == s {
			break
		}
		s = next
	}
	return strings.TrimSpace(s)
}

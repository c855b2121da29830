package credits

import "strings"

// Score points. Components are additive; an exact title match always beats
// containment.
const (
	titleExactPoints   = 3
	titleContainPoints = 2
	artistPoints       = 2
	yearPoints         = 1
	albumTypePoints    = 1
)

// Score rates how well a candidate (title, artist) matches the wanted
// (title, artist, year). All text is compared post-normalization. An exact
// title match scores 3, containment either direction 2; artist containment
// either direction scores 2; an exact year match adds 1 when both sides
// report a year. Deterministic for identical inputs.
func Score(candTitle, candArtist, wantTitle, wantArtist string, wantYear, candYear int) int {
	t := Normalize(wantTitle)
	a := Normalize(wantArtist)
	ct := Normalize(candTitle)
	ca := Normalize(candArtist)

	score := 0
	switch {
	case ct == t && t != "":
		score += titleExactPoints
	case contains(ct, t):
		score += titleContainPoints
	}
	if contains(ca, a) {
		score += artistPoints
	}
	if wantYear != 0 && candYear == wantYear {
		score += yearPoints
	}
	return score
}

// contains reports substring containment in either direction. Empty strings
// never match; they would trivially be contained in everything.
func contains(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

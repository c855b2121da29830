package credits

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "OK Computer", "ok computer"},
		{"diacritics", "Café Tacvba", "cafe tacvba"},
		{"parenthetical", "Title (Deluxe Edition)", "title"},
		{"nested text around parens", "In Rainbows (From the Basement) Live", "in rainbows live"},
		{"dashes and colons", "Use Your Illusion I — Part One: Intro", "use your illusion i part one intro"},
		{"qualifier words", "Nevermind Remastered", "nevermind"},
		{"qualifier remaster", "Abbey Road remaster", "abbey road"},
		{"qualifier phrase", "Thriller special edition", "thriller"},
		{"qualifiers splicing into a new qualifier", "Special Deluxe Edition", ""},
		{"qualifier not substring", "Deluxer", "deluxer"},
		{"whitespace collapse", "  a   b\t c ", "a b c"},
		{"empty", "", ""},
		{"only parens", "(Untitled)", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"OK Computer",
		"Café (Deluxe Edition)",
		"Loveless — Remastered",
		"special deluxe edition",
		"Greatest Hits (special deluxe edition) remaster",
		"  spaced   out  ",
		"ÀÉÎÕÜ",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeDiacriticEquivalence(t *testing.T) {
	if Normalize("Café") != Normalize("Cafe") {
		t.Error("expected Café and Cafe to normalize identically")
	}
	if Normalize("Björk") != Normalize("Bjork") {
		t.Error("expected Björk and Bjork to normalize identically")
	}
}

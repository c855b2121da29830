package credits

import "testing"

func TestScore_TitleExactBeatsContainment(t *testing.T) {
	exact := Score("OK Computer", "Radiohead", "OK Computer", "Radiohead", 0, 0)
	contained := Score("OK Computer OKNOTOK", "Radiohead", "OK Computer", "Radiohead", 0, 0)

	if exact != titleExactPoints+artistPoints {
		t.Errorf("exact match = %d, want %d", exact, titleExactPoints+artistPoints)
	}
	if contained != titleContainPoints+artistPoints {
		t.Errorf("containment = %d, want %d", contained, titleContainPoints+artistPoints)
	}
	if exact <= contained {
		t.Error("exact title match must score strictly higher than containment")
	}
}

func TestScore_ContainmentEitherDirection(t *testing.T) {
	a := Score("In Rainbows", "Radiohead", "In Rainbows Disk 2", "Radiohead", 0, 0)
	b := Score("In Rainbows Disk 2", "Radiohead", "In Rainbows", "Radiohead", 0, 0)
	if a != b {
		t.Errorf("containment should be symmetric, got %d vs %d", a, b)
	}
	if a != titleContainPoints+artistPoints {
		t.Errorf("containment = %d, want %d", a, titleContainPoints+artistPoints)
	}
}

func TestScore_NormalizationApplied(t *testing.T) {
	got := Score("OK Computer (Remastered)", "RADIOHEAD", "ok computer", "Radiohead", 0, 0)
	want := titleExactPoints + artistPoints
	if got != want {
		t.Errorf("score = %d, want %d", got, want)
	}
}

func TestScore_NoMatch(t *testing.T) {
	if got := Score("Kid A", "Radiohead", "Nevermind", "Nirvana", 0, 0); got != 0 {
		t.Errorf("unrelated candidate scored %d, want 0", got)
	}
}

func TestScore_EmptyTitleNoPoints(t *testing.T) {
	if got := Score("", "Radiohead", "", "Radiohead", 0, 0); got != artistPoints {
		t.Errorf("empty titles scored %d, want artist component only (%d)", got, artistPoints)
	}
}

func TestScore_YearBonus(t *testing.T) {
	base := Score("OK Computer", "Radiohead", "OK Computer", "Radiohead", 1997, 0)
	exact := Score("OK Computer", "Radiohead", "OK Computer", "Radiohead", 1997, 1997)
	wrong := Score("OK Computer", "Radiohead", "OK Computer", "Radiohead", 1997, 2017)

	if exact != base+yearPoints {
		t.Errorf("exact year = %d, want %d", exact, base+yearPoints)
	}
	if wrong != base {
		t.Errorf("mismatched year = %d, want %d", wrong, base)
	}
	// No bonus when the query has no year, whatever the candidate claims.
	if got := Score("OK Computer", "Radiohead", "OK Computer", "Radiohead", 0, 1997); got != base {
		t.Errorf("year bonus applied without a wanted year: %d, want %d", got, base)
	}
}

func TestScore_Deterministic(t *testing.T) {
	first := Score("Amnesiac", "Radiohead", "Amnesiac", "Radiohead", 2001, 2001)
	for i := 0; i < 100; i++ {
		if got := Score("Amnesiac", "Radiohead", "Amnesiac", "Radiohead", 2001, 2001); got != first {
			t.Fatalf("score changed between calls: %d vs %d", got, first)
		}
	}
}

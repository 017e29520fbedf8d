package marc

import (
	"testing"
)

func TestParseSubfields(t *testing.T) {
	got := ParseSubfields("$$aBērziņš, Jānis$$4aut$$d1902-1983")
	if len(got) != 3 {
		t.Fatalf("unexpected subfields: %v", got)
	}
	if got["a"] != "Bērziņš, Jānis" || got["4"] != "aut" || got["d"] != "1902-1983" {
		t.Fatalf("unexpected subfields: %v", got)
	}

	if got := ParseSubfields("NA"); got != nil {
		t.Fatalf("expected nil for NA, got %v", got)
	}
	if got := ParseSubfields("plain text"); got != nil {
		t.Fatalf("expected nil without delimiters, got %v", got)
	}
	if got := ParseSubfields("$$a   $$bX"); len(got) != 1 || got["b"] != "X" {
		t.Fatalf("blank content should be dropped, got %v", got)
	}
}

func TestFlipName(t *testing.T) {
	cases := map[string]string{
		"Bērziņš, Jānis":           "Jānis Bērziņš",
		"Lukšo-Ražinska, Elizabete": "Elizabete Lukšo-Ražinska",
		"van der Berg, J.":          "J. van der Berg",
		"O'Connor, Mary":           "Mary O'Connor",
		"Aspazija":                  "Aspazija",
		"":                          "",
	}
	for in, want := range cases {
		if got := FlipName(in); got != want {
			t.Errorf("FlipName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExtractDirector(t *testing.T) {
	cases := map[string]string{
		`filma "Spēle" (režisors Jānis Streičs)`:                        "Jānis Streičs",
		`izrāde (rež. Alvis Hermanis)`:                                  "Alvis Hermanis",
		`filma (režisors un scenārists Jānis Streičs)`:                  "Jānis Streičs",
		`filma (režisori Jānis Streičs, Aloizs Brenčs)`:                 "Jānis Streičs, Aloizs Brenčs",
		`bez kredīta`:                                                   "",
		`filma (režisors bez iekavas beigām`:                            "",
	}
	for in, want := range cases {
		if got := ExtractDirector(in); got != want {
			t.Errorf("ExtractDirector(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExtractQuotedTitle(t *testing.T) {
	if got := ExtractQuotedTitle(`filma "Ezera sonāte" (rež. X)`); got != "Ezera sonāte" {
		t.Fatalf("unexpected title: %q", got)
	}
	if got := ExtractQuotedTitle("bez pēdiņām"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestExtract500Fields(t *testing.T) {
	note := `Rec. par grām.: {Ziedonis, Imants.} Epifānijas / Imants Ziedonis. Rīga : Liesma, 1971. 134 lpp.`
	if got := ExtractAuthor500(note); got != "Imants Ziedonis" {
		t.Fatalf("unexpected author: %q", got)
	}
	if got := ExtractTitle500(note); got != "Epifānijas" {
		t.Fatalf("unexpected title: %q", got)
	}
	if got := ExtractPublisher500(note); got != "Liesma" {
		t.Fatalf("unexpected publisher: %q", got)
	}
}

func TestReviewTypeCollapsesLiterature(t *testing.T) {
	if got := ReviewType("Grāmatu apskati"); got != "Literatūras recenzijas" {
		t.Fatalf("unexpected type: %q", got)
	}
	if got := ReviewType("Kino recenzijas"); got != "Kino recenzijas" {
		t.Fatalf("unexpected type: %q", got)
	}
}

package format

import (
	"strings"
	"testing"

	"github.com/lucabaldesi/referencer/internal/fieldlist"
)

const risJournal = `TY  - JOUR
AU  - Smith, John
AU  - Doe, Jane
TI  - Gravity Waves
JO  - Nature
VL  - 12
IS  - 3
SP  - 100
EP  - 110
PY  - 2020/05/01/
DO  - 10.1000/xyz
KW  - waves
ER  -
`

func TestParseRIS_Journal(t *testing.T) {
	lists, err := parseRIS(strings.NewReader(risJournal))
	if err != nil {
		t.Fatalf("parseRIS() error: %v", err)
	}
	if len(lists) != 1 {
		t.Fatalf("parseRIS() returned %d lists, want 1", len(lists))
	}
	l := lists[0]

	checkField(t, l, fieldlist.TagGenre, 1, "academic journal")
	checkField(t, l, fieldlist.TagAuthor, 0, "Smith|John")
	checkField(t, l, fieldlist.TagTitle, 0, "Gravity Waves")
	checkField(t, l, fieldlist.TagTitle, 1, "Nature")
	checkField(t, l, fieldlist.TagVolume, 1, "12")
	checkField(t, l, fieldlist.TagIssue, 1, "3")
	checkField(t, l, fieldlist.TagPageStart, 1, "100")
	checkField(t, l, fieldlist.TagPageEnd, 1, "110")
	checkField(t, l, fieldlist.TagYear, 1, "2020")
	checkField(t, l, fieldlist.TagDOI, 0, "10.1000/xyz")
	checkField(t, l, fieldlist.TagKeyword, 0, "waves")
}

func TestParseRIS_ContinuationLines(t *testing.T) {
	input := "TY  - GEN\nAB  - First line\nsecond line\nER  - \n"
	lists, err := parseRIS(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseRIS() error: %v", err)
	}
	checkField(t, lists[0], "ABSTRACT", 0, "First line second line")
}

func TestParseRIS_MultipleRecords(t *testing.T) {
	input := "TY  - JOUR\nTI  - First\nER  - \nTY  - BOOK\nTI  - Second\nER  - \n"
	lists, err := parseRIS(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseRIS() error: %v", err)
	}
	if len(lists) != 2 {
		t.Fatalf("parseRIS() returned %d lists, want 2", len(lists))
	}
	checkField(t, lists[0], fieldlist.TagTitle, 0, "First")
	checkField(t, lists[1], fieldlist.TagGenre, 0, "book")
}

func TestParseRIS_UnknownTypeFallsBackToMisc(t *testing.T) {
	input := "TY  - BOGUS\nTI  - T\nER  - \n"
	lists, err := parseRIS(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseRIS() error: %v", err)
	}
	checkField(t, lists[0], fieldlist.TagGenre, 0, "misc")
}

func TestParseRIS_NoRecords(t *testing.T) {
	if _, err := parseRIS(strings.NewReader("just text\n")); err == nil {
		t.Fatal("parseRIS() on non-RIS input succeeded, want error")
	}
}

func TestLeadingYear(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2020/05/01/", "2020"},
		{"2020", "2020"},
		{"  1999  ", "1999"},
		{"May 2020", ""},
		{"20", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := leadingYear(tt.input); got != tt.want {
			t.Errorf("leadingYear(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

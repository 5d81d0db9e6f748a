package main

import (
	"strings"
	"testing"

	"github.com/lucabaldesi/referencer/internal/bib"
	"github.com/lucabaldesi/referencer/internal/export"
	"github.com/lucabaldesi/referencer/internal/library"
)

func TestDeriveKey(t *testing.T) {
	tests := []struct {
		name string
		rec  bib.Record
		want string
	}{
		{
			name: "family name and year",
			rec:  bib.Record{Authors: "Smith, John Q. and Doe, Jane", Year: "2020"},
			want: "smith2020",
		},
		{
			name: "accents and spaces stripped",
			rec:  bib.Record{Authors: "Van Helsing, Abraham", Year: "1999"},
			want: "vanhelsing1999",
		},
		{
			name: "no author falls back to title word",
			rec:  bib.Record{Title: "Gravity Waves in the Laboratory", Year: "2021"},
			want: "gravity2021",
		},
		{
			name: "nothing to derive from",
			rec:  bib.Record{},
			want: "doc",
		},
		{
			name: "no year",
			rec:  bib.Record{Authors: "Lovelace, Ada"},
			want: "lovelace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deriveKey(&tt.rec); got != tt.want {
				t.Errorf("deriveKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUniqueKey(t *testing.T) {
	lib := library.New()
	lib.AddDoc(&library.Document{Key: "smith2020"})
	lib.AddDoc(&library.Document{Key: "smith2020-2"})

	if got := uniqueKey(lib, "doe2021"); got != "doe2021" {
		t.Errorf("uniqueKey(free) = %q", got)
	}
	if got := uniqueKey(lib, "smith2020"); got != "smith2020-3" {
		t.Errorf("uniqueKey(taken) = %q, want smith2020-3", got)
	}
	if got := uniqueKey(lib, ""); got != "doc" {
		t.Errorf("uniqueKey(empty) = %q, want doc", got)
	}
}

func TestRenderLibraryBibTeX(t *testing.T) {
	lib := library.New()
	lib.AddDoc(&library.Document{
		Key: "smith2020",
		Record: &bib.Record{
			Type:    "article",
			Title:   "Gravity Waves",
			Authors: "Smith, John",
			Year:    "2020",
		},
	})
	lib.AddDoc(&library.Document{Record: bib.New()}) // keyless

	got := renderLibraryBibTeX(lib, export.Options{UTF8: true})

	for _, want := range []string{
		"@article{smith2020,",
		"title = {Gravity Waves},",
		"@article{doc-1,",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestTruncateString(t *testing.T) {
	if got := truncateString("short", 10); got != "short" {
		t.Errorf("truncateString(short) = %q", got)
	}
	got := truncateString("a very long title that keeps going", 12)
	if got != "a very lo..." {
		t.Errorf("truncateString(long) = %q", got)
	}
}

package export

import (
	"strings"
	"testing"

	"github.com/lucabaldesi/referencer/internal/bib"
)

func articleRecord() *bib.Record {
	rec := bib.New()
	rec.Title = "Test Paper Title"
	rec.Authors = "Smith, John and Doe, Jane"
	rec.Journal = "Nature"
	rec.Volume = "12"
	rec.Number = "3"
	rec.Pages = "100-110"
	rec.Year = "2020"
	rec.DOI = "10.1234/test"
	return rec
}

func TestToBibTeX_BasicArticle(t *testing.T) {
	got := ToBibTeX(articleRecord(), "Smith2020-tp", Options{UTF8: true})

	if !strings.HasPrefix(got, "@article{Smith2020-tp,") {
		t.Errorf("entry should start with @article{Smith2020-tp, got:\n%s", got)
	}

	wantLines := []string{
		"author = {Smith, John and Doe, Jane}",
		"title = {Test Paper Title}",
		"journal = {Nature}",
		"volume = {12}",
		"number = {3}",
		"pages = {100-110}",
		"year = {2020}",
		"doi = {10.1234/test}",
	}
	for _, want := range wantLines {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}

	if !strings.HasSuffix(strings.TrimSpace(got), "}") {
		t.Errorf("entry should end with }, got:\n%s", got)
	}
}

func TestToBibTeX_EmptyFieldsOmitted(t *testing.T) {
	rec := bib.New()
	rec.Title = "Only a Title"

	got := ToBibTeX(rec, "anon", Options{UTF8: true})

	for _, absent := range []string{"author =", "journal =", "pages =", "doi ="} {
		if strings.Contains(got, absent) {
			t.Errorf("empty field emitted: %q in:\n%s", absent, got)
		}
	}
}

func TestToBibTeX_BraceProtection(t *testing.T) {
	rec := articleRecord()
	rec.Extras.Set("Editor", "Aho, A. and Ullman, J.")
	rec.Extras.Set("Keywords", "go; parsing")

	got := ToBibTeX(rec, "k", Options{Braces: true, UTF8: true})

	if !strings.Contains(got, "title = {{Test Paper Title}}") {
		t.Errorf("title not double-braced:\n%s", got)
	}
	// Author and editor values stay single-braced so BibTeX does not read
	// the list as one corporate name.
	if !strings.Contains(got, "author = {Smith, John and Doe, Jane}") {
		t.Errorf("author must not be double-braced:\n%s", got)
	}
	if !strings.Contains(got, "Editor = {Aho, A. and Ullman, J.}") {
		t.Errorf("editor extra must not be double-braced:\n%s", got)
	}
	// Pages are exempt as well.
	if !strings.Contains(got, "pages = {100-110}") {
		t.Errorf("pages must not be double-braced:\n%s", got)
	}
	if !strings.Contains(got, "Keywords = {{go; parsing}}") {
		t.Errorf("extras should be double-braced:\n%s", got)
	}
}

func TestToBibTeX_LatexEscaping(t *testing.T) {
	rec := bib.New()
	rec.Title = "Müller & Sørensen on café networks"

	got := ToBibTeX(rec, "k", Options{UTF8: false})

	if !strings.Contains(got, `M\"{u}ller \& S{\o}rensen on caf\'{e} networks`) {
		t.Errorf("accents not escaped:\n%s", got)
	}
}

func TestToBibTeX_UTF8PassThrough(t *testing.T) {
	rec := bib.New()
	rec.Title = "Müller"

	got := ToBibTeX(rec, "k", Options{UTF8: true})

	if !strings.Contains(got, "title = {Müller}") {
		t.Errorf("UTF-8 mode rewrote the value:\n%s", got)
	}
}

func TestToBibTeXList(t *testing.T) {
	a := bib.New()
	a.Title = "First"
	b := bib.New()
	b.Title = "Second"

	got := ToBibTeXList([]*bib.Record{a, b}, func(i int, _ *bib.Record) string {
		return []string{"one", "two"}[i]
	}, Options{UTF8: true})

	if !strings.Contains(got, "@article{one,") || !strings.Contains(got, "@article{two,") {
		t.Errorf("list output missing entries:\n%s", got)
	}
}

func TestEscapeLatex_Table(t *testing.T) {
	tests := []struct{ in, want string }{
		{"é", `\'{e}`},
		{"ü", `\"{u}`},
		{"ß", `{\ss}`},
		{"ł", `{\l}`},
		{"&", `\&`},
		{"plain ascii", "plain ascii"},
	}
	for _, tt := range tests {
		if got := EscapeLatex(tt.in); got != tt.want {
			t.Errorf("EscapeLatex(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

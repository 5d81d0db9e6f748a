package format

import (
	"strings"
	"testing"

	"github.com/lucabaldesi/referencer/internal/fieldlist"
)

const modsArticle = `<?xml version="1.0" encoding="UTF-8"?>
<modsCollection xmlns="http://www.loc.gov/mods/v3">
<mods>
  <titleInfo><nonSort>The</nonSort><title>Gravity Waves</title><subTitle>A Survey</subTitle></titleInfo>
  <name type="personal">
    <namePart type="family">Smith</namePart>
    <namePart type="given">John</namePart>
    <role><roleTerm type="text">author</roleTerm></role>
  </name>
  <originInfo><dateIssued>2020</dateIssued></originInfo>
  <identifier type="doi">10.1000/xyz</identifier>
  <subject><topic>waves</topic></subject>
  <abstract>On waves.</abstract>
  <relatedItem type="host">
    <titleInfo><title>Nature</title></titleInfo>
    <genre>academic journal</genre>
    <part>
      <detail type="volume"><number>12</number></detail>
      <detail type="issue"><number>3</number></detail>
      <extent unit="page"><start>100</start><end>110</end></extent>
      <date>2020</date>
    </part>
  </relatedItem>
</mods>
</modsCollection>
`

func TestParseMODS_Article(t *testing.T) {
	lists, err := parseMODS(strings.NewReader(modsArticle))
	if err != nil {
		t.Fatalf("parseMODS() error: %v", err)
	}
	if len(lists) != 1 {
		t.Fatalf("parseMODS() returned %d lists, want 1", len(lists))
	}
	l := lists[0]

	checkField(t, l, fieldlist.TagTitle, 0, "The Gravity Waves")
	checkField(t, l, fieldlist.TagSubtitle, 0, "A Survey")
	checkField(t, l, fieldlist.TagAuthor, 0, "Smith|John")
	checkField(t, l, fieldlist.TagYear, 0, "2020")
	checkField(t, l, fieldlist.TagDOI, 0, "10.1000/xyz")
	checkField(t, l, fieldlist.TagKeyword, 0, "waves")
	checkField(t, l, "ABSTRACT", 0, "On waves.")

	// The host item contributes container fields one level up.
	checkField(t, l, fieldlist.TagTitle, 1, "Nature")
	checkField(t, l, fieldlist.TagGenre, 1, "academic journal")
	checkField(t, l, fieldlist.TagVolume, 1, "12")
	checkField(t, l, fieldlist.TagIssue, 1, "3")
	checkField(t, l, fieldlist.TagPageStart, 1, "100")
	checkField(t, l, fieldlist.TagPageEnd, 1, "110")
	checkField(t, l, fieldlist.TagPartYear, 1, "2020")
}

func TestParseMODS_SingleRoot(t *testing.T) {
	input := `<mods xmlns="http://www.loc.gov/mods/v3">
  <titleInfo><title>Standalone</title></titleInfo>
  <genre>book</genre>
</mods>`
	lists, err := parseMODS(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseMODS() error: %v", err)
	}
	if len(lists) != 1 {
		t.Fatalf("parseMODS() returned %d lists, want 1", len(lists))
	}
	checkField(t, lists[0], fieldlist.TagTitle, 0, "Standalone")
	checkField(t, lists[0], fieldlist.TagGenre, 0, "book")
}

func TestParseMODS_NestedRelatedItems(t *testing.T) {
	input := `<mods>
  <titleInfo><title>Paper</title></titleInfo>
  <relatedItem type="host">
    <titleInfo><title>Proceedings</title></titleInfo>
    <relatedItem type="series">
      <titleInfo><title>Lecture Notes</title></titleInfo>
    </relatedItem>
  </relatedItem>
</mods>`
	lists, err := parseMODS(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseMODS() error: %v", err)
	}
	l := lists[0]
	checkField(t, l, fieldlist.TagTitle, 0, "Paper")
	checkField(t, l, fieldlist.TagTitle, 1, "Proceedings")
	checkField(t, l, fieldlist.TagTitle, 2, "Lecture Notes")
}

func TestParseMODS_Names(t *testing.T) {
	input := `<mods>
  <titleInfo><title>T</title></titleInfo>
  <name type="personal">
    <namePart type="family">Doe</namePart>
    <namePart type="given">Jane</namePart>
    <role><roleTerm type="code">edt</roleTerm></role>
  </name>
  <name type="corporate">
    <namePart>Standards Committee</namePart>
  </name>
  <name type="personal">
    <namePart>Ada Lovelace</namePart>
  </name>
</mods>`
	lists, err := parseMODS(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseMODS() error: %v", err)
	}
	l := lists[0]
	checkField(t, l, fieldlist.TagEditor, 0, "Doe|Jane")
	checkField(t, l, fieldlist.TagCorpAuthor, 0, "Standards Committee")
	checkField(t, l, fieldlist.TagAuthor, 0, "Lovelace|Ada")
}

func TestParseMODS_NoRecords(t *testing.T) {
	if _, err := parseMODS(strings.NewReader("<notmods></notmods>")); err == nil {
		t.Fatal("parseMODS() without mods elements succeeded, want error")
	}
}

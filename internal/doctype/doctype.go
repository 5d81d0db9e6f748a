// Package doctype classifies a parsed field list into a document type.
package doctype

import (
	"strings"

	"github.com/lucabaldesi/referencer/internal/fieldlist"
)

// Type is the classified kind of a bibliographic record. Values double as
// BibTeX entry types.
type Type string

// Known document types.
const (
	Article       Type = "article"
	Book          Type = "book"
	InBook        Type = "inbook"
	Proceedings   Type = "proceedings"
	InProceedings Type = "inproceedings"
	Collection    Type = "collection"
	InCollection  Type = "incollection"
	PhDThesis     Type = "phdthesis"
	MastersThesis Type = "mastersthesis"
	TechReport    Type = "techreport"
	Manual        Type = "manual"
	Booklet       Type = "booklet"
	Unpublished   Type = "unpublished"
	Misc          Type = "misc"
)

var known = map[Type]bool{
	Article: true, Book: true, InBook: true,
	Proceedings: true, InProceedings: true,
	Collection: true, InCollection: true,
	PhDThesis: true, MastersThesis: true,
	TechReport: true, Manual: true, Booklet: true,
	Unpublished: true, Misc: true,
}

// IsKnown reports whether s is one of the known document types.
func IsKnown(s string) bool {
	return known[Type(s)]
}

// genreMap maps genre strings whose meaning does not depend on level.
// Keys are lowercase.
var genreMap = map[string]Type{
	"academic journal": Article,
	"periodical":       Article,
	"journal article":  Article,
	"article":          Article,
	"thesis":           PhDThesis,
	"theses":           PhDThesis,
	"phd thesis":       PhDThesis,
	"doctoral thesis":  PhDThesis,
	"masters thesis":   MastersThesis,
	"master's thesis":  MastersThesis,
	"report":           TechReport,
	"technical report": TechReport,
	"instruction":      Manual,
	"manual":           Manual,
	"booklet":          Booklet,
	"unpublished":      Unpublished,
	"web site":         Misc,
	"misc":             Misc,

	// BibTeX entry types pass straight through so the BibTeX reader shares
	// this code path with the XML formats.
	"inbook":        InBook,
	"proceedings":   Proceedings,
	"inproceedings": InProceedings,
	"conference":    InProceedings,
	"incollection":  InCollection,
	"phdthesis":     PhDThesis,
	"mastersthesis": MastersThesis,
	"techreport":    TechReport,
}

// Classify infers the document type of a field list.
//
// GENRE and NGENRE fields are scanned in order and the last recognized one
// wins. Genres naming a container kind ("book", "conference publication",
// "collection") classify as the container at level 0 and as the contained
// item at level 1 and above. With no usable genre the ISSUANCE fields are
// consulted, and failing that the presence of any nested field defaults the
// record to inbook, otherwise misc.
//
// The final fallback is known to misclassify conference papers that carry
// no genre metadata at all; it is kept as-is because existing library files
// were written against it.
func Classify(fields *fieldlist.List) Type {
	result := Type("")

	for _, f := range fields.Fields {
		if f.Tag != fieldlist.TagGenre && f.Tag != fieldlist.TagNGenre {
			continue
		}
		if t, ok := classifyGenre(f.Value, f.Level); ok {
			result = t
		}
	}
	if result != "" {
		return result
	}

	for _, f := range fields.Fields {
		if f.Tag != fieldlist.TagIssuance {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(f.Value), "monographic") {
			if f.Level == 0 {
				result = Book
			} else {
				result = InBook
			}
		}
	}
	if result != "" {
		return result
	}

	if fields.HasDeepFields() {
		return InBook
	}
	return Misc
}

func classifyGenre(value string, level int) (Type, bool) {
	v := strings.ToLower(strings.TrimSpace(value))

	switch v {
	case "book":
		if level == 0 {
			return Book, true
		}
		return InBook, true
	case "conference publication":
		if level == 0 {
			return Proceedings, true
		}
		return InProceedings, true
	case "collection":
		if level == 0 {
			return Collection, true
		}
		return InCollection, true
	}

	t, ok := genreMap[v]
	return t, ok
}

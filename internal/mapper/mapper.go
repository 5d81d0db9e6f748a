// Package mapper folds a classified field list into a structured record.
//
// The same tag carries different meaning depending on the classified type:
// for an article the level-1 title is the journal, for a chapter-like type
// the level-1 title is the book and the level-0 title the chapter. Mapping
// therefore branches on type before it touches the title tags. Every field
// the rules do not recognize ends up in the record's extras; only a short
// list of structural tags is dropped outright, so no field value can
// silently disappear.
package mapper

import (
	"strings"

	"github.com/lucabaldesi/referencer/internal/bib"
	"github.com/lucabaldesi/referencer/internal/doctype"
	"github.com/lucabaldesi/referencer/internal/fieldlist"
	"github.com/lucabaldesi/referencer/internal/person"
)

// extraSynonyms renames tags on their way into extras. Tags not listed get
// the generic first-letter-capitalized transform.
var extraSynonyms = map[string]string{
	"PARTDAY":   "Day",
	"PARTMONTH": "Month",
	"NOTES":     "Note",
	"ABSTRACT":  "Abstract",
	"PUBLISHER": "Publisher",
	"URL":       "Url",
	"ISBN":      "Isbn",
	"ISSN":      "Issn",
}

// structuralTags carry parsing metadata, not record content, and are
// dropped rather than surfaced as extras.
var structuralTags = map[string]bool{
	fieldlist.TagResource: true,
	fieldlist.TagIssuance: true,
	fieldlist.TagGenre:    true,
	fieldlist.TagNGenre:   true,
	fieldlist.TagType:     true,
}

// Map consumes fields and produces an independent record of the given
// type. The field list may be discarded afterwards.
func Map(fields *fieldlist.List, typ doctype.Type) *bib.Record {
	rec := bib.New()
	rec.Type = string(typ)

	mapTitles(fields, typ, rec)
	mapPeople(fields, rec)
	mapScalars(fields, rec)
	mapLeftovers(fields, typ, rec)

	return rec
}

// titleAt consumes the TITLE and SUBTITLE at one level and joins them. A
// subtitle follows ": " unless the title already ends in a question mark.
func titleAt(fields *fieldlist.List, level int) string {
	title := fields.Consume(fieldlist.TagTitle, level)
	if title == "" {
		return ""
	}
	sub := fields.Consume(fieldlist.TagSubtitle, level)
	if sub == "" {
		return title
	}
	if strings.HasSuffix(title, "?") {
		return title + " " + sub
	}
	return title + ": " + sub
}

func mapTitles(fields *fieldlist.List, typ doctype.Type, rec *bib.Record) {
	switch typ {
	case doctype.InBook, doctype.InCollection, doctype.InProceedings:
		// The level-0 title names the chapter or paper; the containing
		// volume's title is the record's primary title.
		chapter := titleAt(fields, 0)
		rec.Title = titleAt(fields, 1)
		if rec.Title == "" {
			rec.Title = chapter
		} else if chapter != "" {
			rec.Extras.Set("Chapter", chapter)
		}
	case doctype.Article:
		rec.Title = titleAt(fields, 0)
		rec.Journal = titleAt(fields, 1)
	default:
		rec.Title = titleAt(fields, 0)
	}
}

func mapPeople(fields *fieldlist.List, rec *bib.Record) {
	rec.Authors = person.Join(fields, fieldlist.TagAuthor, fieldlist.TagCorpAuthor, 0)

	// The schema has no first-class editor or translator slot; they are
	// kept as extras rather than discarded, and collected at every level.
	if ed := person.Join(fields, fieldlist.TagEditor, "", fieldlist.AnyLevel); ed != "" {
		rec.Extras.Set("Editor", ed)
	}
	if tr := person.Join(fields, fieldlist.TagTranslator, "", fieldlist.AnyLevel); tr != "" {
		rec.Extras.Set("Translator", tr)
	}
}

func mapScalars(fields *fieldlist.List, rec *bib.Record) {
	any := fieldlist.AnyLevel

	rec.Volume = fields.Consume(fieldlist.TagVolume, any)

	rec.Number = fields.Consume(fieldlist.TagNumber, any)
	if rec.Number == "" {
		rec.Number = fields.Consume(fieldlist.TagIssue, any)
	}

	rec.Year = fields.Consume(fieldlist.TagYear, any)
	if rec.Year == "" {
		rec.Year = fields.Consume(fieldlist.TagPartYear, any)
	}

	rec.DOI = fields.Consume(fieldlist.TagDOI, any)

	start := fields.Consume(fieldlist.TagPageStart, any)
	end := fields.Consume(fieldlist.TagPageEnd, any)
	switch {
	case start != "" && end != "":
		rec.Pages = start + "-" + end
	case start != "":
		rec.Pages = start
	default:
		rec.Pages = fields.Consume(fieldlist.TagArticleNumber, any)
	}
}

// mapLeftovers surfaces every remaining field as an extra, dropping only
// structural tags.
func mapLeftovers(fields *fieldlist.List, typ doctype.Type, rec *bib.Record) {
	for _, f := range fields.Unconsumed() {
		if structuralTags[f.Tag] {
			continue
		}

		switch f.Tag {
		case fieldlist.TagKeyword:
			rec.Extras.Append("Keywords", f.Value)
		case fieldlist.TagTitle, fieldlist.TagSubtitle:
			// A title at a level the type-specific branch did not expect.
			// Re-route instead of clobbering the primary title.
			if typ == doctype.InBook || typ == doctype.InCollection {
				rec.Extras.SetIfEmpty("Chapter", f.Value)
			} else {
				rec.Extras.SetIfEmpty("Series", f.Value)
			}
		case fieldlist.TagAuthor:
			// Container-level authors have no structured slot.
			rec.Extras.SetIfEmpty("Author", person.Decode(f.Value))
		case fieldlist.TagCorpAuthor:
			rec.Extras.SetIfEmpty("Author", f.Value)
		default:
			rec.Extras.SetIfEmpty(extraName(f.Tag), f.Value)
		}
	}
}

// extraName maps a tag to its extras key: the synonym table first, then a
// generic capitalize-first-letter transform.
func extraName(tag string) string {
	if strings.HasPrefix(tag, "DEGREEGRANTOR") {
		return "School"
	}
	if name, ok := extraSynonyms[tag]; ok {
		return name
	}
	if tag == "" {
		return tag
	}
	return strings.ToUpper(tag[:1]) + strings.ToLower(tag[1:])
}

package format

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lucabaldesi/referencer/internal/fieldlist"
	"github.com/lucabaldesi/referencer/internal/person"
)

// endnoteGenres maps ref-type names onto genre fields.
var endnoteGenres = map[string]struct {
	genre string
	level int
}{
	"journal article":        {"academic journal", 1},
	"magazine article":       {"periodical", 1},
	"newspaper article":      {"periodical", 1},
	"book":                   {"book", 0},
	"edited book":            {"book", 0},
	"book section":           {"book", 1},
	"conference paper":       {"conference publication", 1},
	"conference proceedings": {"conference publication", 0},
	"thesis":                 {"thesis", 0},
	"report":                 {"report", 0},
	"unpublished work":       {"unpublished", 0},
	"web page":               {"misc", 0},
}

// parseEndNote reads EndNote XML exports. EndNote wraps every text run in
// <style> elements and has shipped both lowercase and uppercase element
// names, so this walks tokens and gathers inner text per element rather
// than decoding a fixed schema.
func parseEndNote(r io.Reader) ([]*fieldlist.List, error) {
	dec := newXMLDecoder(r)

	var (
		lists     []*fieldlist.List
		rec       *endnoteRecord
		path      []string
		textDepth int // depth at which the current captured element started
		text      strings.Builder
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := strings.ToLower(t.Name.Local)
			path = append(path, name)
			if name == "record" {
				rec = newEndnoteRecord()
			}
			if rec != nil && endnoteCaptured[name] && textDepth == 0 {
				textDepth = len(path)
				text.Reset()
				if name == "ref-type" {
					for _, a := range t.Attr {
						if strings.ToLower(a.Name.Local) == "name" {
							rec.refType = a.Value
						}
					}
				}
			}
		case xml.CharData:
			if textDepth > 0 {
				text.Write(t)
			}
		case xml.EndElement:
			name := strings.ToLower(t.Name.Local)
			if textDepth == len(path) && endnoteCaptured[name] {
				rec.add(name, path, strings.TrimSpace(text.String()))
				textDepth = 0
			}
			if name == "record" && rec != nil {
				lists = append(lists, rec.fields())
				rec = nil
			}
			if len(path) > 0 {
				path = path[:len(path)-1]
			}
		}
	}

	if len(lists) == 0 {
		return nil, ErrMalformedInput
	}
	return lists, nil
}

// endnoteCaptured lists the leaf elements whose inner text is collected,
// including text inside nested <style> wrappers.
var endnoteCaptured = map[string]bool{
	"ref-type": true, "author": true, "title": true,
	"secondary-title": true, "tertiary-title": true, "full-title": true,
	"year": true, "volume": true, "number": true, "pages": true,
	"electronic-resource-num": true, "keyword": true, "abstract": true,
	"publisher": true, "notes": true, "label": true, "isbn": true,
}

type endnoteValue struct {
	elem    string
	context string // enclosing contributor group, if any
	value   string
}

type endnoteRecord struct {
	refType string
	values  []endnoteValue
}

func newEndnoteRecord() *endnoteRecord {
	return &endnoteRecord{}
}

func (r *endnoteRecord) add(elem string, path []string, value string) {
	if value == "" {
		return
	}
	context := ""
	for _, p := range path {
		switch p {
		case "authors", "secondary-authors", "tertiary-authors", "translated-authors":
			context = p
		}
	}
	r.values = append(r.values, endnoteValue{elem: elem, context: context, value: value})
}

// fields assembles the collected values into a field list. The genre is
// appended last; only its presence matters to classification.
func (r *endnoteRecord) fields() *fieldlist.List {
	l := fieldlist.New()

	// <full-title> usually duplicates <secondary-title> for journal
	// records; keep only one container title.
	haveSecondary := false
	for _, v := range r.values {
		if v.elem == "secondary-title" {
			haveSecondary = true
		}
	}

	for _, v := range r.values {
		if v.elem == "full-title" && haveSecondary {
			continue
		}
		switch v.elem {
		case "author":
			switch v.context {
			case "secondary-authors":
				l.Add(fieldlist.TagEditor, person.ToWire(v.value), 1)
			case "translated-authors":
				l.Add(fieldlist.TagTranslator, person.ToWire(v.value), 0)
			case "tertiary-authors":
				l.Add(fieldlist.TagEditor, person.ToWire(v.value), 2)
			default:
				l.Add(fieldlist.TagAuthor, person.ToWire(v.value), 0)
			}
		case "title":
			l.Add(fieldlist.TagTitle, v.value, 0)
		case "secondary-title", "full-title":
			l.Add(fieldlist.TagTitle, v.value, 1)
		case "tertiary-title":
			l.Add(fieldlist.TagTitle, v.value, 2)
		case "year":
			if y := leadingYear(v.value); y != "" {
				l.Add(fieldlist.TagYear, y, 1)
			}
		case "volume":
			l.Add(fieldlist.TagVolume, v.value, 1)
		case "number":
			l.Add(fieldlist.TagIssue, v.value, 1)
		case "pages":
			addPages(l, v.value)
		case "electronic-resource-num":
			l.Add(fieldlist.TagDOI, strings.TrimPrefix(v.value, "doi:"), 0)
		case "keyword":
			l.Add(fieldlist.TagKeyword, v.value, 0)
		case "abstract":
			l.Add("ABSTRACT", v.value, 0)
		case "publisher":
			l.Add("PUBLISHER", v.value, 1)
		case "notes":
			l.Add(fieldlist.TagNotes, v.value, 0)
		case "label":
			l.Add("LABEL", v.value, 0)
		case "isbn":
			l.Add("ISSN", v.value, 1)
		}
	}

	g, ok := endnoteGenres[strings.ToLower(strings.TrimSpace(r.refType))]
	if !ok {
		g.genre, g.level = "misc", 0
	}
	l.Add(fieldlist.TagGenre, g.genre, g.level)

	return l
}

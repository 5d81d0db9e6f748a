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

// parseMODS reads MODS XML, either a single <mods> element or a
// <modsCollection> of them. Nested <relatedItem> elements describe the
// containers a record appears in; each nesting step raises the level of
// the fields it contributes.
func parseMODS(r io.Reader) ([]*fieldlist.List, error) {
	dec := newXMLDecoder(r)

	var lists []*fieldlist.List
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "mods" {
			// A modsCollection root is walked into; anything else is
			// skipped wholesale.
			if start.Name.Local != "modsCollection" {
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
				}
			}
			continue
		}

		var item modsItem
		if err := dec.DecodeElement(&item, &start); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		l := fieldlist.New()
		item.emit(l, 0)
		lists = append(lists, l)
	}

	if len(lists) == 0 {
		return nil, ErrMalformedInput
	}
	return lists, nil
}

// modsItem covers the subset of MODS this reader understands. The same
// struct decodes both <mods> and <relatedItem>.
type modsItem struct {
	TitleInfo   []modsTitleInfo  `xml:"titleInfo"`
	Names       []modsName       `xml:"name"`
	Genres      []modsGenre      `xml:"genre"`
	Resource    []string         `xml:"typeOfResource"`
	OriginInfo  []modsOriginInfo `xml:"originInfo"`
	Parts       []modsPart       `xml:"part"`
	Identifiers []modsIdentifier `xml:"identifier"`
	Subjects    []modsSubject    `xml:"subject"`
	Abstract    []string         `xml:"abstract"`
	Notes       []string         `xml:"note"`
	Related     []modsItem       `xml:"relatedItem"`
}

type modsTitleInfo struct {
	Type     string `xml:"type,attr"`
	NonSort  string `xml:"nonSort"`
	Title    string `xml:"title"`
	SubTitle string `xml:"subTitle"`
}

type modsName struct {
	Type        string         `xml:"type,attr"`
	Parts       []modsNamePart `xml:"namePart"`
	DisplayForm string         `xml:"displayForm"`
	RoleTerms   []string       `xml:"role>roleTerm"`
}

type modsNamePart struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type modsGenre struct {
	Value string `xml:",chardata"`
}

type modsOriginInfo struct {
	DateIssued []string `xml:"dateIssued"`
	Issuance   []string `xml:"issuance"`
	Publisher  []string `xml:"publisher"`
}

type modsPart struct {
	Details []modsDetail `xml:"detail"`
	Extents []modsExtent `xml:"extent"`
	Dates   []string     `xml:"date"`
}

type modsDetail struct {
	Type    string `xml:"type,attr"`
	Number  string `xml:"number"`
	Caption string `xml:"caption"`
}

type modsExtent struct {
	Unit  string `xml:"unit,attr"`
	Start string `xml:"start"`
	End   string `xml:"end"`
}

type modsIdentifier struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type modsSubject struct {
	Topics []string `xml:"topic"`
}

// emit appends the item's fields at the given level, then recurses into
// related items one level deeper.
func (m *modsItem) emit(l *fieldlist.List, level int) {
	for _, ti := range m.TitleInfo {
		title := strings.TrimSpace(ti.Title)
		if ns := strings.TrimSpace(ti.NonSort); ns != "" {
			title = ns + " " + title
		}
		if title != "" {
			l.Add(fieldlist.TagTitle, title, level)
		}
		if st := strings.TrimSpace(ti.SubTitle); st != "" {
			l.Add(fieldlist.TagSubtitle, st, level)
		}
	}

	for _, n := range m.Names {
		n.emit(l, level)
	}

	for _, g := range m.Genres {
		if v := strings.TrimSpace(g.Value); v != "" {
			l.Add(fieldlist.TagGenre, strings.ToLower(v), level)
		}
	}
	for _, res := range m.Resource {
		if v := strings.TrimSpace(res); v != "" {
			l.Add(fieldlist.TagResource, strings.ToLower(v), level)
		}
	}

	for _, oi := range m.OriginInfo {
		for _, d := range oi.DateIssued {
			if y := leadingYear(d); y != "" {
				l.Add(fieldlist.TagYear, y, level)
			}
		}
		for _, iss := range oi.Issuance {
			if v := strings.TrimSpace(iss); v != "" {
				l.Add(fieldlist.TagIssuance, strings.ToLower(v), level)
			}
		}
		for _, pub := range oi.Publisher {
			if v := strings.TrimSpace(pub); v != "" {
				l.Add("PUBLISHER", v, level)
			}
		}
	}

	for _, p := range m.Parts {
		for _, d := range p.Details {
			num := strings.TrimSpace(d.Number)
			if num == "" {
				continue
			}
			switch d.Type {
			case "volume":
				l.Add(fieldlist.TagVolume, num, level)
			case "issue", "number":
				l.Add(fieldlist.TagIssue, num, level)
			}
		}
		for _, e := range p.Extents {
			if e.Unit != "" && e.Unit != "page" && e.Unit != "pages" {
				continue
			}
			if s := strings.TrimSpace(e.Start); s != "" {
				l.Add(fieldlist.TagPageStart, s, level)
			}
			if s := strings.TrimSpace(e.End); s != "" {
				l.Add(fieldlist.TagPageEnd, s, level)
			}
		}
		for _, d := range p.Dates {
			if y := leadingYear(d); y != "" {
				l.Add(fieldlist.TagPartYear, y, level)
			}
		}
	}

	for _, id := range m.Identifiers {
		v := strings.TrimSpace(id.Value)
		if v == "" {
			continue
		}
		switch strings.ToLower(id.Type) {
		case "doi":
			l.Add(fieldlist.TagDOI, strings.TrimPrefix(v, "doi:"), level)
		case "issn":
			l.Add("ISSN", v, level)
		case "isbn":
			l.Add("ISBN", v, level)
		case "uri":
			l.Add("URL", v, level)
		default:
			l.Add(strings.ToUpper(id.Type), v, level)
		}
	}

	for _, s := range m.Subjects {
		for _, t := range s.Topics {
			if v := strings.TrimSpace(t); v != "" {
				l.Add(fieldlist.TagKeyword, v, level)
			}
		}
	}
	for _, a := range m.Abstract {
		if v := strings.TrimSpace(a); v != "" {
			l.Add("ABSTRACT", v, level)
		}
	}
	for _, n := range m.Notes {
		if v := strings.TrimSpace(n); v != "" {
			l.Add(fieldlist.TagNotes, v, level)
		}
	}

	for i := range m.Related {
		m.Related[i].emit(l, level+1)
	}
}

// emit adds one name field. Structured family/given parts are assembled
// into wire format directly; free-form names go through the display-name
// heuristic.
func (n *modsName) emit(l *fieldlist.List, level int) {
	tag := fieldlist.TagAuthor
	for _, role := range n.RoleTerms {
		switch strings.ToLower(strings.TrimSpace(role)) {
		case "author", "aut", "creator":
			tag = fieldlist.TagAuthor
		case "editor", "edt":
			tag = fieldlist.TagEditor
		case "translator", "trl":
			tag = fieldlist.TagTranslator
		}
	}

	if strings.ToLower(n.Type) == "corporate" {
		v := strings.TrimSpace(n.DisplayForm)
		if v == "" {
			var parts []string
			for _, p := range n.Parts {
				if s := strings.TrimSpace(p.Value); s != "" {
					parts = append(parts, s)
				}
			}
			v = strings.Join(parts, " ")
		}
		if v != "" {
			l.Add(fieldlist.TagCorpAuthor, v, level)
		}
		return
	}

	var family string
	var given []string
	for _, p := range n.Parts {
		v := strings.TrimSpace(p.Value)
		if v == "" {
			continue
		}
		switch p.Type {
		case "family":
			family = v
		case "given":
			given = append(given, v)
		case "date", "termsOfAddress":
			// Not part of the name proper.
		default:
			// Untyped parts hold the whole name in display order.
			given = append(given, v)
		}
	}

	var wire string
	switch {
	case family != "":
		wire = strings.Join(append([]string{family}, given...), "|")
	case len(given) > 0:
		wire = person.ToWire(strings.Join(given, " "))
	case n.DisplayForm != "":
		wire = person.ToWire(n.DisplayForm)
	}
	if wire != "" {
		l.Add(tag, wire, level)
	}
}

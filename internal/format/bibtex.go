package format

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/nickng/bibtex"

	"github.com/lucabaldesi/referencer/internal/fieldlist"
	"github.com/lucabaldesi/referencer/internal/person"
)

// bibtexContainerTitle maps field names holding the container's title.
var bibtexContainerTitle = map[string]int{
	"journal":   1,
	"booktitle": 1,
	"series":    2,
}

// bibtexTagRename maps remaining BibTeX field names onto neutral tags.
var bibtexTagRename = map[string]string{
	"note":   fieldlist.TagNotes,
	"school": "DEGREEGRANTOR",
	"issue":  fieldlist.TagIssue,
}

// parseBibTeX reads BibTeX entries. The grammar work is delegated to the
// bibtex package; this function only translates entries into field lists.
func parseBibTeX(r io.Reader) ([]*fieldlist.List, error) {
	bt, err := bibtex.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if bt == nil || len(bt.Entries) == 0 {
		return nil, ErrMalformedInput
	}

	lists := make([]*fieldlist.List, 0, len(bt.Entries))
	for _, e := range bt.Entries {
		lists = append(lists, bibtexEntryToFields(e))
	}
	return lists, nil
}

func bibtexEntryToFields(e *bibtex.BibEntry) *fieldlist.List {
	l := fieldlist.New()

	// The entry type doubles as the genre; the classifier accepts BibTeX
	// type names directly.
	l.Add(fieldlist.TagGenre, strings.ToLower(e.Type), 0)

	values := make(map[string]string, len(e.Fields))
	for name, v := range e.Fields {
		values[strings.ToLower(name)] = strings.TrimSpace(v.String())
	}

	// Entry fields live in a map, so emit the known ones in a fixed order
	// and the rest sorted: downstream extras iteration stays stable.
	take := func(name string) (string, bool) {
		v, ok := values[name]
		delete(values, name)
		return v, ok && v != ""
	}

	if v, ok := take("author"); ok {
		for _, name := range splitPeople(v) {
			l.Add(fieldlist.TagAuthor, person.ToWire(name), 0)
		}
	}
	if v, ok := take("editor"); ok {
		for _, name := range splitPeople(v) {
			l.Add(fieldlist.TagEditor, person.ToWire(name), 1)
		}
	}
	if v, ok := take("title"); ok {
		l.Add(fieldlist.TagTitle, v, 0)
	}
	if v, ok := take("subtitle"); ok {
		l.Add(fieldlist.TagSubtitle, v, 0)
	}
	for _, name := range []string{"journal", "booktitle", "series"} {
		if v, ok := take(name); ok {
			l.Add(fieldlist.TagTitle, v, bibtexContainerTitle[name])
		}
	}
	if v, ok := take("volume"); ok {
		l.Add(fieldlist.TagVolume, v, 0)
	}
	if v, ok := take("number"); ok {
		l.Add(fieldlist.TagNumber, v, 0)
	}
	if v, ok := take("year"); ok {
		l.Add(fieldlist.TagYear, v, 0)
	}
	if v, ok := take("doi"); ok {
		l.Add(fieldlist.TagDOI, v, 0)
	}
	if v, ok := take("pages"); ok {
		addPages(l, v)
	}
	if v, ok := take("keywords"); ok {
		for _, kw := range splitList(v) {
			l.Add(fieldlist.TagKeyword, kw, 0)
		}
	}

	rest := make([]string, 0, len(values))
	for name := range values {
		rest = append(rest, name)
	}
	sort.Strings(rest)
	for _, name := range rest {
		if values[name] == "" {
			continue
		}
		tag := strings.ToUpper(name)
		if renamed, ok := bibtexTagRename[name]; ok {
			tag = renamed
		}
		l.Add(tag, values[name], 0)
	}

	return l
}

// splitPeople splits a BibTeX people list on the "and" keyword.
func splitPeople(v string) []string {
	var out []string
	for _, p := range strings.Split(v, " and ") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitList splits a keyword list on semicolons, falling back to commas.
func splitList(v string) []string {
	sep := ";"
	if !strings.Contains(v, ";") {
		sep = ","
	}
	var out []string
	for _, s := range strings.Split(v, sep) {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// addPages splits a page range into start and end fields.
func addPages(l *fieldlist.List, pages string) {
	pages = strings.TrimSpace(pages)
	if pages == "" {
		return
	}
	sep := "--"
	if !strings.Contains(pages, "--") {
		sep = "-"
	}
	start, end, found := strings.Cut(pages, sep)
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if found && start != "" && end != "" {
		l.Add(fieldlist.TagPageStart, start, 0)
		l.Add(fieldlist.TagPageEnd, end, 0)
		return
	}
	l.Add(fieldlist.TagPageStart, pages, 0)
}

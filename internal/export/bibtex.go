// Package export serializes records to BibTeX text.
package export

import (
	"fmt"
	"strings"

	"github.com/lucabaldesi/referencer/internal/bib"
)

// Options control value rendering.
type Options struct {
	// Braces wraps values in double braces so BibTeX styles keep their
	// capitalization. Author, editor and pages values are exempt: a braced
	// author list parses as one corporate name, and double-braced pages
	// broke some renderers.
	Braces bool

	// UTF8 emits values verbatim. When false, accented characters are
	// rewritten as LaTeX escape sequences and ampersands are escaped.
	UTF8 bool
}

// isPeopleKey marks extras holding people lists, exempt from brace
// protection like the author field itself.
func isPeopleKey(key string) bool {
	return strings.EqualFold(key, "editor") || strings.EqualFold(key, "translator")
}

// ToBibTeX renders one record as a BibTeX entry under the given citation
// key. Extras come first, then the fixed-schema fields in a stable order.
func ToBibTeX(rec *bib.Record, key string, opts Options) string {
	var b strings.Builder

	typ := rec.Type
	if typ == "" {
		typ = bib.DefaultType
	}
	fmt.Fprintf(&b, "@%s{%s,\n", typ, key)

	for _, x := range rec.Extras.All() {
		writeField(&b, x.Key, x.Value, opts, opts.Braces && !isPeopleKey(x.Key))
	}

	writeField(&b, "author", rec.Authors, opts, false)
	writeField(&b, "title", rec.Title, opts, opts.Braces)
	writeField(&b, "journal", rec.Journal, opts, opts.Braces)
	writeField(&b, "volume", rec.Volume, opts, opts.Braces)
	writeField(&b, "number", rec.Number, opts, opts.Braces)
	writeField(&b, "pages", rec.Pages, opts, false)
	writeField(&b, "year", rec.Year, opts, opts.Braces)
	writeField(&b, "doi", rec.DOI, opts, opts.Braces)

	b.WriteString("}\n")
	return b.String()
}

// ToBibTeXList renders multiple records, generating citation keys with
// keyFor, separated by blank lines.
func ToBibTeXList(recs []*bib.Record, keyFor func(i int, rec *bib.Record) string, opts Options) string {
	var entries []string
	for i, rec := range recs {
		entries = append(entries, ToBibTeX(rec, keyFor(i, rec), opts))
	}
	return strings.Join(entries, "\n")
}

func writeField(b *strings.Builder, key, value string, opts Options, brace bool) {
	if value == "" {
		return
	}
	if !opts.UTF8 {
		value = EscapeLatex(value)
	}
	if brace {
		fmt.Fprintf(b, "  %s = {{%s}},\n", key, value)
	} else {
		fmt.Fprintf(b, "  %s = {%s},\n", key, value)
	}
}

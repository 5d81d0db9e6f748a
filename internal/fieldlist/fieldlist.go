// Package fieldlist defines the generic level-tagged representation of a
// bibliographic record that all format readers produce and the mapper
// consumes.
package fieldlist

import "unicode/utf8"

// Common tags emitted by the format readers. Readers may emit tags outside
// this set; the mapper surfaces those as free-form extras.
const (
	TagTitle         = "TITLE"
	TagSubtitle      = "SUBTITLE"
	TagAuthor        = "AUTHOR"
	TagCorpAuthor    = "CORPAUTHOR"
	TagEditor        = "EDITOR"
	TagTranslator    = "TRANSLATOR"
	TagGenre         = "GENRE"
	TagNGenre        = "NGENRE"
	TagIssuance      = "ISSUANCE"
	TagResource      = "RESOURCE"
	TagType          = "TYPE"
	TagVolume        = "VOLUME"
	TagNumber        = "NUMBER"
	TagIssue         = "ISSUE"
	TagYear          = "YEAR"
	TagPartYear      = "PARTYEAR"
	TagPageStart     = "PAGESTART"
	TagPageEnd       = "PAGEEND"
	TagArticleNumber = "ARTICLENUMBER"
	TagDOI           = "DOI"
	TagKeyword       = "KEYWORD"
	TagNotes         = "NOTES"
)

// AnyLevel matches fields at every containment level.
const AnyLevel = -1

// Field is one (tag, value, level) triple. Level 0 is the record itself,
// level 1 its immediate container (the journal holding an article, the book
// holding a chapter), higher levels the containers of containers.
type Field struct {
	Tag   string
	Value string
	Level int

	// Consumed is set once the mapper folds the value into a structured
	// attribute. Unconsumed fields become extras so nothing is dropped
	// silently.
	Consumed bool
}

// List is an ordered sequence of fields for one record. Order is
// significant: classification is last-write-wins and people joining is
// first-to-last, so readers must append in encounter order.
type List struct {
	Fields []*Field

	// Dropped counts fields rejected at Add time (invalid encoding).
	Dropped int
}

// New returns an empty field list.
func New() *List {
	return &List{}
}

// Add appends a field, rejecting values that are not valid UTF-8.
// Returns false when the field was dropped.
func (l *List) Add(tag, value string, level int) bool {
	if !utf8.ValidString(tag) || !utf8.ValidString(value) {
		l.Dropped++
		return false
	}
	l.Fields = append(l.Fields, &Field{Tag: tag, Value: value, Level: level})
	return true
}

// Len returns the number of committed fields.
func (l *List) Len() int {
	return len(l.Fields)
}

// Find returns the first field matching tag at the given level, or nil.
// Pass AnyLevel to match regardless of level.
func (l *List) Find(tag string, level int) *Field {
	for _, f := range l.Fields {
		if f.Tag == tag && (level == AnyLevel || f.Level == level) {
			return f
		}
	}
	return nil
}

// Consume finds the first matching field, marks it consumed and returns its
// value. Returns "" when no field matches.
func (l *List) Consume(tag string, level int) string {
	f := l.Find(tag, level)
	if f == nil {
		return ""
	}
	f.Consumed = true
	return f.Value
}

// HasDeepFields reports whether any field sits above level 0. The
// classifier uses this for its final fallback.
func (l *List) HasDeepFields() bool {
	for _, f := range l.Fields {
		if f.Level > 0 {
			return true
		}
	}
	return false
}

// Unconsumed returns the fields not yet folded into a structured record, in
// encounter order.
func (l *List) Unconsumed() []*Field {
	var out []*Field
	for _, f := range l.Fields {
		if !f.Consumed {
			out = append(out, f)
		}
	}
	return out
}

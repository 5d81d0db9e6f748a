// Package bib defines the structured bibliographic record produced by the
// mapper and persisted in the document library.
package bib

import "strings"

// DefaultType is the document type assumed when a record was never
// classified.
const DefaultType = "article"

// Record is the fixed-schema bibliographic record. Empty string means
// "unknown", never "explicitly blank". Fields the schema has no slot for
// live in Extras.
type Record struct {
	Type    string // document type, one of doctype's known values
	DOI     string
	Title   string
	Authors string // display form, "Last, F. and Last2, G."
	Journal string
	Volume  string
	Number  string // issue number
	Pages   string
	Year    string

	Extras ExtraList
}

// New returns a record with the default document type.
func New() *Record {
	return &Record{Type: DefaultType}
}

// Extra is one free-form key/value pair.
type Extra struct {
	Key   string
	Value string
}

// ExtraList is an ordered set of extras with case-insensitive keys.
// Insertion order is preserved so exports are stable.
type ExtraList struct {
	entries []Extra
}

// Get returns the value for key, comparing keys case-insensitively.
func (e *ExtraList) Get(key string) string {
	for _, x := range e.entries {
		if strings.EqualFold(x.Key, key) {
			return x.Value
		}
	}
	return ""
}

// Set stores value under key, replacing an existing entry with a
// case-insensitively equal key.
func (e *ExtraList) Set(key, value string) {
	for i, x := range e.entries {
		if strings.EqualFold(x.Key, key) {
			e.entries[i].Value = value
			return
		}
	}
	e.entries = append(e.entries, Extra{Key: key, Value: value})
}

// SetIfEmpty stores value under key only when the key is absent or holds an
// empty value.
func (e *ExtraList) SetIfEmpty(key, value string) {
	for i, x := range e.entries {
		if strings.EqualFold(x.Key, key) {
			if x.Value == "" {
				e.entries[i].Value = value
			}
			return
		}
	}
	e.entries = append(e.entries, Extra{Key: key, Value: value})
}

// Append joins value onto an existing entry with "; ", or creates the
// entry. Used for repeatable tags such as keywords.
func (e *ExtraList) Append(key, value string) {
	for i, x := range e.entries {
		if strings.EqualFold(x.Key, key) {
			if x.Value == "" {
				e.entries[i].Value = value
			} else {
				e.entries[i].Value = x.Value + "; " + value
			}
			return
		}
	}
	e.entries = append(e.entries, Extra{Key: key, Value: value})
}

// All returns the entries in insertion order.
func (e *ExtraList) All() []Extra {
	return e.entries
}

// Len returns the number of entries.
func (e *ExtraList) Len() int {
	return len(e.entries)
}

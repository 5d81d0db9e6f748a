// Package library models the on-disk document library: documents with
// their records and tags, persisted in the legacy XML schema.
package library

import (
	"fmt"

	"github.com/lucabaldesi/referencer/internal/bib"
)

// ManageTarget is the optional BibTeX file the library keeps in sync,
// together with the rendering options used when writing it.
type ManageTarget struct {
	Path   string
	Braces bool
	UTF8   bool
}

// Folder is a directory whose files belong to the library.
type Folder struct {
	Path    string
	Monitor bool
}

// Tag is a user-defined label. UIDs are stable across sessions; documents
// reference tags by UID so renames are free.
type Tag struct {
	UID  int
	Name string
}

// Document is one library entry: a file (possibly remembered under both an
// absolute and a library-relative path), its citation key, its tags and its
// bibliographic record.
type Document struct {
	Filename         string
	RelativeFilename string
	Key              string
	TagUIDs          []int
	Record           *bib.Record
}

// Library is the full persisted state.
type Library struct {
	Target  ManageTarget
	Folders []Folder
	Tags    []Tag
	Docs    []*Document
}

// New returns an empty library.
func New() *Library {
	return &Library{}
}

// DocByKey returns the document with the given citation key, or nil.
func (l *Library) DocByKey(key string) *Document {
	for _, d := range l.Docs {
		if d.Key == key {
			return d
		}
	}
	return nil
}

// TagName resolves a tag UID to its name. Unknown UIDs resolve to "".
func (l *Library) TagName(uid int) string {
	for _, t := range l.Tags {
		if t.UID == uid {
			return t.Name
		}
	}
	return ""
}

// TagNames returns the document's tag names in tag-list order, skipping
// UIDs that no longer resolve.
func (l *Library) TagNames(d *Document) []string {
	var names []string
	for _, uid := range d.TagUIDs {
		if name := l.TagName(uid); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// EnsureTag returns the tag with the given name, creating it with the next
// free UID when absent.
func (l *Library) EnsureTag(name string) Tag {
	for _, t := range l.Tags {
		if t.Name == name {
			return t
		}
	}
	uid := 0
	for _, t := range l.Tags {
		if t.UID >= uid {
			uid = t.UID + 1
		}
	}
	t := Tag{UID: uid, Name: name}
	l.Tags = append(l.Tags, t)
	return t
}

// AddDoc appends a document, rejecting duplicate citation keys.
func (l *Library) AddDoc(d *Document) error {
	if d.Key != "" && l.DocByKey(d.Key) != nil {
		return fmt.Errorf("duplicate citation key %q", d.Key)
	}
	l.Docs = append(l.Docs, d)
	return nil
}

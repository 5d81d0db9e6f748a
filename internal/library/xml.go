package library

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/lucabaldesi/referencer/internal/bib"
)

// The XML schema below is the legacy library file layout. Element and
// attribute names must not change: existing library files are read and
// written with this exact shape.

type xmlLibrary struct {
	XMLName xml.Name    `xml:"library"`
	Target  *xmlTarget  `xml:"manage_target"`
	Folders []xmlFolder `xml:"library_folder"`
	TagList xmlTagList  `xml:"taglist"`
	DocList xmlDocList  `xml:"doclist"`
}

type xmlTarget struct {
	Braces string `xml:"braces,attr"`
	UTF8   string `xml:"utf8,attr"`
	Path   string `xml:",chardata"`
}

type xmlFolder struct {
	Monitor string `xml:"monitor,attr"`
	Path    string `xml:",chardata"`
}

type xmlTagList struct {
	Tags []xmlTag `xml:"tag"`
}

type xmlTag struct {
	UID  int    `xml:"uid"`
	Name string `xml:"name"`
}

type xmlDocList struct {
	Docs []xmlDoc `xml:"doc"`
}

type xmlDoc struct {
	Filename         string     `xml:"filename,omitempty"`
	RelativeFilename string     `xml:"relative_filename,omitempty"`
	Key              string     `xml:"key,omitempty"`
	Tagged           []int      `xml:"tagged"`
	BibType          string     `xml:"bib_type"`
	BibDOI           string     `xml:"bib_doi,omitempty"`
	BibTitle         string     `xml:"bib_title,omitempty"`
	BibAuthors       string     `xml:"bib_authors,omitempty"`
	BibJournal       string     `xml:"bib_journal,omitempty"`
	BibVolume        string     `xml:"bib_volume,omitempty"`
	BibNumber        string     `xml:"bib_number,omitempty"`
	BibPages         string     `xml:"bib_pages,omitempty"`
	BibYear          string     `xml:"bib_year,omitempty"`
	Extras           []xmlExtra `xml:"bib_extra"`
}

type xmlExtra struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

func xmlBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// Write serializes the library to w in the legacy XML schema.
func Write(w io.Writer, lib *Library) error {
	x := xmlLibrary{}
	if lib.Target.Path != "" {
		x.Target = &xmlTarget{
			Braces: xmlBool(lib.Target.Braces),
			UTF8:   xmlBool(lib.Target.UTF8),
			Path:   lib.Target.Path,
		}
	}
	for _, f := range lib.Folders {
		x.Folders = append(x.Folders, xmlFolder{
			Monitor: xmlBool(f.Monitor),
			Path:    f.Path,
		})
	}
	for _, t := range lib.Tags {
		x.TagList.Tags = append(x.TagList.Tags, xmlTag{UID: t.UID, Name: t.Name})
	}
	for _, d := range lib.Docs {
		x.DocList.Docs = append(x.DocList.Docs, docToXML(d))
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(x); err != nil {
		return fmt.Errorf("encoding library: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func docToXML(d *Document) xmlDoc {
	rec := d.Record
	if rec == nil {
		rec = bib.New()
	}
	x := xmlDoc{
		Filename:         d.Filename,
		RelativeFilename: d.RelativeFilename,
		Key:              d.Key,
		Tagged:           d.TagUIDs,
		BibType:          rec.Type,
		BibDOI:           rec.DOI,
		BibTitle:         rec.Title,
		BibAuthors:       rec.Authors,
		BibJournal:       rec.Journal,
		BibVolume:        rec.Volume,
		BibNumber:        rec.Number,
		BibPages:         rec.Pages,
		BibYear:          rec.Year,
	}
	for _, e := range rec.Extras.All() {
		x.Extras = append(x.Extras, xmlExtra{Key: e.Key, Value: e.Value})
	}
	return x
}

// Read parses a library file in the legacy XML schema.
func Read(r io.Reader) (*Library, error) {
	var x xmlLibrary
	if err := xml.NewDecoder(r).Decode(&x); err != nil {
		return nil, fmt.Errorf("decoding library: %w", err)
	}

	lib := New()
	if x.Target != nil {
		lib.Target = ManageTarget{
			Path:   x.Target.Path,
			Braces: x.Target.Braces == "true",
			UTF8:   x.Target.UTF8 == "true",
		}
	}
	for _, f := range x.Folders {
		lib.Folders = append(lib.Folders, Folder{
			Path:    f.Path,
			Monitor: f.Monitor == "true",
		})
	}
	for _, t := range x.TagList.Tags {
		lib.Tags = append(lib.Tags, Tag{UID: t.UID, Name: t.Name})
	}
	for _, d := range x.DocList.Docs {
		lib.Docs = append(lib.Docs, docFromXML(d))
	}
	return lib, nil
}

func docFromXML(x xmlDoc) *Document {
	rec := bib.New()
	if x.BibType != "" {
		rec.Type = x.BibType
	}
	rec.DOI = x.BibDOI
	rec.Title = x.BibTitle
	rec.Authors = x.BibAuthors
	rec.Journal = x.BibJournal
	rec.Volume = x.BibVolume
	rec.Number = x.BibNumber
	rec.Pages = x.BibPages
	rec.Year = x.BibYear
	for _, e := range x.Extras {
		rec.Extras.Set(e.Key, e.Value)
	}

	return &Document{
		Filename:         x.Filename,
		RelativeFilename: x.RelativeFilename,
		Key:              x.Key,
		TagUIDs:          x.Tagged,
		Record:           rec,
	}
}

// Load reads a library from a file path.
func Load(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening library: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Save writes the library to a file path, replacing any existing file.
func Save(path string, lib *Library) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating library file: %w", err)
	}
	if err := Write(f, lib); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

package format

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/lucabaldesi/referencer/internal/fieldlist"
	"github.com/lucabaldesi/referencer/internal/person"
)

// risTagLine matches "XX  - value" tag lines.
var risTagLine = regexp.MustCompile(`^([A-Z][A-Z0-9])  - ?(.*)$`)

// risGenres maps RIS reference types onto genre fields.
var risGenres = map[string]struct {
	genre string
	level int
}{
	"JOUR":   {"academic journal", 1},
	"EJOU":   {"academic journal", 1},
	"MGZN":   {"periodical", 1},
	"NEWS":   {"periodical", 1},
	"BOOK":   {"book", 0},
	"EBOO":   {"book", 0},
	"CHAP":   {"book", 1},
	"ECHA":   {"book", 1},
	"CONF":   {"conference publication", 1},
	"CPAPER": {"conference publication", 1},
	"THES":   {"thesis", 0},
	"RPRT":   {"report", 0},
	"UNPB":   {"unpublished", 0},
	"GEN":    {"misc", 0},
}

// parseRIS reads tagged RIS records. A record opens at "TY  -" and closes
// at "ER  -"; lines that carry no tag continue the previous value.
func parseRIS(r io.Reader) ([]*fieldlist.List, error) {
	var (
		lists   []*fieldlist.List
		current *fieldlist.List
		lastTag string
		lastVal string
	)

	flushField := func() {
		if current == nil || lastTag == "" {
			return
		}
		addRISField(current, lastTag, strings.TrimSpace(lastVal))
		lastTag, lastVal = "", ""
	}
	flushRecord := func() {
		flushField()
		if current != nil && current.Len() > 0 {
			lists = append(lists, current)
		}
		current = nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		m := risTagLine.FindStringSubmatch(line)
		if m == nil {
			// Continuation of the previous value.
			if lastTag != "" {
				lastVal += " " + strings.TrimSpace(line)
			}
			continue
		}
		tag, value := m[1], m[2]

		switch tag {
		case "TY":
			flushRecord()
			current = fieldlist.New()
			g, ok := risGenres[strings.TrimSpace(value)]
			if !ok {
				g.genre, g.level = "misc", 0
			}
			current.Add(fieldlist.TagGenre, g.genre, g.level)
		case "ER":
			flushRecord()
		default:
			flushField()
			if current != nil {
				lastTag, lastVal = tag, value
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flushRecord()

	if len(lists) == 0 {
		return nil, ErrMalformedInput
	}
	return lists, nil
}

func addRISField(l *fieldlist.List, tag, value string) {
	if value == "" {
		return
	}

	switch tag {
	case "AU", "A1":
		l.Add(fieldlist.TagAuthor, person.ToWire(value), 0)
	case "A2", "ED":
		l.Add(fieldlist.TagEditor, person.ToWire(value), 1)
	case "A3":
		l.Add(fieldlist.TagEditor, person.ToWire(value), 2)
	case "TI", "T1":
		l.Add(fieldlist.TagTitle, value, 0)
	case "T2", "JO", "JF", "JA", "BT":
		l.Add(fieldlist.TagTitle, value, 1)
	case "T3":
		l.Add(fieldlist.TagTitle, value, 2)
	case "VL":
		l.Add(fieldlist.TagVolume, value, 1)
	case "IS":
		l.Add(fieldlist.TagIssue, value, 1)
	case "SP":
		l.Add(fieldlist.TagPageStart, value, 1)
	case "EP":
		l.Add(fieldlist.TagPageEnd, value, 1)
	case "PY", "Y1":
		if y := leadingYear(value); y != "" {
			l.Add(fieldlist.TagYear, y, 1)
		}
	case "DO":
		l.Add(fieldlist.TagDOI, value, 0)
	case "KW":
		l.Add(fieldlist.TagKeyword, value, 0)
	case "AB", "N2":
		l.Add("ABSTRACT", value, 0)
	case "N1":
		l.Add(fieldlist.TagNotes, value, 0)
	case "PB":
		l.Add("PUBLISHER", value, 1)
	case "SN":
		l.Add("ISSN", value, 1)
	case "UR":
		l.Add("URL", value, 0)
	default:
		l.Add(tag, value, 0)
	}
}

// leadingYear extracts the leading 4-digit year from RIS date values such
// as "2020/05/01/".
func leadingYear(v string) string {
	v = strings.TrimSpace(v)
	if len(v) < 4 {
		return ""
	}
	y := v[:4]
	for _, c := range y {
		if c < '0' || c > '9' {
			return ""
		}
	}
	return y
}

package format

import (
	"bufio"
	"io"
	"strings"

	"github.com/lucabaldesi/referencer/internal/fieldlist"
	"github.com/lucabaldesi/referencer/internal/person"
)

// isiGenres maps the PT (publication type) line onto genre fields.
var isiGenres = map[string]struct {
	genre string
	level int
}{
	"J": {"academic journal", 1},
	"B": {"book", 0},
	"S": {"conference publication", 1},
	"C": {"conference publication", 1},
	"P": {"misc", 0},
}

// parseISI reads ISI / Web of Science export files: two-letter tags in the
// first columns, values from column four, continuation lines indented with
// three spaces, records closed by "ER".
func parseISI(r io.Reader) ([]*fieldlist.List, error) {
	var (
		lists   []*fieldlist.List
		current *fieldlist.List
		lastTag string
		values  []string
	)

	flushField := func() {
		if current == nil || lastTag == "" {
			return
		}
		addISIField(current, lastTag, values)
		lastTag, values = "", nil
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
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "   ") {
			// Continuation: repeated values (one author per line) for
			// people tags, wrapped text otherwise.
			if lastTag != "" {
				values = append(values, strings.TrimSpace(line))
			}
			continue
		}

		if len(line) < 2 {
			continue
		}
		tag := line[:2]
		value := ""
		if len(line) > 3 {
			value = line[3:]
		}

		switch tag {
		case "FN", "VR":
			// File header.
		case "PT":
			flushRecord()
			current = fieldlist.New()
			g, ok := isiGenres[strings.TrimSpace(value)]
			if !ok {
				g.genre, g.level = "misc", 0
			}
			current.Add(fieldlist.TagGenre, g.genre, g.level)
		case "ER":
			flushRecord()
		case "EF":
			flushRecord()
		default:
			flushField()
			if current != nil {
				lastTag = tag
				values = []string{strings.TrimSpace(value)}
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

func addISIField(l *fieldlist.List, tag string, values []string) {
	joined := strings.TrimSpace(strings.Join(values, " "))
	if joined == "" {
		return
	}

	switch tag {
	case "AU":
		for _, name := range values {
			if name != "" {
				l.Add(fieldlist.TagAuthor, person.ToWire(name), 0)
			}
		}
	case "AF":
		// Full-name duplicates of AU; the abbreviated forms are kept.
	case "TI":
		l.Add(fieldlist.TagTitle, joined, 0)
	case "SO":
		l.Add(fieldlist.TagTitle, joined, 1)
	case "SE":
		l.Add(fieldlist.TagTitle, joined, 2)
	case "VL":
		l.Add(fieldlist.TagVolume, joined, 1)
	case "IS":
		l.Add(fieldlist.TagIssue, joined, 1)
	case "BP":
		l.Add(fieldlist.TagPageStart, joined, 1)
	case "EP":
		l.Add(fieldlist.TagPageEnd, joined, 1)
	case "AR":
		l.Add(fieldlist.TagArticleNumber, joined, 1)
	case "PY":
		if y := leadingYear(joined); y != "" {
			l.Add(fieldlist.TagYear, y, 1)
		}
	case "DI":
		l.Add(fieldlist.TagDOI, joined, 0)
	case "DE", "ID":
		for _, kw := range splitList(joined) {
			l.Add(fieldlist.TagKeyword, kw, 0)
		}
	case "AB":
		l.Add("ABSTRACT", joined, 0)
	case "PU":
		l.Add("PUBLISHER", joined, 1)
	default:
		l.Add(tag, joined, 0)
	}
}

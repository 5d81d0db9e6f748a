// Package person converts personal names between the pipe-delimited wire
// format used inside field lists and the display form stored on records.
//
// Wire format: name components separated by '|', family name first
// ("Smith|John|Q"). Multiple people are separate AUTHOR/EDITOR fields, not
// one wire string. The display form is lossy: single-letter components
// render as initials, and no decode back to components exists.
package person

import (
	"strings"

	"github.com/lucabaldesi/referencer/internal/fieldlist"
)

// Decode renders one wire-format name as a display string. The first
// segment is the family name and gets a trailing comma; later segments are
// space-joined, with single-character segments rendered as initials
// ("Smith|John|Q" -> "Smith, John Q.").
func Decode(wire string) string {
	segs := strings.Split(wire, "|")

	var b strings.Builder
	b.WriteString(segs[0])

	wroteComma := false
	for _, s := range segs[1:] {
		if s == "" {
			continue
		}
		if !wroteComma {
			b.WriteString(",")
			wroteComma = true
		}
		b.WriteString(" ")
		if len(s) == 1 {
			b.WriteString(s)
			b.WriteString(".")
		} else {
			b.WriteString(s)
		}
	}

	return b.String()
}

// ToWire converts a human-entered name to wire format. "Smith, John Q"
// keeps the part before the comma as family name; "John Q Smith" takes the
// final word as family name. Used by the format readers.
func ToWire(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	if family, rest, ok := strings.Cut(name, ","); ok {
		segs := append([]string{strings.TrimSpace(family)}, strings.Fields(rest)...)
		return strings.Join(segs, "|")
	}

	parts := strings.Fields(name)
	if len(parts) == 1 {
		return parts[0]
	}
	segs := append([]string{parts[len(parts)-1]}, parts[:len(parts)-1]...)
	return strings.Join(segs, "|")
}

// Join collects people from the field list into one display string joined
// with " and ". Fields tagged tag are decoded as person names; fields
// tagged corpTag are corporate names and pass through verbatim. Matched
// fields are marked consumed. level filters to an exact level;
// fieldlist.AnyLevel collects regardless of level.
func Join(fields *fieldlist.List, tag, corpTag string, level int) string {
	var people []string

	for _, f := range fields.Fields {
		if level != fieldlist.AnyLevel && f.Level != level {
			continue
		}
		switch {
		case f.Tag == tag:
			people = append(people, Decode(f.Value))
			f.Consumed = true
		case corpTag != "" && f.Tag == corpTag:
			people = append(people, f.Value)
			f.Consumed = true
		}
	}

	return strings.Join(people, " and ")
}

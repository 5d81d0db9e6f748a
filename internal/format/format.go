// Package format parses external bibliography formats into field lists.
//
// Each reader consumes one syntax (BibTeX, RIS, EndNote XML, MODS, ISI) and
// produces one field list per record, order preserved. Readers are
// blocking, pull-style consumers of an io.Reader; ParseBytes adapts pushed
// in-memory payloads onto that API through the text bridge.
package format

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/lucabaldesi/referencer/internal/bridge"
	"github.com/lucabaldesi/referencer/internal/fieldlist"
)

// Format identifies an external bibliography syntax.
type Format int

// Supported formats.
const (
	BibTeX Format = iota
	RIS
	EndNote
	MODS
	ISI
)

// ErrMalformedInput is returned when the input contains no recognizable
// record boundary for the requested format.
var ErrMalformedInput = errors.New("no recognizable record in input")

var formatNames = map[Format]string{
	BibTeX:  "bibtex",
	RIS:     "ris",
	EndNote: "endnote",
	MODS:    "mods",
	ISI:     "isi",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// FromName resolves a format name as used on the command line.
func FromName(name string) (Format, error) {
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return BibTeX, fmt.Errorf("unknown format %q", name)
}

// Parse reads records of the given format from r until EOF. It returns
// ErrMalformedInput when no record was found.
func Parse(r io.Reader, f Format) ([]*fieldlist.List, error) {
	switch f {
	case BibTeX:
		return parseBibTeX(r)
	case RIS:
		return parseRIS(r)
	case EndNote:
		return parseEndNote(r)
	case MODS:
		return parseMODS(r)
	case ISI:
		return parseISI(r)
	default:
		return nil, fmt.Errorf("unknown format %v", f)
	}
}

// ParseBytes feeds an in-memory payload to the blocking Parse through the
// text bridge, so push-style sources (clipboard, network fetches) share one
// code path with file readers.
func ParseBytes(ctx context.Context, data []byte, f Format) ([]*fieldlist.List, error) {
	var lists []*fieldlist.List
	err := bridge.Feed(ctx, data, func(r io.Reader) error {
		var perr error
		lists, perr = Parse(r, f)
		return perr
	})
	if err != nil {
		return nil, err
	}
	return lists, nil
}

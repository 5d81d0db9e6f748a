package format

import (
	"bytes"
	"regexp"
)

var bibtexMarker = regexp.MustCompile(`@[A-Za-z]+\s*\{`)

// Guess sniffs the format from the first bytes of the input. It is a
// best-effort heuristic: ambiguous input defaults to BibTeX and callers may
// always override with an explicit format.
func Guess(data []byte) Format {
	head := bytes.TrimSpace(data)
	if len(head) > 4096 {
		head = head[:4096]
	}

	if len(head) > 0 && head[0] == '<' {
		if bytes.Contains(head, []byte("<mods")) ||
			bytes.Contains(head, []byte("loc.gov/mods")) {
			return MODS
		}
		if bytes.Contains(head, []byte("<RECORD")) ||
			bytes.Contains(head, []byte("<record")) ||
			bytes.Contains(head, []byte("ref-type")) ||
			bytes.Contains(head, []byte("<xml")) {
			return EndNote
		}
		return BibTeX
	}

	if bytes.Contains(head, []byte("TY  -")) {
		return RIS
	}
	if bytes.HasPrefix(head, []byte("FN ")) ||
		(bytes.HasPrefix(head, []byte("PT ")) && bytes.Contains(head, []byte("\nER"))) {
		return ISI
	}
	if bibtexMarker.Match(head) {
		return BibTeX
	}

	return BibTeX
}

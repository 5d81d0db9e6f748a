// Package guess extracts identifiers from unstructured text, typically a
// PDF text dump. All of it is heuristic: misses and false positives are
// acceptable, the goal is pre-filling a form a human reviews.
package guess

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	yearPattern = regexp.MustCompile(`\d{4}`)

	// A DOI only counts when the text announces it; bare 10.x/y tokens in
	// reference lists produce too many false positives.
	doiPattern = regexp.MustCompile(`(?i)(?:doi:|digital object identifier[:\s]*)\s*\(?\s*(10\.\d{4,9}/[^\s<>"{}|\\^` + "`" + `]+)`)

	arxivPattern = regexp.MustCompile(`(?i)arxiv:\s*([a-z0-9.\-/]+)`)
)

// Year scans text for a plausible publication year: a 4-digit run bounded
// by non-word characters, with 1990 < year <= current year. The maximum
// qualifying match wins, since citation years in a references section are
// usually earlier than the paper's own year.
func Year(text string) (int, bool) {
	maxYear := time.Now().Year()
	best := 0

	for _, loc := range yearPattern.FindAllStringIndex(text, -1) {
		if loc[0] > 0 && isWordByte(text[loc[0]-1]) {
			continue
		}
		if loc[1] < len(text) && isWordByte(text[loc[1]]) {
			continue
		}
		y, err := strconv.Atoi(text[loc[0]:loc[1]])
		if err != nil {
			continue
		}
		if y > 1990 && y <= maxYear && y > best {
			best = y
		}
	}

	return best, best != 0
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}

// DOI returns the first DOI announced by a "doi:" or "digital object
// identifier" marker, with trailing commas and unbalanced closing
// parentheses stripped.
func DOI(text string) (string, bool) {
	m := doiPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	doi := m[1]
	doi = strings.TrimSuffix(doi, ",")
	if strings.HasSuffix(doi, ")") && strings.Count(doi, ")") > strings.Count(doi, "(") {
		doi = strings.TrimSuffix(doi, ")")
	}
	doi = strings.TrimRight(doi, ".;")

	if doi == "" {
		return "", false
	}
	return doi, true
}

// ArXiv returns the first arXiv identifier following an "arXiv:" marker.
func ArXiv(text string) (string, bool) {
	m := arxivPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	id := strings.TrimRight(m[1], ".,;)")
	if id == "" {
		return "", false
	}
	return id, true
}

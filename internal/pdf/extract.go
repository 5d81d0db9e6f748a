// Package pdf extracts text and bibliographic identifiers from PDF files,
// and opens documents in an external viewer.
package pdf

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/lucabaldesi/referencer/internal/guess"
)

// DefaultScanPages bounds the identifier scan; a DOI or arXiv marker is
// nearly always on the first page.
const DefaultScanPages = 3

// Identifiers holds what the heuristic scan found. Empty fields mean the
// text carried no recognizable marker; that is not an error.
type Identifiers struct {
	DOI   string
	ArXiv string
	Year  string
}

// Empty reports whether nothing was found.
func (ids Identifiers) Empty() bool {
	return ids == Identifiers{}
}

// ExtractText extracts text from the first maxPages pages of a PDF file.
// Pass maxPages <= 0 for all pages. Pages that fail to render are skipped.
func ExtractText(filePath string, maxPages int) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", filePath, err)
	}
	defer f.Close()

	return pagesText(r, maxPages), nil
}

// ExtractTextReader extracts text from an in-memory or seekable PDF.
func ExtractTextReader(r io.ReaderAt, size int64, maxPages int) (string, error) {
	pdfReader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("reading pdf: %w", err)
	}
	return pagesText(pdfReader, maxPages), nil
}

func pagesText(r *pdf.Reader, maxPages int) string {
	if maxPages <= 0 || maxPages > r.NumPage() {
		maxPages = r.NumPage()
	}

	var b strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String()
}

// Scan runs the identifier heuristics over extracted text.
func Scan(text string) Identifiers {
	var ids Identifiers
	if doi, ok := guess.DOI(text); ok {
		ids.DOI = doi
	}
	if id, ok := guess.ArXiv(text); ok {
		ids.ArXiv = id
	}
	if y, ok := guess.Year(text); ok {
		ids.Year = strconv.Itoa(y)
	}
	return ids
}

// ScanFile extracts text from the file's leading pages and scans it for
// identifiers.
func ScanFile(filePath string, maxPages int) (Identifiers, error) {
	text, err := ExtractText(filePath, maxPages)
	if err != nil {
		return Identifiers{}, err
	}
	return Scan(text), nil
}

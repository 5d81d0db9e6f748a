package resolver

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/carlmjohnson/requests"
	"golang.org/x/time/rate"

	"github.com/lucabaldesi/referencer/internal/bib"
	"github.com/lucabaldesi/referencer/internal/doctype"
	"github.com/lucabaldesi/referencer/internal/fieldlist"
	"github.com/lucabaldesi/referencer/internal/mapper"
	"github.com/lucabaldesi/referencer/internal/person"
)

// ArXivBaseURL is the arXiv Atom API endpoint.
const ArXivBaseURL = "http://export.arxiv.org/api/query"

// ArXiv resolves arXiv identifiers against the arXiv Atom API.
type ArXiv struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	offline bool
}

// NewArXiv builds an arXiv resolver from the configuration.
func NewArXiv(cfg Config) *ArXiv {
	return &ArXiv{
		baseURL: ArXivBaseURL,
		client:  cfg.HTTPClient,
		// arXiv asks for no more than one request every three seconds.
		limiter: rate.NewLimiter(rate.Every(3*time.Second), 1),
		offline: cfg.Offline,
	}
}

// Kind names the source.
func (a *ArXiv) Kind() Kind { return KindArXiv }

// CanResolve reports whether the record carries an arXiv identifier.
func (a *ArXiv) CanResolve(rec *bib.Record) bool {
	return ArXivID(rec) != ""
}

// Resolve fetches the identifier's Atom entry and maps it into a fresh
// record.
func (a *ArXiv) Resolve(ctx context.Context, rec *bib.Record) (*bib.Record, error) {
	if a.offline {
		return nil, ErrOffline
	}
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	id := ArXivID(rec)

	var buf bytes.Buffer
	rb := requests.
		URL(a.baseURL).
		Param("id_list", id).
		Param("max_results", "1").
		ToBytesBuffer(&buf)
	if a.client != nil {
		rb = rb.Client(a.client)
	}
	if err := rb.Fetch(ctx); err != nil {
		return nil, fmt.Errorf("querying arxiv for %s: %w", id, err)
	}

	return recordFromArXivFeed(id, buf.Bytes())
}

type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID         string `xml:"id"`
	Title      string `xml:"title"`
	Summary    string `xml:"summary"`
	Published  string `xml:"published"`
	DOI        string `xml:"doi"`
	JournalRef string `xml:"journal_ref"`
	Authors    []struct {
		Name string `xml:"name"`
	} `xml:"author"`
}

// recordFromArXivFeed translates an Atom query response into field-list
// form and maps it. Unmatched identifiers come back as a feed with no
// usable entry.
func recordFromArXivFeed(id string, data []byte) (*bib.Record, error) {
	var feed arxivFeed
	if err := xml.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("parsing arxiv feed: %w", err)
	}
	if len(feed.Entries) == 0 {
		return nil, ErrNoMatch
	}
	e := feed.Entries[0]
	if e.ID == "" || strings.Contains(e.ID, "/api/errors") {
		return nil, ErrNoMatch
	}

	l := fieldlist.New()
	// Preprints classify as unpublished; a journal reference, when one
	// exists, is free text and survives as an extra.
	l.Add(fieldlist.TagGenre, "unpublished", 0)

	if t := collapseSpace(e.Title); t != "" {
		l.Add(fieldlist.TagTitle, t, 0)
	}
	for _, a := range e.Authors {
		if name := collapseSpace(a.Name); name != "" {
			l.Add(fieldlist.TagAuthor, person.ToWire(name), 0)
		}
	}
	if y := yearPrefix(e.Published); y != "" {
		l.Add(fieldlist.TagYear, y, 0)
	}
	if e.DOI != "" {
		l.Add(fieldlist.TagDOI, e.DOI, 0)
	}
	if ref := collapseSpace(e.JournalRef); ref != "" {
		l.Add("JOURNALREF", ref, 0)
	}
	if abs := collapseSpace(e.Summary); abs != "" {
		l.Add("ABSTRACT", abs, 0)
	}
	l.Add("EPRINT", id, 0)
	if e.ID != "" {
		l.Add("URL", e.ID, 0)
	}

	return mapper.Map(l, doctype.Classify(l)), nil
}

// collapseSpace flattens the newline-wrapped text arXiv feeds carry.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// yearPrefix extracts a leading 4-digit year from a timestamp.
func yearPrefix(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 4 {
		return ""
	}
	for _, c := range s[:4] {
		if c < '0' || c > '9' {
			return ""
		}
	}
	return s[:4]
}

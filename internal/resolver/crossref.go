package resolver

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/carlmjohnson/requests"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/lucabaldesi/referencer/internal/bib"
	"github.com/lucabaldesi/referencer/internal/doctype"
	"github.com/lucabaldesi/referencer/internal/fieldlist"
	"github.com/lucabaldesi/referencer/internal/mapper"
)

// CrossrefBaseURL is the Crossref REST API base URL.
const CrossrefBaseURL = "https://api.crossref.org"

// crossrefGenres maps Crossref work types onto genre fields.
var crossrefGenres = map[string]struct {
	genre string
	level int
}{
	"journal-article":     {"academic journal", 1},
	"proceedings-article": {"conference publication", 1},
	"book":                {"book", 0},
	"monograph":           {"book", 0},
	"edited-book":         {"book", 0},
	"book-chapter":        {"book", 1},
	"book-section":        {"book", 1},
	"report":              {"report", 0},
	"dissertation":        {"thesis", 0},
	"posted-content":      {"unpublished", 0},
}

// Crossref resolves DOIs against the Crossref works API.
type Crossref struct {
	baseURL string
	mailto  string
	client  *http.Client
	limiter *rate.Limiter
	offline bool
}

// NewCrossref builds a Crossref resolver from the configuration.
func NewCrossref(cfg Config) *Crossref {
	return &Crossref{
		baseURL: CrossrefBaseURL,
		mailto:  cfg.CrossrefMailto,
		client:  cfg.HTTPClient,
		// Crossref asks polite-pool users to stay under ~50 req/s; stay
		// far below that.
		limiter: rate.NewLimiter(rate.Limit(2), 1),
		offline: cfg.Offline,
	}
}

// Kind names the source.
func (c *Crossref) Kind() Kind { return KindDOI }

// CanResolve reports whether the record carries a DOI.
func (c *Crossref) CanResolve(rec *bib.Record) bool {
	return rec.DOI != ""
}

// Resolve fetches the DOI's metadata and maps it into a fresh record.
func (c *Crossref) Resolve(ctx context.Context, rec *bib.Record) (*bib.Record, error) {
	if c.offline {
		return nil, ErrOffline
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	var buf bytes.Buffer
	rb := requests.
		URL(c.baseURL + "/works/" + url.PathEscape(rec.DOI)).
		ToBytesBuffer(&buf)
	if c.mailto != "" {
		rb = rb.Param("mailto", c.mailto)
	}
	if c.client != nil {
		rb = rb.Client(c.client)
	}
	if err := rb.Fetch(ctx); err != nil {
		if requests.HasStatusErr(err, http.StatusNotFound) {
			return nil, ErrNoMatch
		}
		return nil, fmt.Errorf("querying crossref for %s: %w", rec.DOI, err)
	}

	return recordFromCrossref(buf.Bytes())
}

// recordFromCrossref translates a Crossref works payload into field-list
// form and runs it through the shared classification and mapping pipeline.
func recordFromCrossref(data []byte) (*bib.Record, error) {
	msg := gjson.GetBytes(data, "message")
	if !msg.Exists() {
		return nil, ErrNoMatch
	}

	l := fieldlist.New()

	typ := msg.Get("type").String()
	g, ok := crossrefGenres[typ]
	if !ok {
		g.genre, g.level = "misc", 0
	}
	l.Add(fieldlist.TagGenre, g.genre, g.level)

	if t := msg.Get("title.0").String(); t != "" {
		l.Add(fieldlist.TagTitle, t, 0)
	}
	if st := msg.Get("subtitle.0").String(); st != "" {
		l.Add(fieldlist.TagSubtitle, st, 0)
	}
	if ct := msg.Get("container-title.0").String(); ct != "" {
		l.Add(fieldlist.TagTitle, ct, 1)
	}

	msg.Get("author").ForEach(func(_, a gjson.Result) bool {
		addCrossrefPerson(l, a, fieldlist.TagAuthor, 0)
		return true
	})
	msg.Get("editor").ForEach(func(_, e gjson.Result) bool {
		addCrossrefPerson(l, e, fieldlist.TagEditor, 1)
		return true
	})

	if v := msg.Get("volume").String(); v != "" {
		l.Add(fieldlist.TagVolume, v, 1)
	}
	if v := msg.Get("issue").String(); v != "" {
		l.Add(fieldlist.TagIssue, v, 1)
	}
	if pages := msg.Get("page").String(); pages != "" {
		start, end, found := strings.Cut(pages, "-")
		if found && start != "" && end != "" {
			l.Add(fieldlist.TagPageStart, strings.TrimSpace(start), 1)
			l.Add(fieldlist.TagPageEnd, strings.TrimSpace(end), 1)
		} else {
			l.Add(fieldlist.TagPageStart, pages, 1)
		}
	}
	if y := msg.Get("issued.date-parts.0.0").String(); len(y) == 4 {
		l.Add(fieldlist.TagYear, y, 0)
	}
	if doi := msg.Get("DOI").String(); doi != "" {
		l.Add(fieldlist.TagDOI, doi, 0)
	}
	if pub := msg.Get("publisher").String(); pub != "" {
		l.Add("PUBLISHER", pub, 1)
	}

	if l.Len() <= 1 {
		return nil, ErrNoMatch
	}
	return mapper.Map(l, doctype.Classify(l)), nil
}

// addCrossrefPerson emits one structured Crossref contributor as a
// wire-format name, or a corporate name when only "name" is present.
func addCrossrefPerson(l *fieldlist.List, p gjson.Result, tag string, level int) {
	family := strings.TrimSpace(p.Get("family").String())
	given := strings.TrimSpace(p.Get("given").String())

	if family == "" {
		if name := strings.TrimSpace(p.Get("name").String()); name != "" {
			l.Add(fieldlist.TagCorpAuthor, name, level)
		}
		return
	}

	segs := append([]string{family}, strings.Fields(given)...)
	l.Add(tag, strings.Join(segs, "|"), level)
}

package resolver

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/carlmjohnson/requests"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/lucabaldesi/referencer/internal/bib"
	"github.com/lucabaldesi/referencer/internal/doctype"
	"github.com/lucabaldesi/referencer/internal/fieldlist"
	"github.com/lucabaldesi/referencer/internal/mapper"
)

// PubMedBaseURL is the NCBI esummary endpoint.
const PubMedBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esummary.fcgi"

// PubMed resolves PubMed identifiers against the NCBI esummary API.
type PubMed struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	offline bool
}

// NewPubMed builds a PubMed resolver from the configuration.
func NewPubMed(cfg Config) *PubMed {
	// NCBI allows 3 req/s anonymously, 10 req/s with an API key.
	limit := rate.Limit(3)
	if cfg.PubMedKey != "" {
		limit = rate.Limit(10)
	}
	return &PubMed{
		baseURL: PubMedBaseURL,
		apiKey:  cfg.PubMedKey,
		client:  cfg.HTTPClient,
		limiter: rate.NewLimiter(limit, 1),
		offline: cfg.Offline,
	}
}

// Kind names the source.
func (p *PubMed) Kind() Kind { return KindPubMed }

// CanResolve reports whether the record carries a PubMed identifier.
func (p *PubMed) CanResolve(rec *bib.Record) bool {
	return PubMedID(rec) != ""
}

// Resolve fetches the identifier's summary and maps it into a fresh
// record.
func (p *PubMed) Resolve(ctx context.Context, rec *bib.Record) (*bib.Record, error) {
	if p.offline {
		return nil, ErrOffline
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	pmid := PubMedID(rec)

	var buf bytes.Buffer
	rb := requests.
		URL(p.baseURL).
		Param("db", "pubmed").
		Param("id", pmid).
		Param("retmode", "json").
		ToBytesBuffer(&buf)
	if p.apiKey != "" {
		rb = rb.Param("api_key", p.apiKey)
	}
	if p.client != nil {
		rb = rb.Client(p.client)
	}
	if err := rb.Fetch(ctx); err != nil {
		return nil, fmt.Errorf("querying pubmed for %s: %w", pmid, err)
	}

	return recordFromESummary(pmid, buf.Bytes())
}

// recordFromESummary translates an esummary payload into field-list form
// and maps it.
func recordFromESummary(pmid string, data []byte) (*bib.Record, error) {
	r := gjson.GetBytes(data, "result."+pmid)
	if !r.Exists() || r.Get("error").Exists() {
		return nil, ErrNoMatch
	}

	l := fieldlist.New()
	l.Add(fieldlist.TagGenre, "academic journal", 1)

	if t := strings.TrimSpace(r.Get("title").String()); t != "" {
		l.Add(fieldlist.TagTitle, strings.TrimSuffix(t, "."), 0)
	}
	journal := r.Get("fulljournalname").String()
	if journal == "" {
		journal = r.Get("source").String()
	}
	if journal != "" {
		l.Add(fieldlist.TagTitle, journal, 1)
	}

	r.Get("authors").ForEach(func(_, a gjson.Result) bool {
		if wire := pubmedNameToWire(a.Get("name").String()); wire != "" {
			l.Add(fieldlist.TagAuthor, wire, 0)
		}
		return true
	})

	if v := r.Get("volume").String(); v != "" {
		l.Add(fieldlist.TagVolume, v, 1)
	}
	if v := r.Get("issue").String(); v != "" {
		l.Add(fieldlist.TagIssue, v, 1)
	}
	if pages := r.Get("pages").String(); pages != "" {
		start, end, found := strings.Cut(pages, "-")
		if found && start != "" && end != "" {
			l.Add(fieldlist.TagPageStart, strings.TrimSpace(start), 1)
			l.Add(fieldlist.TagPageEnd, strings.TrimSpace(end), 1)
		} else {
			l.Add(fieldlist.TagPageStart, pages, 1)
		}
	}
	if y := yearPrefix(r.Get("pubdate").String()); y != "" {
		l.Add(fieldlist.TagYear, y, 1)
	}

	r.Get("articleids").ForEach(func(_, id gjson.Result) bool {
		if id.Get("idtype").String() == "doi" {
			if v := id.Get("value").String(); v != "" {
				l.Add(fieldlist.TagDOI, v, 0)
			}
		}
		return true
	})
	l.Add("PMID", pmid, 0)

	if l.Len() <= 2 {
		return nil, ErrNoMatch
	}
	return mapper.Map(l, doctype.Classify(l)), nil
}

// pubmedNameToWire converts PubMed's "Family IN" author form, family name
// first with concatenated initials last, to wire format.
func pubmedNameToWire(name string) string {
	parts := strings.Fields(strings.TrimSpace(name))
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}

	family := strings.Join(parts[:len(parts)-1], " ")
	segs := []string{family}
	for _, initial := range parts[len(parts)-1] {
		segs = append(segs, string(initial))
	}
	return strings.Join(segs, "|")
}

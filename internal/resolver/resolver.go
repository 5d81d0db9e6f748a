// Package resolver fetches bibliographic metadata for a record from the
// identifier it already carries: a DOI via Crossref, an arXiv ID via the
// arXiv Atom API, a PubMed ID via NCBI esummary.
//
// Every source parses its payload into a field list and runs it through
// the shared classification and mapping pipeline, so resolved records obey
// the same rules as imported ones. A resolve either returns a complete
// fresh record or an error; callers merge only after success.
package resolver

import (
	"context"
	"net/http"
	"strings"

	"github.com/lucabaldesi/referencer/internal/bib"
)

// Kind names a metadata source.
type Kind string

// Known sources.
const (
	KindDOI    Kind = "doi"
	KindArXiv  Kind = "arxiv"
	KindPubMed Kind = "pubmed"
)

// Resolver fetches metadata for records carrying the identifier it
// understands.
type Resolver interface {
	// Kind names the source.
	Kind() Kind

	// CanResolve reports whether the record carries this source's
	// identifier.
	CanResolve(rec *bib.Record) bool

	// Resolve fetches a fresh record for the identifier. Returns
	// ErrNoMatch when the source has no metadata for it.
	Resolve(ctx context.Context, rec *bib.Record) (*bib.Record, error)
}

// Config carries per-source credentials and an optional shared HTTP
// client.
type Config struct {
	// CrossrefMailto joins Crossref's polite pool; optional but
	// recommended.
	CrossrefMailto string

	// PubMedKey raises the NCBI rate limit; optional.
	PubMedKey string

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client

	// Offline short-circuits every resolve with ErrOffline.
	Offline bool
}

// All returns every resolver, in lookup priority order.
func All(cfg Config) []Resolver {
	return []Resolver{
		NewCrossref(cfg),
		NewArXiv(cfg),
		NewPubMed(cfg),
	}
}

// For returns the resolvers applicable to the record, in priority order.
// An empty result means the record carries no usable identifier.
func For(rec *bib.Record, cfg Config) []Resolver {
	var out []Resolver
	for _, r := range All(cfg) {
		if r.CanResolve(rec) {
			out = append(out, r)
		}
	}
	return out
}

// ArXivID returns the record's arXiv identifier, or "".
func ArXivID(rec *bib.Record) string {
	if v := rec.Extras.Get("Eprint"); v != "" {
		return strings.TrimPrefix(v, "arXiv:")
	}
	return strings.TrimPrefix(rec.Extras.Get("Arxiv"), "arXiv:")
}

// PubMedID returns the record's PubMed identifier, or "".
func PubMedID(rec *bib.Record) string {
	return rec.Extras.Get("Pmid")
}

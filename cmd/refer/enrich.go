package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/lucabaldesi/referencer/internal/bib"
	"github.com/lucabaldesi/referencer/internal/config"
	"github.com/lucabaldesi/referencer/internal/library"
	"github.com/lucabaldesi/referencer/internal/resolver"
)

var (
	enrichAll     bool
	enrichOffline bool
	enrichJobs    int
)

func init() {
	enrichCmd.Flags().BoolVar(&enrichAll, "all", false, "Enrich every document carrying an identifier")
	enrichCmd.Flags().BoolVar(&enrichOffline, "offline", false, "Skip all network lookups")
	enrichCmd.Flags().IntVar(&enrichJobs, "jobs", 4, "Concurrent lookups")
	rootCmd.AddCommand(enrichCmd)
}

var enrichCmd = &cobra.Command{
	Use:   "enrich [key]...",
	Short: "Fetch metadata for library documents",
	Long: `Fetch metadata for library documents from Crossref, arXiv or PubMed,
depending on which identifier each record carries.

Fetched fields fill gaps in the stored record; existing values are kept
(the document type is the one exception, it always follows the source).
A failed or cancelled lookup leaves the document untouched.

Credentials are read from the config file and from a .env file in the
current directory (CROSSREF_MAILTO, PUBMED_API_KEY).

Examples:
  refer enrich smith2020 doe2021
  refer enrich --all --jobs 8`,
	RunE: runEnrich,
}

// EnrichDetail describes the outcome for one document.
type EnrichDetail struct {
	Key    string `json:"key"`
	Source string `json:"source,omitempty"`
	Status string `json:"status"` // enriched, no_match, no_identifier, error
	Error  string `json:"error,omitempty"`
}

// EnrichResult represents the result of an enrich operation.
type EnrichResult struct {
	Enriched int            `json:"enriched"`
	Failed   int            `json:"failed"`
	Details  []EnrichDetail `json:"details"`
}

func runEnrich(cmd *cobra.Command, args []string) error {
	if !enrichAll && len(args) == 0 {
		exitWithError(ExitError, "pass document keys or --all")
	}

	// .env supplements the config file; a missing file is fine.
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	rcfg := resolver.Config{
		CrossrefMailto: cfg.CrossrefMailto,
		PubMedKey:      cfg.PubMedAPIKey,
		Offline:        cfg.Offline || enrichOffline,
	}
	if rcfg.CrossrefMailto == "" {
		rcfg.CrossrefMailto = os.Getenv("CROSSREF_MAILTO")
	}
	if rcfg.PubMedKey == "" {
		rcfg.PubMedKey = os.Getenv("PUBMED_API_KEY")
	}

	path, lib := mustLoadLibrary()

	docs := selectEnrichDocs(lib, args)

	type outcome struct {
		rec    *bib.Record
		source resolver.Kind
		err    error
	}
	outcomes := make([]outcome, len(docs))

	p := pool.New().WithMaxGoroutines(enrichJobs)
	for i, doc := range docs {
		p.Go(func() {
			logger := log.WithPrefix(doc.Key)
			rs := resolver.For(doc.Record, rcfg)
			if len(rs) == 0 {
				outcomes[i].err = errNoIdentifier
				return
			}
			for _, r := range rs {
				rec, err := r.Resolve(cmd.Context(), doc.Record)
				if err == nil {
					logger.Info("resolved", "source", r.Kind())
					outcomes[i] = outcome{rec: rec, source: r.Kind()}
					return
				}
				logger.Warn("lookup failed", "source", r.Kind(), "err", err)
				outcomes[i].err = err
				if errors.Is(err, context.Canceled) {
					return
				}
			}
		})
	}
	p.Wait()

	// Merging happens here, after the fan-out: only complete records
	// reach the library.
	var enriched, failed int
	details := make([]EnrichDetail, len(docs))
	for i, doc := range docs {
		o := outcomes[i]
		switch {
		case o.rec != nil:
			doc.Record.MergeIn(o.rec)
			details[i] = EnrichDetail{Key: doc.Key, Source: string(o.source), Status: "enriched"}
			enriched++
		case errors.Is(o.err, errNoIdentifier):
			details[i] = EnrichDetail{Key: doc.Key, Status: "no_identifier"}
			failed++
		case errors.Is(o.err, resolver.ErrNoMatch):
			details[i] = EnrichDetail{Key: doc.Key, Status: "no_match"}
			failed++
		default:
			details[i] = EnrichDetail{Key: doc.Key, Status: "error", Error: o.err.Error()}
			failed++
		}
	}

	if enriched > 0 {
		mustSaveLibrary(path, lib)
	}

	if humanOutput {
		fmt.Printf("Enriched %d of %d documents\n", enriched, len(docs))
		for _, d := range details {
			switch d.Status {
			case "enriched":
				fmt.Printf("  %-16s %s\n", d.Key, d.Source)
			case "error":
				fmt.Printf("  %-16s %s: %s\n", d.Key, d.Status, d.Error)
			default:
				fmt.Printf("  %-16s %s\n", d.Key, d.Status)
			}
		}
	} else {
		outputJSON(EnrichResult{Enriched: enriched, Failed: failed, Details: details})
	}

	if enriched == 0 && failed > 0 {
		os.Exit(ExitDataError)
	}
	return nil
}

var errNoIdentifier = errors.New("record carries no DOI, arXiv or PubMed identifier")

// selectEnrichDocs resolves the requested documents: explicit keys, or with
// --all every document carrying a usable identifier. Unknown keys exit.
func selectEnrichDocs(lib *library.Library, keys []string) []*library.Document {
	if len(keys) == 0 {
		var docs []*library.Document
		for _, d := range lib.Docs {
			if len(resolver.For(d.Record, resolver.Config{})) > 0 {
				docs = append(docs, d)
			}
		}
		return docs
	}

	docs := make([]*library.Document, 0, len(keys))
	for _, key := range keys {
		doc := lib.DocByKey(key)
		if doc == nil {
			exitWithError(ExitError, "unknown document key: %s", key)
		}
		docs = append(docs, doc)
	}
	return docs
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lucabaldesi/referencer/internal/library"
)

var (
	searchField string
	searchLimit int
)

func init() {
	searchCmd.Flags().StringVar(&searchField, "field", "", "Restrict to one field (author, title, journal, tag)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Full-text search over the library",
	Long: `Full-text search over the library.

Titles, authors, journals, tags and extra fields are indexed. The index
is rebuilt from the library file on every run; the file stays the source
of truth.

Examples:
  refer search gravity waves
  refer search --field author smith
  refer search --field tag inbox --limit 10`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	_, lib := mustLoadLibrary()
	cache := mustOpenCache(lib)
	defer cache.Close()

	query := strings.Join(args, " ")

	var entries []library.Entry
	var err error
	if searchField != "" {
		entries, err = cache.SearchField(searchField, query, searchLimit)
	} else {
		entries, err = cache.Search(query, searchLimit)
	}
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	if humanOutput {
		if len(entries) == 0 {
			fmt.Println("No matches")
		} else {
			fmt.Printf("%d matches:\n\n", len(entries))
			printDocsHuman(entries, SearchTitleMaxLen)
		}
	} else {
		results := make([]DocResponse, 0, len(entries))
		for _, e := range entries {
			results = append(results, docResponse(e))
		}
		outputJSON(results)
	}
	return nil
}

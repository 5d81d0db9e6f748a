package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lucabaldesi/referencer/internal/doctype"
	"github.com/lucabaldesi/referencer/internal/format"
	"github.com/lucabaldesi/referencer/internal/library"
	"github.com/lucabaldesi/referencer/internal/mapper"
)

var (
	importFormat string
	importTags   []string
)

func init() {
	importCmd.Flags().StringVar(&importFormat, "format", "", "Input format (bibtex, ris, endnote, mods, isi); guessed per file when omitted")
	importCmd.Flags().StringArrayVar(&importTags, "tag", nil, "Tag applied to every imported document (repeatable)")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import bibliography files into the library",
	Long: `Import bibliography files into the library.

Each file is parsed into one or more records; the format is guessed from
the content unless --format forces one. Malformed files are reported and
skipped, the rest of the batch continues.

Examples:
  refer import refs.bib
  refer import --format ris --tag inbox export.ris more.ris`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

// ImportResult represents the result of an import operation.
type ImportResult struct {
	Imported int      `json:"imported"`
	Files    int      `json:"files"`
	Keys     []string `json:"keys"`
	Errors   []string `json:"errors,omitempty"`
}

func runImport(cmd *cobra.Command, args []string) error {
	var forced *format.Format
	if importFormat != "" {
		f, err := format.FromName(importFormat)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		forced = &f
	}

	path, lib := loadOrCreateLibrary()

	var tagUIDs []int
	for _, name := range importTags {
		tagUIDs = append(tagUIDs, lib.EnsureTag(name).UID)
	}

	var keys, errStrs []string
	files := 0

	for _, filename := range args {
		logger := log.WithPrefix(filename)

		data, err := os.ReadFile(filename)
		if err != nil {
			logger.Error("reading file", "err", err)
			errStrs = append(errStrs, fmt.Sprintf("%s: %v", filename, err))
			continue
		}

		f := format.Guess(data)
		if forced != nil {
			f = *forced
		}

		lists, err := format.ParseBytes(cmd.Context(), data, f)
		if err != nil {
			logger.Error("parsing", "format", f.String(), "err", err)
			errStrs = append(errStrs, fmt.Sprintf("%s: parsing as %s: %v", filename, f, err))
			continue
		}

		for _, l := range lists {
			rec := mapper.Map(l, doctype.Classify(l))
			key := uniqueKey(lib, deriveKey(rec))
			doc := &library.Document{
				Key:     key,
				TagUIDs: tagUIDs,
				Record:  rec,
			}
			if err := lib.AddDoc(doc); err != nil {
				errStrs = append(errStrs, fmt.Sprintf("%s: %v", filename, err))
				continue
			}
			keys = append(keys, key)
		}
		logger.Info("imported", "format", f.String(), "records", len(lists))
		files++
	}

	if len(keys) > 0 {
		mustSaveLibrary(path, lib)
	}

	if humanOutput {
		fmt.Printf("Imported %d records from %d files into %s\n", len(keys), files, path)
		for _, k := range keys {
			fmt.Printf("  %s\n", k)
		}
		if len(errStrs) > 0 {
			fmt.Println("\nErrors:")
			for _, e := range errStrs {
				fmt.Printf("  - %s\n", e)
			}
		}
	} else {
		if keys == nil {
			keys = []string{}
		}
		outputJSON(ImportResult{
			Imported: len(keys),
			Files:    files,
			Keys:     keys,
			Errors:   errStrs,
		})
	}

	// A batch with failures still succeeds as long as something landed.
	if len(keys) == 0 && len(errStrs) > 0 {
		os.Exit(ExitDataError)
	}
	return nil
}

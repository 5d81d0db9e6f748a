package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lucabaldesi/referencer/internal/bib"
	"github.com/lucabaldesi/referencer/internal/export"
)

var (
	exportOutput string
	exportBraces bool
	exportLatex  bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
	exportCmd.Flags().BoolVar(&exportBraces, "braces", false, "Protect capitalization with double braces")
	exportCmd.Flags().BoolVar(&exportLatex, "latex", false, "Escape accented characters as LaTeX sequences")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [key]...",
	Short: "Export library records to BibTeX",
	Long: `Export library records to BibTeX.

Without keys, the whole library is exported. The library's managed BibTeX
target settings supply the default rendering options; --braces and --latex
override them.

Examples:
  refer export > refs.bib
  refer export smith2020 doe2021 -o selection.bib
  refer export --latex`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	_, lib := mustLoadLibrary()

	opts := export.Options{
		Braces: lib.Target.Braces,
		UTF8:   lib.Target.UTF8,
	}
	if lib.Target.Path == "" {
		opts.UTF8 = true
	}
	if cmd.Flags().Changed("braces") {
		opts.Braces = exportBraces
	}
	if cmd.Flags().Changed("latex") {
		opts.UTF8 = !exportLatex
	}

	var text string
	count := len(lib.Docs)
	if len(args) == 0 {
		text = renderLibraryBibTeX(lib, opts)
	} else {
		count = len(args)
		var recs []*bib.Record
		var keys []string
		for _, key := range args {
			doc := lib.DocByKey(key)
			if doc == nil {
				exitWithError(ExitError, "unknown document key: %s", key)
			}
			rec := doc.Record
			if rec == nil {
				rec = bib.New()
			}
			recs = append(recs, rec)
			keys = append(keys, key)
		}
		text = export.ToBibTeXList(recs, func(i int, rec *bib.Record) string {
			return keys[i]
		}, opts)
	}

	if exportOutput != "" {
		if err := os.WriteFile(exportOutput, []byte(text), 0o644); err != nil {
			exitWithError(ExitError, "writing %s: %v", exportOutput, err)
		}
		if humanOutput {
			fmt.Printf("Wrote %d records to %s\n", count, exportOutput)
		} else {
			outputJSON(StatusResponse{Status: "written", Path: exportOutput})
		}
		return nil
	}

	// BibTeX is always text output, never JSON
	fmt.Print(text)
	return nil
}

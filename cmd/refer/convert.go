package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lucabaldesi/referencer/internal/bib"
	"github.com/lucabaldesi/referencer/internal/clipboard"
	"github.com/lucabaldesi/referencer/internal/doctype"
	"github.com/lucabaldesi/referencer/internal/export"
	"github.com/lucabaldesi/referencer/internal/format"
	"github.com/lucabaldesi/referencer/internal/mapper"
)

var (
	convertFrom      string
	convertClipboard bool
	convertBraces    bool
	convertLatex     bool
)

func init() {
	convertCmd.Flags().StringVar(&convertFrom, "from", "", "Input format (bibtex, ris, endnote, mods, isi); guessed when omitted")
	convertCmd.Flags().BoolVar(&convertClipboard, "clipboard", false, "Read input from the system clipboard")
	convertCmd.Flags().BoolVar(&convertBraces, "braces", false, "Protect capitalization with double braces")
	convertCmd.Flags().BoolVar(&convertLatex, "latex", false, "Escape accented characters as LaTeX sequences")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert a bibliography to BibTeX",
	Long: `Convert a bibliography to BibTeX on stdout.

Reads the given file, stdin, or the clipboard with --clipboard. The input
format is guessed from the content unless --from forces one.

Examples:
  refer convert export.ris
  refer convert --from endnote library.xml > refs.bib
  cat refs.isi | refer convert
  refer convert --clipboard --latex`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	switch {
	case convertClipboard:
		var text string
		text, err = clipboard.Paste()
		data = []byte(text)
	case len(args) == 1:
		data, err = os.ReadFile(args[0])
	default:
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		exitWithError(ExitError, "reading input: %v", err)
	}

	f := format.Guess(data)
	if convertFrom != "" {
		if f, err = format.FromName(convertFrom); err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}

	lists, err := format.ParseBytes(cmd.Context(), data, f)
	if err != nil {
		exitWithError(ExitDataError, "parsing as %s: %v", f, err)
	}

	recs := make([]*bib.Record, len(lists))
	keys := make([]string, len(lists))
	seen := map[string]bool{}
	for i, l := range lists {
		recs[i] = mapper.Map(l, doctype.Classify(l))
		key := deriveKey(recs[i])
		for n := 2; seen[key]; n++ {
			key = fmt.Sprintf("%s-%d", deriveKey(recs[i]), n)
		}
		seen[key] = true
		keys[i] = key
	}

	// BibTeX is always text output, never JSON
	fmt.Print(export.ToBibTeXList(recs, func(i int, rec *bib.Record) string {
		return keys[i]
	}, export.Options{Braces: convertBraces, UTF8: !convertLatex}))

	return nil
}

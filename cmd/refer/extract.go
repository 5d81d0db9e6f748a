package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lucabaldesi/referencer/internal/pdf"
)

var extractPages int

func init() {
	extractCmd.Flags().IntVar(&extractPages, "pages", pdf.DefaultScanPages, "Number of leading pages to scan (0 = all)")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract <file.pdf>...",
	Short: "Extract bibliographic identifiers from PDF files",
	Long: `Extract bibliographic identifiers from PDF files.

The leading pages are scanned for a DOI, an arXiv identifier and a likely
publication year. Finding nothing is not an error; unreadable files are.

Examples:
  refer extract paper.pdf
  refer extract --pages 1 *.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

// ExtractResult holds the identifiers found in one file.
type ExtractResult struct {
	File  string `json:"file"`
	DOI   string `json:"doi,omitempty"`
	ArXiv string `json:"arxiv,omitempty"`
	Year  string `json:"year,omitempty"`
	Error string `json:"error,omitempty"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	results := make([]ExtractResult, 0, len(args))
	failed := 0

	for _, filename := range args {
		ids, err := pdf.ScanFile(filename, extractPages)
		if err != nil {
			log.WithPrefix(filename).Error("scanning", "err", err)
			results = append(results, ExtractResult{File: filename, Error: err.Error()})
			failed++
			continue
		}
		results = append(results, ExtractResult{
			File:  filename,
			DOI:   ids.DOI,
			ArXiv: ids.ArXiv,
			Year:  ids.Year,
		})
	}

	if humanOutput {
		for _, r := range results {
			fmt.Printf("%s:\n", r.File)
			if r.Error != "" {
				fmt.Printf("  error: %s\n", r.Error)
				continue
			}
			if r.DOI == "" && r.ArXiv == "" && r.Year == "" {
				fmt.Println("  no identifiers found")
				continue
			}
			if r.DOI != "" {
				fmt.Printf("  doi:   %s\n", r.DOI)
			}
			if r.ArXiv != "" {
				fmt.Printf("  arxiv: %s\n", r.ArXiv)
			}
			if r.Year != "" {
				fmt.Printf("  year:  %s\n", r.Year)
			}
		}
	} else {
		outputJSON(results)
	}

	if failed == len(args) {
		os.Exit(ExitDataError)
	}
	return nil
}

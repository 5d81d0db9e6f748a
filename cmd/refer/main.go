// Package main provides the refer CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// libraryFlag overrides the configured library file
var libraryFlag string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "refer",
	Short: "Bibliographic reference manager",
	Long: `refer manages a library of documents and their bibliographic records.

It imports references from BibTeX, RIS, EndNote XML, MODS and ISI files,
fetches metadata from Crossref, arXiv and PubMed, and keeps the library in
a plain XML file with an optional managed BibTeX export. All commands
output JSON by default for easy integration with other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&libraryFlag, "library", "", "Library file (overrides config and REFER_LIBRARY)")
	rootCmd.Version = Version
}

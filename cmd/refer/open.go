package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lucabaldesi/referencer/internal/config"
	"github.com/lucabaldesi/referencer/internal/library"
	"github.com/lucabaldesi/referencer/internal/pdf"
)

func init() {
	rootCmd.AddCommand(openCmd)
}

var openCmd = &cobra.Command{
	Use:   "open <key>",
	Short: "Open a document in the configured viewer",
	Long: `Open a document in the configured viewer.

Library-relative filenames resolve against the library folder, falling
back to the directory of the library file itself.

Examples:
  refer open smith2020
  refer open smith2020 --human`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func runOpen(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	libPath, lib := mustLoadLibrary()

	doc := lib.DocByKey(args[0])
	if doc == nil {
		exitWithError(ExitError, "unknown document key: %s", args[0])
	}

	filename := doc.RelativeFilename
	if filename == "" {
		filename = doc.Filename
	}
	if filename == "" {
		exitWithError(ExitError, "document %s has no file", args[0])
	}

	opener := pdf.NewOpener(libraryRoot(libPath, lib), cfg.Viewer)
	fullPath, err := opener.ResolvePath(filename)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := opener.Open(fullPath); err != nil {
		exitWithError(ExitError, "opening document: %v", err)
	}

	if humanOutput {
		fmt.Printf("Opened %s\n", fullPath)
	} else {
		outputJSON(StatusResponse{Status: "opened", Path: fullPath})
	}
	return nil
}

// libraryRoot picks the base directory for relative document paths: the
// first library folder, else the library file's own directory.
func libraryRoot(libPath string, lib *library.Library) string {
	if len(lib.Folders) > 0 {
		return lib.Folders[0].Path
	}
	return filepath.Dir(libPath)
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lucabaldesi/referencer/internal/format"
)

func init() {
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect [file]",
	Short: "Detect the format of a bibliography file",
	Long: `Detect the format of a bibliography file, or stdin when no file
is given. The heuristic looks for format markers and falls back to BibTeX.

Examples:
  refer detect export.ris
  cat refs.txt | refer detect`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDetect,
}

// DetectResult reports the guessed format.
type DetectResult struct {
	Format string `json:"format"`
}

func runDetect(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		exitWithError(ExitError, "reading input: %v", err)
	}

	f := format.Guess(data)
	if humanOutput {
		fmt.Println(f.String())
	} else {
		outputJSON(DetectResult{Format: f.String()})
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listLimit int

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum results to return (0 = all)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List library documents",
	Long: `List library documents ordered by citation key.

Examples:
  refer list
  refer list --limit 20 --human`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	_, lib := mustLoadLibrary()
	cache := mustOpenCache(lib)
	defer cache.Close()

	entries, err := cache.List(listLimit)
	if err != nil {
		exitWithError(ExitError, "listing documents: %v", err)
	}

	if humanOutput {
		total, _ := cache.Count()
		if len(entries) == 0 {
			fmt.Println("Library is empty")
		} else {
			if listLimit > 0 && listLimit < total {
				fmt.Printf("%d documents (showing first %d):\n\n", total, len(entries))
			} else {
				fmt.Printf("%d documents:\n\n", len(entries))
			}
			printDocsHuman(entries, ListTitleMaxLen)
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

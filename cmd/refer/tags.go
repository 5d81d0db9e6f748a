package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	tagsCmd.AddCommand(tagsAddCmd)
	tagsCmd.AddCommand(tagsTagCmd)
	tagsCmd.AddCommand(tagsUntagCmd)
	rootCmd.AddCommand(tagsCmd)
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List and manage library tags",
	Long: `List and manage library tags.

Examples:
  refer tags
  refer tags add toread
  refer tags tag smith2020 toread
  refer tags untag smith2020 toread`,
	RunE: runTags,
}

var tagsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagsAdd,
}

var tagsTagCmd = &cobra.Command{
	Use:   "tag <key> <name>",
	Short: "Attach a tag to a document",
	Args:  cobra.ExactArgs(2),
	RunE:  runTagsTag,
}

var tagsUntagCmd = &cobra.Command{
	Use:   "untag <key> <name>",
	Short: "Detach a tag from a document",
	Args:  cobra.ExactArgs(2),
	RunE:  runTagsUntag,
}

// TagResponse is one tag with its document count.
type TagResponse struct {
	Name string `json:"name"`
	Docs int    `json:"docs"`
}

func runTags(cmd *cobra.Command, args []string) error {
	_, lib := mustLoadLibrary()

	counts := make(map[int]int)
	for _, d := range lib.Docs {
		for _, uid := range d.TagUIDs {
			counts[uid]++
		}
	}

	results := make([]TagResponse, 0, len(lib.Tags))
	for _, t := range lib.Tags {
		results = append(results, TagResponse{Name: t.Name, Docs: counts[t.UID]})
	}

	if humanOutput {
		if len(results) == 0 {
			fmt.Println("No tags")
		}
		for _, t := range results {
			fmt.Printf("  %-20s %d\n", t.Name, t.Docs)
		}
	} else {
		outputJSON(results)
	}
	return nil
}

func runTagsAdd(cmd *cobra.Command, args []string) error {
	path, lib := mustLoadLibrary()
	lib.EnsureTag(args[0])
	mustSaveLibrary(path, lib)

	if humanOutput {
		fmt.Printf("Added tag %s\n", args[0])
	} else {
		outputJSON(StatusResponse{Status: "added"})
	}
	return nil
}

func runTagsTag(cmd *cobra.Command, args []string) error {
	key, name := args[0], args[1]
	path, lib := mustLoadLibrary()

	doc := lib.DocByKey(key)
	if doc == nil {
		exitWithError(ExitError, "unknown document key: %s", key)
	}

	tag := lib.EnsureTag(name)
	for _, uid := range doc.TagUIDs {
		if uid == tag.UID {
			// Already tagged; saving would be a no-op.
			if humanOutput {
				fmt.Printf("%s already tagged %s\n", key, name)
			} else {
				outputJSON(StatusResponse{Status: "unchanged"})
			}
			return nil
		}
	}
	doc.TagUIDs = append(doc.TagUIDs, tag.UID)
	mustSaveLibrary(path, lib)

	if humanOutput {
		fmt.Printf("Tagged %s with %s\n", key, name)
	} else {
		outputJSON(StatusResponse{Status: "tagged"})
	}
	return nil
}

func runTagsUntag(cmd *cobra.Command, args []string) error {
	key, name := args[0], args[1]
	path, lib := mustLoadLibrary()

	doc := lib.DocByKey(key)
	if doc == nil {
		exitWithError(ExitError, "unknown document key: %s", key)
	}

	removed := false
	for i, uid := range doc.TagUIDs {
		if lib.TagName(uid) == name {
			doc.TagUIDs = append(doc.TagUIDs[:i], doc.TagUIDs[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		exitWithError(ExitError, "%s is not tagged %s", key, name)
	}
	mustSaveLibrary(path, lib)

	if humanOutput {
		fmt.Printf("Untagged %s from %s\n", key, name)
	} else {
		outputJSON(StatusResponse{Status: "untagged"})
	}
	return nil
}

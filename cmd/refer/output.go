package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lucabaldesi/referencer/internal/library"
)

// Constants for output formatting.
const (
	DefaultSearchLimit = 50 // Default limit for search results

	ListTitleMaxLen   = 60 // Title truncation in list output
	SearchTitleMaxLen = 70 // Title truncation in search output
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError writes an error message to stderr and returns the exit code.
func outputError(code int, format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	return code
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DocResponse is one library document in query results.
type DocResponse struct {
	Key      string   `json:"key"`
	Type     string   `json:"type"`
	Title    string   `json:"title,omitempty"`
	Authors  string   `json:"authors,omitempty"`
	Journal  string   `json:"journal,omitempty"`
	Year     string   `json:"year,omitempty"`
	DOI      string   `json:"doi,omitempty"`
	Filename string   `json:"filename,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// docResponse converts a cache entry to its JSON shape.
func docResponse(e library.Entry) DocResponse {
	return DocResponse{
		Key:      e.Key,
		Type:     e.Record.Type,
		Title:    e.Record.Title,
		Authors:  e.Record.Authors,
		Journal:  e.Record.Journal,
		Year:     e.Record.Year,
		DOI:      e.Record.DOI,
		Filename: e.Filename,
		Tags:     e.Tags,
	}
}

// printDocsHuman prints cache entries in human-readable format.
func printDocsHuman(entries []library.Entry, titleMaxLen int) {
	for _, e := range entries {
		line := truncateString(e.Record.Title, titleMaxLen)
		if line == "" {
			line = "(untitled)"
		}
		if e.Record.Year != "" {
			line += " (" + e.Record.Year + ")"
		}
		fmt.Printf("  %-16s %s\n", e.Key, line)
	}
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lucabaldesi/referencer/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  refer config                                  # Show all config
  refer config library-path                     # Get specific value
  refer config library-path ~/refs.reflib       # Set value
  refer config viewer zathura                   # Set document viewer

Keys:
  library-path     Default library file
  crossref-mailto  Email joining Crossref's polite pool
  pubmed-api-key   NCBI API key raising the PubMed rate limit
  viewer           Document viewer (system, skim, preview, zathura, evince, okular)
  offline          Disable all metadata lookups (true/false)`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// ConfigResponse is the response for config get commands.
type ConfigResponse struct {
	LibraryPath    string `json:"library_path,omitempty"`
	CrossrefMailto string `json:"crossref_mailto,omitempty"`
	PubMedAPIKey   string `json:"pubmed_api_key,omitempty"`
	Viewer         string `json:"viewer,omitempty"`
	Offline        bool   `json:"offline"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("library-path:    %s\n", cfg.LibraryPath)
			fmt.Printf("crossref-mailto: %s\n", cfg.CrossrefMailto)
			fmt.Printf("pubmed-api-key:  %s\n", cfg.PubMedAPIKey)
			fmt.Printf("viewer:          %s\n", cfg.Viewer)
			fmt.Printf("offline:         %t\n", cfg.Offline)
		} else {
			outputJSON(ConfigResponse{
				LibraryPath:    cfg.LibraryPath,
				CrossrefMailto: cfg.CrossrefMailto,
				PubMedAPIKey:   cfg.PubMedAPIKey,
				Viewer:         cfg.Viewer,
				Offline:        cfg.Offline,
			})
		}
		return nil
	}

	key := normalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		value, err := configValue(cfg, key)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{strings.ReplaceAll(key, "-", "_"): value})
		}
		return nil
	}

	// Two args: set value
	value := args[1]
	if err := setConfigValue(cfg, key, value); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := cfg.Save(); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
	}
	return nil
}

func configValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "library-path":
		return cfg.LibraryPath, nil
	case "crossref-mailto":
		return cfg.CrossrefMailto, nil
	case "pubmed-api-key":
		return cfg.PubMedAPIKey, nil
	case "viewer":
		return cfg.Viewer, nil
	case "offline":
		return strconv.FormatBool(cfg.Offline), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "library-path":
		cfg.LibraryPath = config.ExpandTilde(value)
	case "crossref-mailto":
		cfg.CrossrefMailto = value
	case "pubmed-api-key":
		cfg.PubMedAPIKey = value
	case "viewer":
		if err := config.ValidateViewer(value); err != nil {
			return err
		}
		cfg.Viewer = value
	case "offline":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("offline must be true or false, got %q", value)
		}
		cfg.Offline = b
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// normalizeKey converts key formats (library-path, library_path) to a
// consistent format.
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}

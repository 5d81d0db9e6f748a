// Package config handles the global configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the global configuration stored in
// $XDG_CONFIG_HOME/refer/config.yml.
type Config struct {
	// LibraryPath is the default library file used when --library is not
	// given.
	LibraryPath string `yaml:"library_path,omitempty"`

	// CrossrefMailto joins Crossref's polite pool.
	CrossrefMailto string `yaml:"crossref_mailto,omitempty"`

	// PubMedAPIKey raises the NCBI rate limit.
	PubMedAPIKey string `yaml:"pubmed_api_key,omitempty"`

	// Viewer selects the document viewer: system, skim, preview, zathura,
	// evince, okular.
	Viewer string `yaml:"viewer,omitempty"`

	// Offline disables all metadata lookups.
	Offline bool `yaml:"offline,omitempty"`
}

const (
	// Dir is the directory name under XDG_CONFIG_HOME and XDG_CACHE_HOME.
	Dir = "refer"
	// File is the config file name.
	File = "config.yml"
)

// ValidViewers lists the supported viewer values.
var ValidViewers = []string{"system", "skim", "preview", "zathura", "evince", "okular"}

// cache holds the loaded config for the process lifetime.
var cache *Config

// Path returns the config file path. Respects XDG_CONFIG_HOME, defaults
// to ~/.config/refer/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, Dir, File)
}

// CachePath returns the default location of the library search cache.
// Respects XDG_CACHE_HOME, defaults to ~/.cache/refer/library.db.
func CachePath() string {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, Dir, "library.db")
}

// Load reads the global configuration, caching the result. A missing file
// is an empty config, not an error.
func Load() (*Config, error) {
	if cache != nil {
		return cache, nil
	}

	path := Path()
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.LibraryPath != "" {
		cfg.LibraryPath = ExpandTilde(cfg.LibraryPath)
	}

	cache = &cfg
	return &cfg, nil
}

// ResetCache clears the cached config. Useful for testing.
func ResetCache() {
	cache = nil
}

// Save writes the configuration to the config file, creating the
// directory when needed, and refreshes the cache.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	cache = c
	return nil
}

// ValidateViewer checks that the viewer value is supported. Empty defaults
// to "system".
func ValidateViewer(viewer string) error {
	if viewer == "" {
		return nil
	}
	for _, valid := range ValidViewers {
		if viewer == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid viewer: %s (valid: %v)", viewer, ValidViewers)
}

// ExpandTilde expands a leading ~ to the user's home directory. Paths
// without one pass through unchanged.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucabaldesi/referencer/internal/bib"
	"github.com/lucabaldesi/referencer/internal/config"
	"github.com/lucabaldesi/referencer/internal/export"
	"github.com/lucabaldesi/referencer/internal/library"
)

// resolveLibraryPath returns the library file to operate on: the --library
// flag, then the REFER_LIBRARY environment variable, then the configured
// default. Exits with a config error when none is set.
func resolveLibraryPath() string {
	if libraryFlag != "" {
		return config.ExpandTilde(libraryFlag)
	}
	if env := os.Getenv("REFER_LIBRARY"); env != "" {
		return config.ExpandTilde(env)
	}
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if cfg.LibraryPath == "" {
		exitWithError(ExitConfigError, "no library configured: pass --library or set library_path in %s", config.Path())
	}
	return cfg.LibraryPath
}

// mustLoadLibrary resolves the library path and loads the file.
func mustLoadLibrary() (string, *library.Library) {
	path := resolveLibraryPath()
	lib, err := library.Load(path)
	if err != nil {
		exitWithError(ExitConfigError, "loading library: %v", err)
	}
	return path, lib
}

// loadOrCreateLibrary is mustLoadLibrary, except a missing file starts an
// empty library so the first import can create it.
func loadOrCreateLibrary() (string, *library.Library) {
	path := resolveLibraryPath()
	lib, err := library.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return path, library.New()
		}
		exitWithError(ExitConfigError, "loading library: %v", err)
	}
	return path, lib
}

// mustSaveLibrary writes the library back and refreshes the managed BibTeX
// target when one is configured.
func mustSaveLibrary(path string, lib *library.Library) {
	if err := library.Save(path, lib); err != nil {
		exitWithError(ExitError, "saving library: %v", err)
	}
	if err := syncTarget(lib); err != nil {
		exitWithError(ExitError, "writing managed BibTeX file: %v", err)
	}
}

// syncTarget rewrites the managed BibTeX file from the library, using the
// rendering options stored alongside the target path. A library without a
// target is a no-op.
func syncTarget(lib *library.Library) error {
	if lib.Target.Path == "" {
		return nil
	}
	text := renderLibraryBibTeX(lib, export.Options{
		Braces: lib.Target.Braces,
		UTF8:   lib.Target.UTF8,
	})
	return os.WriteFile(lib.Target.Path, []byte(text), 0o644)
}

// renderLibraryBibTeX renders every document's record under its citation
// key. Keyless documents get a positional key, matching the search cache.
func renderLibraryBibTeX(lib *library.Library, opts export.Options) string {
	recs := make([]*bib.Record, len(lib.Docs))
	keys := make([]string, len(lib.Docs))
	for i, d := range lib.Docs {
		rec := d.Record
		if rec == nil {
			rec = bib.New()
		}
		recs[i] = rec
		keys[i] = d.Key
		if keys[i] == "" {
			keys[i] = fmt.Sprintf("doc-%d", i)
		}
	}
	return export.ToBibTeXList(recs, func(i int, rec *bib.Record) string {
		return keys[i]
	}, opts)
}

// deriveKey builds a citation key from the first author's family name and
// the year, e.g. "smith2020". Records without an author derive from the
// first title word instead.
func deriveKey(rec *bib.Record) string {
	stem := rec.Authors
	if i := strings.Index(stem, " and "); i >= 0 {
		stem = stem[:i]
	}
	if i := strings.Index(stem, ","); i >= 0 {
		stem = stem[:i]
	}
	if strings.TrimSpace(stem) == "" {
		stem, _, _ = strings.Cut(strings.TrimSpace(rec.Title), " ")
	}

	var b strings.Builder
	for _, r := range strings.ToLower(stem) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		b.WriteString("doc")
	}
	return b.String() + rec.Year
}

// uniqueKey appends a numeric suffix until the key is free in the library.
func uniqueKey(lib *library.Library, base string) string {
	if base == "" {
		base = "doc"
	}
	if lib.DocByKey(base) == nil {
		return base
	}
	for i := 2; ; i++ {
		key := fmt.Sprintf("%s-%d", base, i)
		if lib.DocByKey(key) == nil {
			return key
		}
	}
}

// mustOpenCache opens the search cache and rebuilds it from the library.
// The cache is disposable; rebuilding on every query keeps it honest.
func mustOpenCache(lib *library.Library) *library.Cache {
	path := config.CachePath()
	if path == "" {
		path = ":memory:"
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		path = ":memory:"
	}

	cache, err := library.OpenCache(path)
	if err != nil {
		exitWithError(ExitError, "opening search cache: %v", err)
	}
	if _, err := cache.Rebuild(lib); err != nil {
		cache.Close()
		exitWithError(ExitError, "indexing library: %v", err)
	}
	return cache
}

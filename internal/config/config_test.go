package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func withConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	ResetCache()
	t.Cleanup(ResetCache)
	return dir
}

func TestPath(t *testing.T) {
	dir := withConfigHome(t)
	want := filepath.Join(dir, "refer", "config.yml")
	if got := Path(); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestCachePath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	want := filepath.Join(dir, "refer", "library.db")
	if got := CachePath(); got != want {
		t.Errorf("CachePath() = %q, want %q", got, want)
	}
}

func TestLoad_MissingFileIsEmptyConfig(t *testing.T) {
	withConfigHome(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if *cfg != (Config{}) {
		t.Errorf("Load() = %+v, want zero config", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	withConfigHome(t)

	in := &Config{
		LibraryPath:    "/home/user/library.reflib",
		CrossrefMailto: "user@example.org",
		PubMedAPIKey:   "secret",
		Viewer:         "evince",
		Offline:        true,
	}
	if err := in.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	ResetCache()
	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if *got != *in {
		t.Errorf("Load() = %+v, want %+v", got, in)
	}
}

func TestLoad_Caches(t *testing.T) {
	withConfigHome(t)
	cfg := &Config{Viewer: "zathura"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	first, _ := Load()
	if err := os.Remove(Path()); err != nil {
		t.Fatal(err)
	}
	second, _ := Load()
	if first != second {
		t.Error("Load() did not return cached config")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	dir := withConfigHome(t)
	path := filepath.Join(dir, "refer", "config.yml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("viewer: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("Load() with bad YAML succeeded, want error")
	}
}

func TestValidateViewer(t *testing.T) {
	for _, v := range append([]string{""}, ValidViewers...) {
		if err := ValidateViewer(v); err != nil {
			t.Errorf("ValidateViewer(%q) error: %v", v, err)
		}
	}
	if err := ValidateViewer("acrobat"); err == nil {
		t.Error("ValidateViewer(acrobat) succeeded, want error")
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got := ExpandTilde("~/library.reflib")
	if !strings.HasPrefix(got, home) || !strings.HasSuffix(got, "library.reflib") {
		t.Errorf("ExpandTilde() = %q", got)
	}
	if got := ExpandTilde("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandTilde(abs) = %q", got)
	}
	if got := ExpandTilde(""); got != "" {
		t.Errorf("ExpandTilde(\"\") = %q", got)
	}
}

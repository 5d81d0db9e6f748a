package main

import (
	"testing"

	"github.com/lucabaldesi/referencer/internal/config"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct{ in, want string }{
		{"library-path", "library-path"},
		{"library_path", "library-path"},
		{"VIEWER", "viewer"},
	}
	for _, tt := range tests {
		if got := normalizeKey(tt.in); got != tt.want {
			t.Errorf("normalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConfigValueRoundTrip(t *testing.T) {
	cfg := &config.Config{}

	sets := map[string]string{
		"crossref-mailto": "user@example.org",
		"pubmed-api-key":  "secret",
		"viewer":          "zathura",
		"offline":         "true",
	}
	for key, value := range sets {
		if err := setConfigValue(cfg, key, value); err != nil {
			t.Fatalf("setConfigValue(%s) error: %v", key, err)
		}
	}
	for key, want := range sets {
		got, err := configValue(cfg, key)
		if err != nil {
			t.Fatalf("configValue(%s) error: %v", key, err)
		}
		if got != want {
			t.Errorf("configValue(%s) = %q, want %q", key, got, want)
		}
	}
}

func TestSetConfigValueRejects(t *testing.T) {
	cfg := &config.Config{}

	if err := setConfigValue(cfg, "viewer", "acrobat"); err == nil {
		t.Error("setConfigValue(viewer, acrobat) succeeded, want error")
	}
	if err := setConfigValue(cfg, "offline", "maybe"); err == nil {
		t.Error("setConfigValue(offline, maybe) succeeded, want error")
	}
	if err := setConfigValue(cfg, "no-such-key", "x"); err == nil {
		t.Error("setConfigValue(no-such-key) succeeded, want error")
	}
	if _, err := configValue(cfg, "no-such-key"); err == nil {
		t.Error("configValue(no-such-key) succeeded, want error")
	}
}

package pdf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScan(t *testing.T) {
	text := `Gravity Waves in the Laboratory
Published 15 March 2020
doi:10.1000/xyz.123
Preprint at arXiv:2101.00001v2.
References [1] Older work (1995).`

	ids := Scan(text)
	if ids.DOI != "10.1000/xyz.123" {
		t.Errorf("DOI = %q", ids.DOI)
	}
	if ids.ArXiv != "2101.00001v2" {
		t.Errorf("ArXiv = %q", ids.ArXiv)
	}
	if ids.Year != "2020" {
		t.Errorf("Year = %q (references year preferred over publication year?)", ids.Year)
	}
}

func TestScan_NothingFound(t *testing.T) {
	ids := Scan("no identifiers in this text at all")
	if !ids.Empty() {
		t.Errorf("Scan() = %+v, want empty", ids)
	}
}

func TestExtractText_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.pdf")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ExtractText(path, 1); err == nil {
		t.Error("ExtractText() on non-PDF succeeded, want error")
	}
}

func TestOpenerResolvePath(t *testing.T) {
	dir := t.TempDir()
	rel := "paper.pdf"
	full := filepath.Join(dir, rel)
	if err := os.WriteFile(full, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}

	o := NewOpener(dir, "")

	got, err := o.ResolvePath(rel)
	if err != nil {
		t.Fatalf("ResolvePath() error: %v", err)
	}
	if got != full {
		t.Errorf("ResolvePath() = %q, want %q", got, full)
	}

	// Absolute paths pass through.
	if got, err := o.ResolvePath(full); err != nil || got != full {
		t.Errorf("ResolvePath(abs) = %q, %v", got, err)
	}

	if _, err := o.ResolvePath("missing.pdf"); err == nil {
		t.Error("ResolvePath(missing) succeeded, want error")
	}
	if _, err := o.ResolvePath(""); err == nil {
		t.Error("ResolvePath(empty) succeeded, want error")
	}

	noRoot := NewOpener("", "")
	if _, err := noRoot.ResolvePath(rel); err == nil {
		t.Error("ResolvePath() without root succeeded, want error")
	}
}

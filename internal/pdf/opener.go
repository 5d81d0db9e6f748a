package pdf

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Opener resolves library-relative document paths and opens them in an
// external viewer.
type Opener struct {
	root   string
	viewer string
}

// NewOpener creates an opener rooted at the library folder. An empty
// viewer means the system default handler.
func NewOpener(root, viewer string) *Opener {
	if viewer == "" {
		viewer = "system"
	}
	return &Opener{root: root, viewer: viewer}
}

// ResolvePath resolves a library-relative path to an absolute one,
// verifying the file exists. Absolute paths pass through unchanged.
func (o *Opener) ResolvePath(relativePath string) (string, error) {
	if relativePath == "" {
		return "", fmt.Errorf("document has no file")
	}

	fullPath := relativePath
	if !filepath.IsAbs(fullPath) {
		if o.root == "" {
			return "", fmt.Errorf("library folder not configured")
		}
		fullPath = filepath.Join(o.root, relativePath)
	}

	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("document not found: %s", fullPath)
		}
		return "", fmt.Errorf("checking document: %w", err)
	}
	return fullPath, nil
}

// Open opens a document with the configured viewer. The path must be
// absolute and existing, typically the result of ResolvePath.
func (o *Opener) Open(fullPath string) error {
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("document does not exist: %s", fullPath)
		}
		return fmt.Errorf("checking document: %w", err)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = o.darwinCommand(fullPath)
	case "linux":
		cmd = o.linuxCommand(fullPath)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}

func (o *Opener) darwinCommand(path string) *exec.Cmd {
	switch o.viewer {
	case "skim":
		return exec.Command("open", "-a", "Skim", path)
	case "preview":
		return exec.Command("open", "-a", "Preview", path)
	default: // "system"
		return exec.Command("open", path)
	}
}

func (o *Opener) linuxCommand(path string) *exec.Cmd {
	switch o.viewer {
	case "zathura", "evince", "okular":
		return exec.Command(o.viewer, path)
	default: // "system"
		return exec.Command("xdg-open", path)
	}
}
